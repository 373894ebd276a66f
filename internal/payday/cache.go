package payday

import "sync"

// Cache memoizes Year results. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	years map[int][]Entry

	// OnHit and OnMiss are optional observers, called outside the lock.
	OnHit  func(year int)
	OnMiss func(year int)
}

// NewCache creates an empty Cache
func NewCache() *Cache {
	return &Cache{years: make(map[int][]Entry)}
}

// Year returns the resolved entries of year, computing them on first use.
// The returned slice is a copy and may be modified by the caller.
func (c *Cache) Year(year int) ([]Entry, error) {
	c.mu.RLock()
	entries, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		if c.OnHit != nil {
			c.OnHit(year)
		}
		return append([]Entry(nil), entries...), nil
	}

	entries, err := Year(year)
	if err != nil {
		return nil, err
	}
	if c.OnMiss != nil {
		c.OnMiss(year)
	}

	c.mu.Lock()
	c.years[year] = entries
	c.mu.Unlock()

	return append([]Entry(nil), entries...), nil
}

// Table returns the display table of year
func (c *Cache) Table(year int) (Table, error) {
	entries, err := c.Year(year)
	if err != nil {
		return nil, err
	}
	return NewTable(entries), nil
}

// Len returns the number of cached years
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.years)
}
