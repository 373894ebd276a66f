package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/payday-calendar/internal/log"
)

// TableStore keeps saved year tables as <dir>/<year>.csv
type TableStore struct {
	Dir string
}

// NewTableStore returns a store rooted at dir (DefaultTablesDir if empty)
func NewTableStore(dir string) *TableStore {
	if dir == "" {
		dir = DefaultTablesDir
	}
	return &TableStore{Dir: dir}
}

// Path returns the file path of the table for year
func (s *TableStore) Path(year int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%d%s", year, TablesExt))
}

// Save writes the CSV text of year, replacing an earlier save
func (s *TableStore) Save(year int, csv string) (string, error) {
	if err := os.MkdirAll(s.Dir, DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create tables directory: %w", err)
	}

	path := s.Path(year)

	// Write to temp file first
	tmpFile := path + TmpSuffix
	if err := os.WriteFile(tmpFile, []byte(csv), FilePermissions); err != nil {
		return "", fmt.Errorf("failed to write table: %w", err)
	}

	// Rename temp file to actual file
	if err := os.Rename(tmpFile, path); err != nil {
		if rmErr := os.Remove(tmpFile); rmErr != nil {
			log.Warn("failed to remove temp file %s: %v", tmpFile, rmErr)
		}
		return "", fmt.Errorf("failed to save table: %w", err)
	}

	log.Info("table saved: %s", path)
	return path, nil
}

// Load reads the saved CSV text of year
func (s *TableStore) Load(year int) (string, error) {
	data, err := os.ReadFile(s.Path(year))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether a table for year has been saved
func (s *TableStore) Exists(year int) bool {
	_, err := os.Stat(s.Path(year))
	return err == nil
}

// Years returns the saved years in ascending order
func (s *TableStore) Years() ([]int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var years []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), TablesExt) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(e.Name(), TablesExt))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}
