package payday

import (
	"strings"
	"time"
)

// Header is the first row of every year table
var Header = []string{"Month", "Reminder date", "Payday date"}

// Entry is the resolved Info of one month
type Entry struct {
	Month time.Month
	Info
}

// Table is a header row followed by one row per month.
// Each row holds the month name, the reminder date and the payday date.
type Table [][]string

// Year resolves all twelve months of year in calendar order
func Year(year int) ([]Entry, error) {
	if err := validateYearMonth(year, time.January); err != nil {
		return nil, err
	}
	holidays := Holidays(year)
	entries := make([]Entry, 0, 12)
	for m := time.January; m <= time.December; m++ {
		entries = append(entries, Entry{Month: m, Info: resolve(year, m, holidays)})
	}
	return entries, nil
}

// BuildYearTable builds the display table of year
func BuildYearTable(year int) (Table, error) {
	entries, err := Year(year)
	if err != nil {
		return nil, err
	}
	return NewTable(entries), nil
}

// NewTable formats entries below the header row
func NewTable(entries []Entry) Table {
	table := make(Table, 0, len(entries)+1)
	table = append(table, append([]string(nil), Header...))
	for _, e := range entries {
		table = append(table, e.Row())
	}
	return table
}

// Row returns the display row of the entry
func (e Entry) Row() []string {
	return []string{e.Month.String(), e.Reminder.String(), e.Payday.String()}
}

// CSV joins fields with commas and rows with newlines. Fields are never quoted.
func (t Table) CSV() string {
	lines := make([]string, len(t))
	for i, row := range t {
		lines[i] = strings.Join(row, ",")
	}
	return strings.Join(lines, "\n")
}
