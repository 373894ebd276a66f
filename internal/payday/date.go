package payday

import (
	"errors"
	"fmt"
	"time"
)

// Supported year range. Four digit years keep the dd.MM.yyyy format stable.
const (
	MinYear = 1
	MaxYear = 9999
)

// DateLayout is the display format for all dates (dd.MM.yyyy)
const DateLayout = "02.01.2006"

// ErrInvalidDate is returned for out-of-range years, months or days
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without time or zone. The zero value is not a valid date.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the date for year, month and day or an error wrapping ErrInvalidDate
func NewDate(year int, month time.Month, day int) (Date, error) {
	if err := validateYearMonth(year, month); err != nil {
		return Date{}, err
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("%w: day %d out of range for %s %d", ErrInvalidDate, day, month, year)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on invalid input
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a dd.MM.yyyy string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return FromTime(t), nil
}

// FromTime returns the calendar day of t in t's own location
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func validateYearMonth(year int, month time.Month) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidDate, int(month))
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// Time returns the date at midnight UTC
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days later (n may be negative). Month and year
// boundaries are crossed transparently.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// After reports whether d is strictly later than other
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// IsZero reports whether d is the zero value
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as dd.MM.yyyy
func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
