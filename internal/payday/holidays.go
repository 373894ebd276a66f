package payday

import "time"

// Holiday is a single public holiday
type Holiday struct {
	Date Date
	Name string
}

// HolidaySet holds the public holidays of one year in declaration order.
// Entries sharing a calendar date are kept as declared.
type HolidaySet []Holiday

// Holidays returns the public holidays for the given year.
//
// Easter Sunday and Pentecost are left out: both always fall on a Sunday and
// never change whether a day is a business day.
func Holidays(year int) HolidaySet {
	return HolidaySet{
		{Date{year, time.January, 1}, "New Year"},
		{Date{year, time.February, 24}, "Independence Day"},
		{GoodFriday(year), "Good Friday"},
		{Date{year, time.May, 1}, "Labor Day"},
		{Date{year, time.June, 23}, "Victory Day"},
		{Date{year, time.June, 23}, "Midsummer Day"},
		{Date{year, time.August, 20}, "Independence Restoration Day"},
		{Date{year, time.December, 24}, "Christmas Eve"},
		{Date{year, time.December, 25}, "Christmas Day"},
		{Date{year, time.December, 26}, "Boxing Day"},
	}
}

// GoodFriday calculates Good Friday using the Gaussian Easter algorithm.
// The final offset lands two days before Easter Sunday.
func GoodFriday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	i := c / 4
	k := c % 4
	g := (8*b + 13) / 25
	h := (19*a + b - d - g + 15) % 30
	l := (2*e + 2*i - k + 32 - h) % 7
	m := (a + 11*h + 19*l) / 433
	daysToGoodFriday := h + l - 7*m - 2
	month := (daysToGoodFriday + 90) / 25
	day := (daysToGoodFriday + 33*month + 19) % 32

	return Date{year: year, month: time.Month(month), day: day}
}

// Contains reports whether any holiday falls on d
func (s HolidaySet) Contains(d Date) bool {
	for _, h := range s {
		if h.Date == d {
			return true
		}
	}
	return false
}

// Dates returns the holiday dates in declaration order
func (s HolidaySet) Dates() []Date {
	dates := make([]Date, len(s))
	for i, h := range s {
		dates[i] = h.Date
	}
	return dates
}

// Name returns the first holiday name declared for d, or "" if d is not a holiday
func (s HolidaySet) Name(d Date) string {
	for _, h := range s {
		if h.Date == d {
			return h.Name
		}
	}
	return ""
}
