package payday

import "time"

// IsBusinessDay reports whether d is neither a weekend day nor one of holidays
func IsBusinessDay(d Date, holidays HolidaySet) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !holidays.Contains(d)
}
