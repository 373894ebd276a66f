// Package payday resolves monthly payday and reminder dates.
//
// Salary is paid on the 10th of each month. When the 10th is a weekend day or
// a public holiday the payday moves back to the closest earlier business day.
// A reminder is due three business days before the payday.
//
//	info, err := payday.Resolve(2024, time.May)
//	// info.Payday   == 10.05.2024
//	// info.Reminder == 07.05.2024
package payday

import (
	"fmt"
	"time"
)

const (
	// PaydayOfMonth is the nominal day of month salary is paid
	PaydayOfMonth = 10
	// ReminderBusinessDays is how many business days before the payday the reminder falls
	ReminderBusinessDays = 3
)

// Info is the resolved payday and reminder date for one month
type Info struct {
	Payday   Date
	Reminder Date
}

// Resolve returns the payday and reminder date for year and month.
// Invalid years or months return an error wrapping ErrInvalidDate.
func Resolve(year int, month time.Month) (Info, error) {
	if err := validateYearMonth(year, month); err != nil {
		return Info{}, err
	}
	return resolve(year, month, Holidays(year)), nil
}

// resolve assumes a valid year and month
func resolve(year int, month time.Month, holidays HolidaySet) Info {
	payday := actualPayday(Date{year: year, month: month, day: PaydayOfMonth}, holidays)
	return Info{
		Payday:   payday,
		Reminder: businessDaysBefore(payday, ReminderBusinessDays, holidays),
	}
}

// actualPayday scans back from nominal to the first business day, nominal included.
// The result may land in the previous month.
func actualPayday(nominal Date, holidays HolidaySet) Date {
	d := nominal
	for !IsBusinessDay(d, holidays) {
		d = d.AddDays(-1)
	}
	return d
}

// businessDaysBefore steps back one day at a time from d and returns the day
// on which the n-th business day is reached. d itself is never counted.
func businessDaysBefore(d Date, n int, holidays HolidaySet) Date {
	for counted := 0; counted < n; {
		d = d.AddDays(-1)
		if IsBusinessDay(d, holidays) {
			counted++
		}
	}
	return d
}

// String implements fmt.Stringer
func (i Info) String() string {
	return fmt.Sprintf("payday %s, reminder %s", i.Payday, i.Reminder)
}
