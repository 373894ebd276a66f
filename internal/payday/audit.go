package payday

import (
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
)

// estonianHolidays are the official Estonian public holidays.
// Easter Sunday and Pentecost are listed although they always fall on a Sunday.
var estonianHolidays = []*cal.Holiday{
	aa.NewYear,
	{Name: "Independence Day", Month: time.February, Day: 24, Func: cal.CalcDayOfMonth},
	aa.GoodFriday,
	aa.Easter,
	{Name: "Spring Day", Month: time.May, Day: 1, Func: cal.CalcDayOfMonth},
	aa.Pentecost,
	{Name: "Victory Day", Month: time.June, Day: 23, Func: cal.CalcDayOfMonth},
	{Name: "Midsummer Day", Month: time.June, Day: 24, Func: cal.CalcDayOfMonth},
	{Name: "Day of Restoration of Independence", Month: time.August, Day: 20, Func: cal.CalcDayOfMonth},
	{Name: "Christmas Eve", Month: time.December, Day: 24, Func: cal.CalcDayOfMonth},
	aa.ChristmasDay,
	aa.ChristmasDay2,
}

// OfficialHolidays returns the published Estonian holidays of year, sorted by date
func OfficialHolidays(year int) HolidaySet {
	return officialHolidays(year, estonianHolidays)
}

func officialHolidays(year int, defs []*cal.Holiday) HolidaySet {
	var set HolidaySet
	for _, def := range defs {
		actual, _ := def.Calc(year)
		if actual.IsZero() {
			continue
		}
		set = append(set, Holiday{Date: FromTime(actual), Name: def.Name})
	}
	sortHolidays(set)
	return set
}

// Audit lists official holidays of year that fall on a weekday but are missing
// from Holidays(year). An empty result means the computed set blocks every
// official non-working weekday.
func Audit(year int) (HolidaySet, error) {
	if err := validateYearMonth(year, time.January); err != nil {
		return nil, err
	}
	return audit(Holidays(year), OfficialHolidays(year)), nil
}

func audit(computed, official HolidaySet) HolidaySet {
	var missing HolidaySet
	for _, h := range official {
		wd := h.Date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if !computed.Contains(h.Date) {
			missing = append(missing, h)
		}
	}
	return missing
}

func sortHolidays(s HolidaySet) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Date.Before(s[j].Date)
	})
}
