package app

import (
	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

// MonthRow is one month of a payday table in export form
type MonthRow struct {
	Month        string `json:"month" yaml:"month" csv:"Month"`
	ReminderDate string `json:"reminder_date" yaml:"reminder_date" csv:"Reminder date"`
	PaydayDate   string `json:"payday_date" yaml:"payday_date" csv:"Payday date"`
}

// YearData is the payday table of one year
type YearData struct {
	Year   int        `json:"year" yaml:"year"`
	Months []MonthRow `json:"months" yaml:"months"`
}

// HolidayData is one holiday in export form
type HolidayData struct {
	Date    string `json:"date" yaml:"date"`
	Name    string `json:"name" yaml:"name"`
	Weekday string `json:"weekday" yaml:"weekday"`
}

// Event is a single all-day calendar event (payday or reminder)
type Event struct {
	Date        payday.Date
	Type        string
	Description string
}

// Event types
const (
	EventPayday   = "payday"
	EventReminder = "reminder"
)

// NewYearData converts resolved entries to export form
func NewYearData(year int, entries []payday.Entry) YearData {
	rows := make([]MonthRow, len(entries))
	for i, e := range entries {
		rows[i] = MonthRow{
			Month:        e.Month.String(),
			ReminderDate: e.Reminder.String(),
			PaydayDate:   e.Payday.String(),
		}
	}
	return YearData{Year: year, Months: rows}
}

// NewHolidayData converts a holiday set to export form
func NewHolidayData(set payday.HolidaySet) []HolidayData {
	out := make([]HolidayData, len(set))
	for i, h := range set {
		out[i] = HolidayData{Date: h.Date.String(), Name: h.Name, Weekday: h.Date.Weekday().String()}
	}
	return out
}

// EventsFromEntries returns a reminder and a payday event per entry, in date order
func EventsFromEntries(entries []payday.Entry) []Event {
	events := make([]Event, 0, 2*len(entries))
	for _, e := range entries {
		events = append(events,
			Event{Date: e.Reminder, Type: EventReminder, Description: "Payday reminder " + e.Month.String()},
			Event{Date: e.Payday, Type: EventPayday, Description: "Payday " + e.Month.String()},
		)
	}
	SortEventsByDate(events)
	return events
}
