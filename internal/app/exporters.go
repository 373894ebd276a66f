package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/klabast/wb-services/payday-calendar/internal/log"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"
)

// eventNamespace seeds the name-based UUIDs of calendar events
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(ICSDomain))

// writeString writes to w and logs any error (helper for ICS generation)
func writeString(w io.Writer, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Error("error writing export: %v", err)
	}
}

// EventUID returns a UID that stays the same for the same event across exports
func EventUID(e Event) string {
	id := uuid.NewSHA1(eventNamespace, []byte(e.Type+"/"+e.Date.String()))
	return fmt.Sprintf("%s@%s", id, ICSDomain)
}

// ICSOptions controls optional parts of an ICS export
type ICSOptions struct {
	// ReminderTime adds a display alarm at HH:MM on the reminder day. Empty disables alarms.
	ReminderTime string
	// Subscription marks the feed for calendar subscriptions (METHOD:PUBLISH, refresh hint, no alarms)
	Subscription bool
	Name         string
	Now          time.Time
}

// WriteICS writes events as an iCalendar document
func WriteICS(w io.Writer, events []Event, opts ICSOptions) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	writeString(w, "BEGIN:VCALENDAR\n")
	writeString(w, "VERSION:2.0\n")
	writeString(w, "PRODID:%s\n", ICSProductID)
	if opts.Subscription {
		writeString(w, "METHOD:PUBLISH\n")
	}
	writeString(w, "X-WR-CALNAME:%s\n", opts.Name)
	writeString(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	writeString(w, "CALSCALE:GREGORIAN\n")
	if opts.Subscription {
		writeString(w, "X-PUBLISHED-TTL:PT12H\n")
	}

	for _, event := range events {
		eventDate := event.Date.Time()

		writeString(w, "BEGIN:VEVENT\n")
		writeString(w, "UID:%s\n", EventUID(event))
		writeString(w, "DTSTAMP:%s\n", now.UTC().Format("20060102T150405Z"))
		writeString(w, "DTSTART;VALUE=DATE:%s\n", eventDate.Format("20060102"))
		writeString(w, "DTEND;VALUE=DATE:%s\n", eventDate.AddDate(0, 0, 1).Format("20060102"))
		writeString(w, "SUMMARY:%s\n", event.Description)
		writeString(w, "CATEGORIES:%s\n", event.Type)

		if !opts.Subscription && opts.ReminderTime != "" && event.Type == EventReminder {
			AddAlarm(w, eventDate, 0, opts.ReminderTime, event.Description)
		}

		writeString(w, "END:VEVENT\n")
	}

	writeString(w, "END:VCALENDAR\n")
}

// AddAlarm adds an alarm/reminder to an ICS event
func AddAlarm(w io.Writer, eventDate time.Time, daysBefore int, alarmTime string, description string) {
	hour, minute, err := ParseClock(alarmTime)
	if err != nil {
		return
	}

	// Event is at 00:00 on eventDate, alarm should be at alarmTime on (eventDate - daysBefore)
	alarmDate := eventDate.AddDate(0, 0, -daysBefore)
	alarmDateTime := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), hour, minute, 0, 0, time.UTC)
	eventStart := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)

	totalMinutes := int(alarmDateTime.Sub(eventStart).Minutes())
	sign := ""
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}

	days := totalMinutes / (24 * 60)
	hours := totalMinutes % (24 * 60) / 60
	minutes := totalMinutes % 60

	writeString(w, "BEGIN:VALARM\n")
	writeString(w, "ACTION:DISPLAY\n")
	writeString(w, "DESCRIPTION:%s\n", description)
	writeString(w, "TRIGGER:%sP%dDT%dH%dM\n", sign, days, hours, minutes)
	writeString(w, "END:VALARM\n")
}

// WriteCSV writes the month rows with a header line
func WriteCSV(w io.Writer, data YearData) error {
	rows := data.Months
	if rows == nil {
		rows = []MonthRow{}
	}
	return gocsv.Marshal(&rows, w)
}

// WriteJSONData writes data as indented JSON
func WriteJSONData(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteYAML writes data as YAML
func WriteYAML(w io.Writer, data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Export writes data in the given format
func Export(w io.Writer, format string, data YearData, events []Event, opts ICSOptions) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, data)
	case FormatJSON:
		return WriteJSONData(w, data)
	case FormatYAML:
		return WriteYAML(w, data)
	case FormatICS:
		if opts.Name == "" {
			opts.Name = fmt.Sprintf("Paydays %d", data.Year)
		}
		WriteICS(w, events, opts)
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/x-yaml; charset=utf-8"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	}
	return "application/octet-stream"
}

// GenerateDownload writes an export as a file attachment.
// The export is rendered in full before any header is sent.
func GenerateDownload(w http.ResponseWriter, format string, data YearData, events []Event, opts ICSOptions) {
	var buf bytes.Buffer
	if err := Export(&buf, format, data, events, opts); err != nil {
		log.Error("error generating %s export: %v", format, err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=paydays_%d.%s", data.Year, format))
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("error writing %s export: %v", format, err)
	}
}

// GenerateSubscriptionICS writes an inline iCalendar subscription feed
func GenerateSubscriptionICS(w http.ResponseWriter, events []Event) {
	w.Header().Set("Content-Type", ContentType(FormatICS))
	WriteICS(w, events, ICSOptions{Subscription: true, Name: "Paydays"})
}
