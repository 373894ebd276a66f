package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

func testYear(t *testing.T, year int) (YearData, []Event) {
	t.Helper()
	entries, err := payday.Year(year)
	if err != nil {
		t.Fatalf("payday.Year(%d) failed: %v", year, err)
	}
	return NewYearData(year, entries), EventsFromEntries(entries)
}

func TestWriteICS(t *testing.T) {
	_, events := testYear(t, 2024)

	var buf bytes.Buffer
	WriteICS(&buf, events, ICSOptions{
		ReminderTime: "09:30",
		Name:         "Paydays 2024",
		Now:          time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	body := buf.String()

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"X-WR-CALNAME:Paydays 2024",
		"X-WR-TIMEZONE:Europe/Tallinn",
		"DTSTAMP:20240101T120000Z",
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing required field: %s", field)
		}
	}

	if strings.Contains(body, "METHOD:PUBLISH") {
		t.Error("Download should not contain METHOD:PUBLISH")
	}

	// 12 paydays + 12 reminders
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 24 {
		t.Errorf("Expected 24 events, got %d", got)
	}

	// January 2024: reminder 05.01, payday 10.01
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20240105") {
		t.Error("Missing January reminder")
	}
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20240110") {
		t.Error("Missing January payday")
	}
	if !strings.Contains(body, "DTEND;VALUE=DATE:20240111") {
		t.Error("All-day event should end on next day")
	}
	if !strings.Contains(body, "SUMMARY:Payday reminder January") {
		t.Error("Missing reminder summary")
	}
	if !strings.Contains(body, "CATEGORIES:payday") {
		t.Error("Missing payday category")
	}

	// Alarms only on reminder events
	if got := strings.Count(body, "BEGIN:VALARM"); got != 12 {
		t.Errorf("Expected 12 alarms, got %d", got)
	}
	if !strings.Contains(body, "TRIGGER:P0DT9H30M") {
		t.Error("Alarm should fire at 09:30 on the reminder day")
	}
}

func TestWriteICSWithoutReminderTime(t *testing.T) {
	_, events := testYear(t, 2024)

	var buf bytes.Buffer
	WriteICS(&buf, events, ICSOptions{Name: "Paydays 2024"})

	if got := strings.Count(buf.String(), "BEGIN:VALARM"); got != 0 {
		t.Errorf("Expected no alarms, got %d", got)
	}
}

func TestAddAlarm(t *testing.T) {
	tests := []struct {
		name        string
		eventDate   time.Time
		daysBefore  int
		alarmTime   string
		description string
		wantTrigger string
	}{
		{
			name:        "2 days before at 18:00",
			eventDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			daysBefore:  2,
			alarmTime:   "18:00",
			description: "Payday January",
			wantTrigger: "-P1DT6H0M",
		},
		{
			name:        "1 day before at 19:00",
			eventDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			daysBefore:  1,
			alarmTime:   "19:00",
			description: "Payday January",
			wantTrigger: "-P0DT5H0M",
		},
		{
			name:        "Same day at 07:00",
			eventDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			daysBefore:  0,
			alarmTime:   "07:00",
			description: "Payday reminder January",
			wantTrigger: "P0DT7H0M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			AddAlarm(&buf, tt.eventDate, tt.daysBefore, tt.alarmTime, tt.description)

			output := buf.String()

			if !strings.Contains(output, "BEGIN:VALARM") {
				t.Error("Missing BEGIN:VALARM")
			}
			if !strings.Contains(output, "END:VALARM") {
				t.Error("Missing END:VALARM")
			}
			if !strings.Contains(output, "ACTION:DISPLAY") {
				t.Error("Missing ACTION:DISPLAY")
			}
			if !strings.Contains(output, "TRIGGER:"+tt.wantTrigger) {
				t.Errorf("Expected TRIGGER:%s, got output:\n%s", tt.wantTrigger, output)
			}
			if !strings.Contains(output, tt.description) {
				t.Errorf("Missing description: %s", tt.description)
			}
		})
	}
}

func TestAddAlarmInvalidTime(t *testing.T) {
	var buf bytes.Buffer
	AddAlarm(&buf, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 0, "25:00", "Payday")
	if buf.Len() != 0 {
		t.Errorf("Invalid alarm time should write nothing, got %q", buf.String())
	}
}

func TestEventUID(t *testing.T) {
	d := payday.MustDate(2024, time.January, 10)
	a := EventUID(Event{Date: d, Type: EventPayday})
	b := EventUID(Event{Date: d, Type: EventPayday})
	c := EventUID(Event{Date: d, Type: EventReminder})

	if a != b {
		t.Errorf("UID should be stable, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Payday and reminder on the same day need different UIDs")
	}
	if !strings.HasSuffix(a, "@"+ICSDomain) {
		t.Errorf("UID should end with @%s, got %s", ICSDomain, a)
	}
}

func TestWriteCSV(t *testing.T) {
	data, _ := testYear(t, 2024)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, data); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}
	body := buf.String()

	if !strings.HasPrefix(body, "Month,Reminder date,Payday date\n") {
		t.Errorf("Missing CSV header, got %q", body)
	}
	if !strings.Contains(body, "January,05.01.2024,10.01.2024\n") {
		t.Error("Missing January row in CSV")
	}
	if !strings.Contains(body, "November,05.11.2024,08.11.2024\n") {
		t.Error("Missing November row in CSV")
	}
}

func TestWriteJSONData(t *testing.T) {
	data, _ := testYear(t, 2024)

	var buf bytes.Buffer
	if err := WriteJSONData(&buf, data); err != nil {
		t.Fatalf("WriteJSONData() failed: %v", err)
	}

	var decoded YearData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Year != 2024 || len(decoded.Months) != 12 {
		t.Fatalf("Unexpected decoded data: %+v", decoded)
	}
	if decoded.Months[1].PaydayDate != "09.02.2024" {
		t.Errorf("February payday = %s, want 09.02.2024", decoded.Months[1].PaydayDate)
	}
	if !strings.Contains(buf.String(), `"reminder_date": "06.02.2024"`) {
		t.Error("JSON should be indented and use snake_case keys")
	}
}

func TestWriteYAML(t *testing.T) {
	data, _ := testYear(t, 2024)

	var buf bytes.Buffer
	if err := WriteYAML(&buf, data); err != nil {
		t.Fatalf("WriteYAML() failed: %v", err)
	}

	var decoded YearData
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if decoded.Months[3].Month != "April" || decoded.Months[3].PaydayDate != "10.04.2024" {
		t.Errorf("Unexpected April row: %+v", decoded.Months[3])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	data, events := testYear(t, 2024)

	var buf bytes.Buffer
	if err := Export(&buf, "xml", data, events, ICSOptions{}); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestGenerateDownload(t *testing.T) {
	data, events := testYear(t, 2024)

	tests := []struct {
		format      string
		contentType string
	}{
		{FormatCSV, "text/csv"},
		{FormatJSON, "application/json"},
		{FormatYAML, "application/x-yaml"},
		{FormatICS, "text/calendar"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := httptest.NewRecorder()
			GenerateDownload(w, tt.format, data, events, ICSOptions{})

			resp := w.Result()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("Expected status 200, got %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
				t.Errorf("Expected Content-Type %s, got %s", tt.contentType, ct)
			}
			want := "attachment; filename=paydays_2024." + tt.format
			if cd := resp.Header.Get("Content-Disposition"); cd != want {
				t.Errorf("Content-Disposition = %q, want %q", cd, want)
			}
			if w.Body.Len() == 0 {
				t.Error("Empty download body")
			}
		})
	}
}

func TestICSDefaultName(t *testing.T) {
	data, events := testYear(t, 2025)

	var buf bytes.Buffer
	if err := Export(&buf, FormatICS, data, events, ICSOptions{}); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "X-WR-CALNAME:Paydays 2025") {
		t.Error("ICS export should be named after the year")
	}
}

func TestGenerateDownloadFailureSendsOnlyError(t *testing.T) {
	data, events := testYear(t, 2024)

	w := httptest.NewRecorder()
	GenerateDownload(w, "xml", data, events, ICSOptions{})

	resp := w.Result()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		t.Errorf("Failed export should not be an attachment, got %q", cd)
	}
	if body := strings.TrimSpace(w.Body.String()); body != ErrInternalServer {
		t.Errorf("Body = %q, want only %q", body, ErrInternalServer)
	}
}
