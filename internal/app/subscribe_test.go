package app

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

func TestGenerateSubscriptionICS(t *testing.T) {
	_, events := testYear(t, 2024)

	w := httptest.NewRecorder()
	GenerateSubscriptionICS(w, events)

	resp := w.Result()
	body := w.Body.String()

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/calendar") {
		t.Errorf("Expected Content-Type text/calendar, got %s", contentType)
	}
	if !strings.Contains(contentType, "charset=utf-8") {
		t.Error("Content-Type should include charset=utf-8")
	}

	// Subscriptions are served inline
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		t.Errorf("Subscription should not have Content-Disposition header, got: %s", cd)
	}

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"METHOD:PUBLISH",
		"X-PUBLISHED-TTL:PT12H",
		"X-WR-CALNAME:Paydays",
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS subscription output missing required field: %s", field)
		}
	}

	if got := strings.Count(body, "BEGIN:VALARM"); got != 0 {
		t.Errorf("Subscription should not contain alarms (found %d VALARM blocks)", got)
	}
}

func TestGenerateSubscriptionICS_EmptyEvents(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateSubscriptionICS(w, []Event{})

	body := w.Body.String()

	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("Missing BEGIN:VCALENDAR")
	}
	if !strings.Contains(body, "END:VCALENDAR") {
		t.Error("Missing END:VCALENDAR")
	}
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 0 {
		t.Errorf("Expected 0 events, got %d", got)
	}
}

func TestGenerateSubscriptionICS_UniqueUIDs(t *testing.T) {
	d := payday.MustDate(2024, time.March, 8)
	events := []Event{
		{Date: d, Type: EventReminder, Description: "Payday reminder March"},
		{Date: d, Type: EventPayday, Description: "Payday March"},
	}

	w := httptest.NewRecorder()
	GenerateSubscriptionICS(w, events)
	body := w.Body.String()

	for _, e := range events {
		if !strings.Contains(body, "UID:"+EventUID(e)) {
			t.Errorf("Missing UID for %s", e.Type)
		}
	}
	if EventUID(events[0]) == EventUID(events[1]) {
		t.Error("Events on the same day need different UIDs")
	}
}

func TestEventsFromEntriesOrder(t *testing.T) {
	_, events := testYear(t, 2024)

	if len(events) != 24 {
		t.Fatalf("Expected 24 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			t.Fatalf("Events not sorted at %d: %s before %s", i, events[i].Date, events[i-1].Date)
		}
	}
	if events[0].Type != EventReminder || events[0].Date.String() != "05.01.2024" {
		t.Errorf("First event = %+v, want January reminder", events[0])
	}
	if events[23].Type != EventPayday || events[23].Date.String() != "10.12.2024" {
		t.Errorf("Last event = %+v, want December payday", events[23])
	}
}
