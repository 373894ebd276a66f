package app

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
)

// Response is the JSON envelope of every API reply
type Response struct {
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// WriteJSON renders data inside an OK envelope
func WriteJSON(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, Response{Status: StatusOK, Data: data})
}

// WriteError renders msg with the given HTTP status
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Status: StatusError, Error: msg})
}

// SortEventsByDate sorts events by date in ascending order, reminders first on ties
func SortEventsByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// GetCurrentYear returns the current calendar year
func GetCurrentYear() int {
	return time.Now().Year()
}

// ParseClock parses an HH:MM time of day
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return hour, minute, nil
}
