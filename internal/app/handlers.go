package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/klabast/wb-services/payday-calendar/internal/log"
	"github.com/klabast/wb-services/payday-calendar/internal/payday"
)

type downloadRequest struct {
	Year         int    `validate:"min=1,max=9999"`
	Format       string `validate:"required,oneof=csv json yaml ics"`
	ReminderTime string `validate:"omitempty,len=5"`
}

type monthRequest struct {
	Year  int `validate:"min=1,max=9999"`
	Month int `validate:"min=1,max=12"`
}

// HandleHealth answers liveness probes
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, map[string]string{"status": "ok"})
}

// GetConfig returns the application configuration
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	currentYear := GetCurrentYear()

	savedYears, err := s.store.Years()
	if err != nil {
		log.Error("error listing saved tables: %v", err)
		savedYears = nil
	}

	WriteJSON(w, r, map[string]interface{}{
		"currentYear":  currentYear,
		"savedYears":   savedYears,
		"paydayOfDay":  payday.PaydayOfMonth,
		"reminderDays": payday.ReminderBusinessDays,
		"formats":      []string{FormatCSV, FormatJSON, FormatYAML, FormatICS},
		"holidays":     NewHolidayData(payday.Holidays(currentYear)),
	})
}

// HandleYear returns the payday table of a year
// URL: /api/paydays/{year}
func (s *Server) HandleYear(w http.ResponseWriter, r *http.Request) {
	year, ok := s.yearParam(w, r)
	if !ok {
		return
	}

	entries, err := s.cache.Year(year)
	if err != nil {
		s.writeDateError(w, r, err)
		return
	}

	WriteJSON(w, r, NewYearData(year, entries))
}

// HandleMonth returns payday and reminder of one month
// URL: /api/paydays/{year}/{month}
func (s *Server) HandleMonth(w http.ResponseWriter, r *http.Request) {
	year, errYear := strconv.Atoi(chi.URLParam(r, "year"))
	month, errMonth := strconv.Atoi(chi.URLParam(r, "month"))
	if errYear != nil {
		WriteError(w, r, http.StatusBadRequest, ErrInvalidYear)
		return
	}
	if errMonth != nil {
		WriteError(w, r, http.StatusBadRequest, ErrInvalidMonth)
		return
	}

	if err := s.validate.Struct(monthRequest{Year: year, Month: month}); err != nil {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	info, err := payday.Resolve(year, time.Month(month))
	if err != nil {
		s.writeDateError(w, r, err)
		return
	}

	WriteJSON(w, r, MonthRow{
		Month:        time.Month(month).String(),
		ReminderDate: info.Reminder.String(),
		PaydayDate:   info.Payday.String(),
	})
}

// HandleHolidays returns the holiday set of a year
// Query param: audit=true adds official weekday holidays missing from the set
func (s *Server) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := s.yearParam(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("audit") != "true" {
		WriteJSON(w, r, map[string]interface{}{
			"year":     year,
			"holidays": NewHolidayData(payday.Holidays(year)),
		})
		return
	}

	missing, err := payday.Audit(year)
	if err != nil {
		s.writeDateError(w, r, err)
		return
	}
	WriteJSON(w, r, map[string]interface{}{
		"year":     year,
		"holidays": NewHolidayData(payday.Holidays(year)),
		"missing":  NewHolidayData(missing),
	})
}

// HandleDownload handles export downloads in CSV, JSON, YAML or ICS format
// Query params: year, format, reminderTime (ICS only, HH:MM)
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrInvalidYear)
		return
	}

	req := downloadRequest{
		Year:         year,
		Format:       query.Get("format"),
		ReminderTime: query.Get("reminderTime"),
	}
	if err := s.validate.Struct(req); err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrInvalidFormat+": "+err.Error())
		return
	}
	if req.ReminderTime != "" {
		if _, _, err := ParseClock(req.ReminderTime); err != nil {
			WriteError(w, r, http.StatusBadRequest, ErrInvalidTime)
			return
		}
	}

	entries, err := s.cache.Year(year)
	if err != nil {
		s.writeDateError(w, r, err)
		return
	}

	s.metrics.Exports.WithLabelValues(req.Format).Inc()
	GenerateDownload(w, req.Format, NewYearData(year, entries), EventsFromEntries(entries),
		ICSOptions{ReminderTime: req.ReminderTime})
}

// HandleSubscribe returns an ICS feed of payday and reminder events
// covering the previous, current and next year
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	currentYear := GetCurrentYear()

	var events []Event
	for year := currentYear - 1; year <= currentYear+1; year++ {
		entries, err := s.cache.Year(year)
		if err != nil {
			log.Error("error resolving %d for subscription: %v", year, err)
			continue
		}
		events = append(events, EventsFromEntries(entries)...)
	}

	GenerateSubscriptionICS(w, events)
}

// HandleGetTable returns a saved CSV table
func (s *Server) HandleGetTable(w http.ResponseWriter, r *http.Request) {
	year, ok := s.yearParam(w, r)
	if !ok {
		return
	}

	if !s.store.Exists(year) {
		WriteError(w, r, http.StatusNotFound, ErrTableNotFound)
		return
	}
	csv, err := s.store.Load(year)
	if err != nil {
		log.Error("error reading table %d: %v", year, err)
		WriteError(w, r, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", ContentType(FormatCSV))
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Error("error writing table: %v", err)
	}
}

// HandleSaveTable computes the table of a year and saves it as CSV
func (s *Server) HandleSaveTable(w http.ResponseWriter, r *http.Request) {
	year, ok := s.yearParam(w, r)
	if !ok {
		return
	}

	table, err := s.cache.Table(year)
	if err != nil {
		s.writeDateError(w, r, err)
		return
	}

	path, err := s.store.Save(year, table.CSV())
	if err != nil {
		log.Error("error saving table %d: %v", year, err)
		WriteError(w, r, http.StatusInternalServerError, ErrFailedToSave)
		return
	}
	s.metrics.TablesSaved.Inc()

	WriteJSON(w, r, map[string]interface{}{"year": year, "path": path})
}

func (s *Server) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, ErrInvalidYear)
		return 0, false
	}
	return year, true
}

func (s *Server) writeDateError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, payday.ErrInvalidDate) {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Error("unexpected error: %v", err)
	WriteError(w, r, http.StatusInternalServerError, ErrInternalServer)
}
