package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
	"bizcal/internal/hub"
	"bizcal/internal/source"
)

// Server serves the calendar HTTP API. All endpoints resolve calendars
// through the shared Hub, so repeated requests hit cached adapters.
type Server struct {
	hub *hub.Hub
	log *slog.Logger
}

// NewServer creates a calendar HTTP server on top of the given hub.
func NewServer(h *hub.Hub, log *slog.Logger) *Server {
	return &Server{hub: h, log: log}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/calendars", s.handleCalendars)
	mux.HandleFunc("GET /api/v1/is-business-day", s.handleCheck)
	mux.HandleFunc("GET /api/v1/business-days", s.handleBusinessDays)
	mux.HandleFunc("GET /api/v1/holidays", s.handleHolidays)
	mux.HandleFunc("GET /api/v1/count", s.handleCount)
	mux.HandleFunc("GET /api/v1/next", s.handleNext)
	mux.HandleFunc("GET /api/v1/previous", s.handlePrevious)
	mux.HandleFunc("GET /api/v1/offset", s.handleOffset)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeDomainError maps calendar errors to HTTP statuses: unknown calendars
// are 404, unsatisfiable queries 422, everything else bad input.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domain.ErrUnknownCalendar):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSearchExhausted),
		errors.Is(err, domain.ErrRangeUnsupported):
		status = http.StatusUnprocessableEntity
	}
	s.log.Warn("request failed", "status", status, "error", err)
	writeError(w, status, err.Error())
}

// ---------------------------------------------------------------------------
// Request parsing
// ---------------------------------------------------------------------------

// resolveCalendar builds the adapter for a request. One "cal=kind:code"
// param resolves a base calendar; several are combined under "mode"
// (intersection by default).
func (s *Server) resolveCalendar(r *http.Request) (calendar.Adapter, error) {
	cals := r.URL.Query()["cal"]
	if len(cals) == 0 {
		return nil, fmt.Errorf("cal parameter required (kind:code)")
	}

	keys := make([]domain.Key, len(cals))
	for i, c := range cals {
		key, err := parseCalParam(c)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	if len(keys) == 1 {
		return s.hub.Get(keys[0].Kind, keys[0].Code)
	}

	mode := calendar.Intersection
	if m := r.URL.Query().Get("mode"); m != "" {
		var err error
		if mode, err = calendar.ParseMode(m); err != nil {
			return nil, err
		}
	}
	return s.hub.Combine(keys, mode)
}

func parseCalParam(c string) (domain.Key, error) {
	for i := 0; i < len(c); i++ {
		if c[i] == ':' {
			kind, err := domain.ParseKind(c[:i])
			if err != nil {
				return domain.Key{}, err
			}
			if c[i+1:] == "" {
				return domain.Key{}, fmt.Errorf("cal %q: empty code", c)
			}
			return domain.NewKey(kind, c[i+1:]), nil
		}
	}
	return domain.Key{}, fmt.Errorf("cal %q: want kind:code", c)
}

func dateParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, fmt.Errorf("%s parameter required (YYYY-MM-DD)", name)
	}
	return domain.ParseDate(v)
}

func rangeParams(r *http.Request) (start, end time.Time, err error) {
	if start, err = dateParam(r, "start"); err != nil {
		return
	}
	end, err = dateParam(r, "end")
	return
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (s *Server) handleCalendars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, CalendarsResponse{
		Exchanges: source.SupportedExchanges(),
		Countries: source.SupportedCountries(),
		RFRs:      source.SupportedRFRs(),
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	a, err := s.resolveCalendar(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	d, err := dateParam(r, "date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	open, err := a.IsBusinessDay(d)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, CheckResponse{
		Calendar:      a.Name(),
		Date:          domain.FormatDate(d),
		IsBusinessDay: open,
	})
}

func (s *Server) handleBusinessDays(w http.ResponseWriter, r *http.Request) {
	s.handleDays(w, r, true)
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	s.handleDays(w, r, false)
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request, business bool) {
	a, err := s.resolveCalendar(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	start, end, err := rangeParams(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	var days []time.Time
	if business {
		days, err = a.BusinessDays(start, end)
	} else {
		days, err = a.Holidays(start, end)
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = domain.FormatDate(d)
	}
	writeJSON(w, DaysResponse{
		Calendar: a.Name(),
		Start:    domain.FormatDate(start),
		End:      domain.FormatDate(end),
		Count:    len(dates),
		Dates:    dates,
	})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	a, err := s.resolveCalendar(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	start, end, err := rangeParams(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	n, err := calendar.CountBusinessDays(a, start, end)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, CountResponse{
		Calendar: a.Name(),
		Start:    domain.FormatDate(start),
		End:      domain.FormatDate(end),
		Count:    n,
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, calendar.NextBusinessDay)
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, calendar.PreviousBusinessDay)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, step func(calendar.Adapter, time.Time) (time.Time, error)) {
	a, err := s.resolveCalendar(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	from, err := dateParam(r, "date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	d, err := step(a, from)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, NavigateResponse{
		Calendar: a.Name(),
		From:     domain.FormatDate(from),
		Date:     domain.FormatDate(d),
	})
}

func (s *Server) handleOffset(w http.ResponseWriter, r *http.Request) {
	a, err := s.resolveCalendar(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	from, err := dateParam(r, "date")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		s.writeDomainError(w, fmt.Errorf("n parameter required (integer): %w", err))
		return
	}

	d, err := calendar.OffsetBusinessDays(a, from, n)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, NavigateResponse{
		Calendar: a.Name(),
		From:     domain.FormatDate(from),
		Offset:   n,
		Date:     domain.FormatDate(d),
	})
}
