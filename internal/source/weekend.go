package source

import (
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
)

// Compile-time interface check.
var _ calendar.Adapter = (*Weekend)(nil)

// Weekend is the trivial calendar: closed on Saturdays and Sundays, open
// every other day. Useful as a baseline and in tests.
type Weekend struct{}

// NewWeekend returns the weekend-only calendar.
func NewWeekend() *Weekend { return &Weekend{} }

func (*Weekend) Name() string { return "weekend" }

func (*Weekend) IsBusinessDay(d time.Time) (bool, error) {
	return !domain.IsWeekend(d), nil
}

func (w *Weekend) BusinessDays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(w, start, end, true)
}

func (w *Weekend) Holidays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(w, start, end, false)
}
