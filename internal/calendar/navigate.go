package calendar

import (
	"fmt"
	"time"

	"bizcal/internal/domain"
)

// MaxSearchDays bounds every directional business-day search. Ten years of
// calendar days is far beyond any real market gap; hitting the bound means
// the adapter is effectively always closed (e.g. an intersection of
// disjoint calendars), and the search fails with domain.ErrSearchExhausted
// instead of looping forever.
const MaxSearchDays = 3660

// NextBusinessDay returns the smallest open date strictly after d.
// Works uniformly over any adapter: base, overridden, or combined.
func NextBusinessDay(a Adapter, d time.Time) (time.Time, error) {
	return step(a, d, 1)
}

// PreviousBusinessDay returns the largest open date strictly before d.
func PreviousBusinessDay(a Adapter, d time.Time) (time.Time, error) {
	return step(a, d, -1)
}

func step(a Adapter, d time.Time, dir int) (time.Time, error) {
	cur := domain.DayOf(d)
	for i := 0; i < MaxSearchDays; i++ {
		cur = cur.AddDate(0, 0, dir)
		open, err := a.IsBusinessDay(cur)
		if err != nil {
			return time.Time{}, err
		}
		if open {
			return cur, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no business day within %d days of %s on %s",
		domain.ErrSearchExhausted, MaxSearchDays, domain.FormatDate(d), a.Name())
}

// OffsetBusinessDays advances (n > 0) or retreats (n < 0) by |n| business
// days from d. For n == 0 the date is returned unchanged only when it is
// itself a business day; zero business days from a closed day is undefined
// and fails with domain.ErrInvalidOffset rather than rounding silently.
func OffsetBusinessDays(a Adapter, d time.Time, n int) (time.Time, error) {
	cur := domain.DayOf(d)

	if n == 0 {
		open, err := a.IsBusinessDay(cur)
		if err != nil {
			return time.Time{}, err
		}
		if !open {
			return time.Time{}, fmt.Errorf("%w: %s on %s",
				domain.ErrInvalidOffset, domain.FormatDate(cur), a.Name())
		}
		return cur, nil
	}

	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	for i := 0; i < n; i++ {
		next, err := step(a, cur, dir)
		if err != nil {
			return time.Time{}, err
		}
		cur = next
	}
	return cur, nil
}
