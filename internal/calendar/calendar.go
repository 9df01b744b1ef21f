// Package calendar defines the adapter contract every calendar source
// satisfies, plus the composition layers built on top of it: per-date
// overrides, intersection/union combination, and business-day navigation.
//
// A date is "business" when the calendar is open for activity; "holiday"
// means any closed date, weekends included. For every adapter and every
// valid range, BusinessDays and Holidays partition the range exactly.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"bizcal/internal/domain"
)

// Adapter is the capability set every calendar source exposes, independent
// of its underlying data provider. Implementations are immutable after
// construction and safe for concurrent reads.
type Adapter interface {
	// Name identifies the adapter for logs and rendered output.
	Name() string

	// IsBusinessDay reports whether d is an open day. It is total over all
	// dates for rule-based sources; tabulated sources fail with
	// domain.ErrRangeUnsupported outside their horizon.
	IsBusinessDay(d time.Time) (bool, error)

	// BusinessDays returns the ascending open days in [start, end], both
	// bounds inclusive. Fails with domain.ErrInvalidRange when start > end.
	BusinessDays(start, end time.Time) ([]time.Time, error)

	// Holidays returns the ascending closed days in [start, end], weekends
	// included. Same range contract as BusinessDays.
	Holidays(start, end time.Time) ([]time.Time, error)
}

// Mode selects how a combined calendar merges its constituents.
type Mode string

const (
	// Intersection is open only when every constituent is open.
	Intersection Mode = "intersection"
	// Union is open when at least one constituent is open.
	Union Mode = "union"
)

// ParseMode converts a mode string, accepting any casing.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Intersection:
		return Intersection, nil
	case Union:
		return Union, nil
	}
	return "", fmt.Errorf("unknown combination mode %q (want %q or %q)", s, Intersection, Union)
}

// CheckRange validates the shared range contract.
func CheckRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: %s > %s", domain.ErrInvalidRange,
			domain.FormatDate(start), domain.FormatDate(end))
	}
	return nil
}

// CollectDays walks [start, end] one day at a time and collects the dates
// whose IsBusinessDay result equals business. It is the canonical range
// implementation: any adapter built on it is consistent with its own
// membership test by construction.
func CollectDays(a Adapter, start, end time.Time, business bool) ([]time.Time, error) {
	if err := CheckRange(start, end); err != nil {
		return nil, err
	}
	start, end = domain.DayOf(start), domain.DayOf(end)

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		open, err := a.IsBusinessDay(d)
		if err != nil {
			return nil, err
		}
		if open == business {
			out = append(out, d)
		}
	}
	return out, nil
}

// CountBusinessDays counts the open days in [start, end], both bounds
// inclusive.
func CountBusinessDays(a Adapter, start, end time.Time) (int, error) {
	days, err := a.BusinessDays(start, end)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}
