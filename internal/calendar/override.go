package calendar

import (
	"fmt"
	"sort"
	"time"

	"bizcal/internal/domain"
)

// Compile-time interface check.
var _ Adapter = (*OverrideAdapter)(nil)

// OverrideAdapter decorates a base adapter with per-date forced
// classifications: added holidays (forced closed) and removed holidays
// (forced open). The base adapter is never mutated; callers holding the
// original reference keep its unmodified behavior.
//
// A date present in both sets is forced closed: additions win. This is the
// documented tie-break, not an error.
type OverrideAdapter struct {
	base   Adapter
	add    map[time.Time]struct{}
	remove map[time.Time]struct{}
	name   string
}

// WithOverrides wraps base with forced holiday additions and removals.
// Nil or empty slices are fine; the wrapper is cheap to construct and is
// never cached by the registry.
func WithOverrides(base Adapter, addHolidays, removeHolidays []time.Time) *OverrideAdapter {
	o := &OverrideAdapter{
		base:   base,
		add:    make(map[time.Time]struct{}, len(addHolidays)),
		remove: make(map[time.Time]struct{}, len(removeHolidays)),
	}
	for _, d := range addHolidays {
		o.add[domain.DayOf(d)] = struct{}{}
	}
	for _, d := range removeHolidays {
		o.remove[domain.DayOf(d)] = struct{}{}
	}
	o.name = fmt.Sprintf("%s[+%d -%d]", base.Name(), len(o.add), len(o.remove))
	return o
}

func (o *OverrideAdapter) Name() string { return o.name }

// IsBusinessDay applies the override sets before delegating: added dates are
// closed, removed dates are open, everything else follows the base.
func (o *OverrideAdapter) IsBusinessDay(d time.Time) (bool, error) {
	d = domain.DayOf(d)
	if _, ok := o.add[d]; ok {
		return false, nil
	}
	if _, ok := o.remove[d]; ok {
		return true, nil
	}
	return o.base.IsBusinessDay(d)
}

// BusinessDays enumerates the base result and patches it per the override
// sets: added dates are dropped, removed dates are inserted.
func (o *OverrideAdapter) BusinessDays(start, end time.Time) ([]time.Time, error) {
	baseDays, err := o.base.BusinessDays(start, end)
	if err != nil {
		return nil, err
	}
	start, end = domain.DayOf(start), domain.DayOf(end)

	out := make([]time.Time, 0, len(baseDays))
	present := make(map[time.Time]struct{}, len(baseDays))
	for _, d := range baseDays {
		if _, forced := o.add[d]; forced {
			continue
		}
		out = append(out, d)
		present[d] = struct{}{}
	}
	for d := range o.remove {
		if d.Before(start) || d.After(end) {
			continue
		}
		if _, closed := o.add[d]; closed { // additions win
			continue
		}
		if _, ok := present[d]; !ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// Holidays enumerates the base result and patches it symmetrically to
// BusinessDays, preserving the partition invariant.
func (o *OverrideAdapter) Holidays(start, end time.Time) ([]time.Time, error) {
	baseDays, err := o.base.Holidays(start, end)
	if err != nil {
		return nil, err
	}
	start, end = domain.DayOf(start), domain.DayOf(end)

	out := make([]time.Time, 0, len(baseDays))
	present := make(map[time.Time]struct{}, len(baseDays))
	for _, d := range baseDays {
		if _, forcedOpen := o.remove[d]; forcedOpen {
			if _, closed := o.add[d]; !closed {
				continue
			}
		}
		out = append(out, d)
		present[d] = struct{}{}
	}
	for d := range o.add {
		if d.Before(start) || d.After(end) {
			continue
		}
		if _, ok := present[d]; !ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// Overrides returns sorted copies of the override sets, for display.
func (o *OverrideAdapter) Overrides() (added, removed []time.Time) {
	for d := range o.add {
		added = append(added, d)
	}
	for d := range o.remove {
		removed = append(removed, d)
	}
	sort.Slice(added, func(i, j int) bool { return added[i].Before(added[j]) })
	sort.Slice(removed, func(i, j int) bool { return removed[i].Before(removed[j]) })
	return added, removed
}
