package calendar

import (
	"fmt"
	"strings"
	"time"

	"bizcal/internal/domain"
)

// Compile-time interface check.
var _ Adapter = (*CombinedAdapter)(nil)

// CombinedAdapter merges two or more adapters under a combination mode.
// Constituents are held by reference and may still be queried on their own;
// the combined adapter is immutable after construction. A constituent may
// itself be a CombinedAdapter — nesting yields the same results as a flat
// combination under the same mode.
type CombinedAdapter struct {
	parts []Adapter
	mode  Mode
	name  string
}

// Combine builds a composite adapter. Fewer than two adapters fail with
// domain.ErrEmptyCombination: a combination of one calendar is meaningless
// and is rejected rather than silently accepted.
func Combine(adapters []Adapter, mode Mode) (*CombinedAdapter, error) {
	if len(adapters) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrEmptyCombination, len(adapters))
	}
	if mode != Intersection && mode != Union {
		return nil, fmt.Errorf("unknown combination mode %q", mode)
	}

	names := make([]string, len(adapters))
	parts := make([]Adapter, len(adapters))
	for i, a := range adapters {
		parts[i] = a
		names[i] = a.Name()
	}
	return &CombinedAdapter{
		parts: parts,
		mode:  mode,
		name:  fmt.Sprintf("%s(%s)", mode, strings.Join(names, ", ")),
	}, nil
}

func (c *CombinedAdapter) Name() string { return c.name }

// Mode returns the combination mode.
func (c *CombinedAdapter) Mode() Mode { return c.mode }

// IsBusinessDay evaluates every constituent for d. Intersection requires all
// open; union requires at least one. Constituent errors propagate unchanged.
func (c *CombinedAdapter) IsBusinessDay(d time.Time) (bool, error) {
	anyOpen := false
	for _, p := range c.parts {
		open, err := p.IsBusinessDay(d)
		if err != nil {
			return false, err
		}
		if c.mode == Intersection && !open {
			return false, nil
		}
		if open {
			anyOpen = true
		}
	}
	if c.mode == Intersection {
		return true, nil
	}
	return anyOpen, nil
}

// BusinessDays scans the range date by date through IsBusinessDay rather
// than merging each constituent's precomputed list, so the range view can
// never disagree with the membership test.
func (c *CombinedAdapter) BusinessDays(start, end time.Time) ([]time.Time, error) {
	return CollectDays(c, start, end, true)
}

// Holidays is the complement of BusinessDays within the same bounds.
func (c *CombinedAdapter) Holidays(start, end time.Time) ([]time.Time, error) {
	return CollectDays(c, start, end, false)
}
