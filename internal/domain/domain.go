// Package domain holds the shared vocabulary of the bizcal platform:
// calendar kinds and lookup keys, the error kinds surfaced by every layer,
// and helpers for the UTC-midnight date convention used throughout.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies the family of data provider behind a calendar source.
type Kind string

const (
	KindExchange Kind = "exchange" // trading venues, MIC codes (XNYS, XPAR, ...)
	KindCountry  Kind = "country"  // national holiday sets, ISO codes (FR, US, ...)
	KindRFR      Kind = "rfr"      // reference-rate fixing calendars (ESTR, SOFR, ...)
)

// ParseKind converts a kind string to a Kind, or fails with ErrUnknownCalendar.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindExchange:
		return KindExchange, nil
	case KindCountry:
		return KindCountry, nil
	case KindRFR:
		return KindRFR, nil
	}
	return "", fmt.Errorf("%w: kind %q", ErrUnknownCalendar, s)
}

// Key identifies a base calendar source. Two equal keys always resolve to the
// same adapter instance within one registry.
type Key struct {
	Kind Kind
	Code string
}

// NewKey builds a Key with the code normalized the same way registry lookups
// normalize it, so keys built by callers compare equal to cached ones.
func NewKey(kind Kind, code string) Key {
	return Key{Kind: kind, Code: NormalizeCode(code)}
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Code
}

// NormalizeCode upper-cases a provider code and collapses internal
// whitespace. Bloomberg-style tickers use "€" interchangeably with "E"
// ("€STRON Index"), so it is folded as well.
func NormalizeCode(code string) string {
	code = strings.ReplaceAll(code, "€", "E")
	return strings.Join(strings.Fields(strings.ToUpper(code)), " ")
}

// Error kinds. Every failing operation wraps exactly one of these; callers
// dispatch with errors.Is.
var (
	// ErrUnknownCalendar reports a kind/code pair no provider can serve.
	ErrUnknownCalendar = errors.New("unknown calendar")
	// ErrInvalidRange reports a range query with start after end.
	ErrInvalidRange = errors.New("invalid range: start after end")
	// ErrRangeUnsupported reports a date outside a provider's tabulated horizon.
	ErrRangeUnsupported = errors.New("date outside supported range")
	// ErrEmptyCombination reports a combination of fewer than two calendars.
	ErrEmptyCombination = errors.New("combination needs at least two calendars")
	// ErrSearchExhausted reports a business-day search that hit its bound.
	ErrSearchExhausted = errors.New("business day search exhausted")
	// ErrInvalidOffset reports a zero offset requested from a non-business day.
	ErrInvalidOffset = errors.New("zero offset from non-business day")
)

// Date layout used on every wire and file surface.
const DateLayout = "2006-01-02"

// Date returns the UTC-midnight time for a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates t to its UTC-midnight date.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a strict YYYY-MM-DD date string to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
