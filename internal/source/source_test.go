package source

import (
	"errors"
	"testing"
	"time"

	"bizcal/internal/domain"
)

func date(y int, m time.Month, d int) time.Time { return domain.Date(y, m, d) }

func mustOpen(t *testing.T, a interface {
	IsBusinessDay(time.Time) (bool, error)
}, d time.Time, want bool) {
	t.Helper()
	got, err := a.IsBusinessDay(d)
	if err != nil {
		t.Fatalf("IsBusinessDay(%s): %v", domain.FormatDate(d), err)
	}
	if got != want {
		t.Errorf("IsBusinessDay(%s) = %v, want %v", domain.FormatDate(d), got, want)
	}
}

func TestWeekend(t *testing.T) {
	w := NewWeekend()
	mustOpen(t, w, date(2026, time.January, 19), true)  // Monday
	mustOpen(t, w, date(2026, time.January, 17), false) // Saturday
	mustOpen(t, w, date(2026, time.January, 1), true)   // holidays are not its business
}

func TestExchangeTable(t *testing.T) {
	ex, err := NewExchange("xnys")
	if err != nil {
		t.Fatalf("NewExchange: %v", err)
	}
	if ex.Name() != "exchange:XNYS" {
		t.Errorf("Name() = %q", ex.Name())
	}

	mustOpen(t, ex, date(2026, time.July, 3), false) // Independence Day observed
	mustOpen(t, ex, date(2026, time.July, 6), true)
	mustOpen(t, ex, date(2026, time.January, 19), false) // MLK Day
	mustOpen(t, ex, date(2026, time.January, 17), false) // Saturday
	mustOpen(t, ex, date(2026, time.January, 20), true)
}

func TestExchangeHorizon(t *testing.T) {
	ex, err := NewExchange("XNYS")
	if err != nil {
		t.Fatalf("NewExchange: %v", err)
	}
	start, end := ex.Horizon()
	if !start.Equal(date(2023, time.January, 1)) || !end.Equal(date(2027, time.December, 31)) {
		t.Errorf("Horizon() = %s..%s", domain.FormatDate(start), domain.FormatDate(end))
	}

	_, err = ex.IsBusinessDay(date(2031, time.January, 2))
	if !errors.Is(err, domain.ErrRangeUnsupported) {
		t.Errorf("out-of-horizon error = %v, want ErrRangeUnsupported", err)
	}
	_, err = ex.BusinessDays(date(2027, time.December, 28), date(2028, time.January, 5))
	if !errors.Is(err, domain.ErrRangeUnsupported) {
		t.Errorf("range crossing horizon error = %v, want ErrRangeUnsupported", err)
	}
}

func TestExchangeUnknown(t *testing.T) {
	_, err := NewExchange("XXXX")
	if !errors.Is(err, domain.ErrUnknownCalendar) {
		t.Errorf("error = %v, want ErrUnknownCalendar", err)
	}
}

func TestExchangeParis(t *testing.T) {
	ex, err := NewExchange("XPAR")
	if err != nil {
		t.Fatalf("NewExchange: %v", err)
	}
	mustOpen(t, ex, date(2026, time.April, 6), false) // Easter Monday
	mustOpen(t, ex, date(2026, time.May, 1), false)
	mustOpen(t, ex, date(2026, time.January, 19), true) // MLK is a US affair
}

func TestCountryFrance(t *testing.T) {
	fr, err := NewCountry("fr")
	if err != nil {
		t.Fatalf("NewCountry: %v", err)
	}
	if fr.ISO() != "FR" {
		t.Errorf("ISO() = %q", fr.ISO())
	}
	mustOpen(t, fr, date(2026, time.January, 1), false) // Jour de l'an
	mustOpen(t, fr, date(2026, time.July, 14), false)   // Fête nationale (Tuesday)
	mustOpen(t, fr, date(2026, time.January, 19), true) // no MLK in France
	mustOpen(t, fr, date(2026, time.January, 17), false)
}

func TestCountryUS(t *testing.T) {
	us, err := NewCountry("US")
	if err != nil {
		t.Fatalf("NewCountry: %v", err)
	}
	mustOpen(t, us, date(2026, time.January, 1), false)
	mustOpen(t, us, date(2026, time.January, 19), false) // MLK Day
	mustOpen(t, us, date(2026, time.January, 20), true)

	// Country adapters are rule-based: far dates work.
	mustOpen(t, us, date(2050, time.July, 4), false) // Monday, Independence Day
	if open, err := us.IsBusinessDay(date(2050, time.January, 11)); err != nil || !open {
		t.Errorf("2050-01-11 = %v, %v; want open Tuesday", open, err)
	}
}

func TestCountryAliases(t *testing.T) {
	uk, err := NewCountry("UK")
	if err != nil {
		t.Fatalf("NewCountry(UK): %v", err)
	}
	if uk.ISO() != "GB" {
		t.Errorf("ISO() = %q, want GB", uk.ISO())
	}

	_, err = NewCountry("ZZ")
	if !errors.Is(err, domain.ErrUnknownCalendar) {
		t.Errorf("error = %v, want ErrUnknownCalendar", err)
	}
}

func TestRFRTickers(t *testing.T) {
	cases := []struct {
		ticker string
		family string
	}{
		{"SOFRRATE Index", "SOFR"},
		{"SOFR", "SOFR"},
		{"€STRON Index", "ESTR"},
		{"ESTR", "ESTR"},
		{"estron index", "ESTR"},
		{"SONIA Index", "SONIA"},
	}
	for _, c := range cases {
		r, err := NewRFR(c.ticker)
		if err != nil {
			t.Fatalf("NewRFR(%q): %v", c.ticker, err)
		}
		if r.Family() != c.family {
			t.Errorf("NewRFR(%q).Family() = %q, want %q", c.ticker, r.Family(), c.family)
		}
	}

	_, err := NewRFR("EONIA Index")
	if !errors.Is(err, domain.ErrUnknownCalendar) {
		t.Errorf("error = %v, want ErrUnknownCalendar", err)
	}
}

func TestRFRFixingDays(t *testing.T) {
	estr, err := NewRFR("ESTR")
	if err != nil {
		t.Fatalf("NewRFR: %v", err)
	}
	mustOpen(t, estr, date(2026, time.April, 3), false) // Good Friday, TARGET closed
	mustOpen(t, estr, date(2026, time.May, 1), false)
	mustOpen(t, estr, date(2026, time.January, 19), true) // MLK is not a TARGET holiday

	sofr, err := NewRFR("SOFRRATE Index")
	if err != nil {
		t.Fatalf("NewRFR: %v", err)
	}
	mustOpen(t, sofr, date(2026, time.January, 19), false) // MLK, no fixing
	mustOpen(t, sofr, date(2026, time.January, 20), true)
}

func TestSupportedRFRs(t *testing.T) {
	got := SupportedRFRs()
	if len(got) == 0 {
		t.Fatal("SupportedRFRs returned nothing")
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("SupportedRFRs not sorted: %q > %q", got[i-1], got[i])
		}
	}
}
