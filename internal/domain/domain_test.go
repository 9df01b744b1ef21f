package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"exchange", KindExchange, true},
		{"Country", KindCountry, true},
		{" rfr ", KindRFR, true},
		{"bank", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, err := ParseKind(c.in)
		if c.ok {
			if err != nil {
				t.Fatalf("ParseKind(%q) returned error: %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("ParseKind(%q) = %q, want %q", c.in, got, c.want)
			}
			continue
		}
		if !errors.Is(err, ErrUnknownCalendar) {
			t.Errorf("ParseKind(%q) error = %v, want ErrUnknownCalendar", c.in, err)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"xnys", "XNYS"},
		{"  estron   index ", "ESTRON INDEX"},
		{"€STRON Index", "ESTRON INDEX"},
		{"fr", "FR"},
	}
	for _, c := range cases {
		if got := NormalizeCode(c.in); got != c.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKeyEquality(t *testing.T) {
	a := NewKey(KindRFR, "€STRON Index")
	b := NewKey(KindRFR, "estron  index")
	if a != b {
		t.Errorf("keys differ after normalization: %v vs %v", a, b)
	}
	if a.String() != "rfr:ESTRON INDEX" {
		t.Errorf("Key.String() = %q", a.String())
	}
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2026-01-19")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(Date(2026, time.January, 19)) {
		t.Errorf("ParseDate = %v, want 2026-01-19 UTC midnight", d)
	}
	if FormatDate(d) != "2026-01-19" {
		t.Errorf("FormatDate = %q", FormatDate(d))
	}

	if _, err := ParseDate("19/01/2026"); err == nil {
		t.Error("ParseDate accepted non-ISO input")
	}

	noon := time.Date(2026, time.January, 19, 12, 30, 0, 0, time.FixedZone("X", 3600))
	if got := DayOf(noon); !got.Equal(Date(2026, time.January, 19)) {
		t.Errorf("DayOf(%v) = %v", noon, got)
	}
}

func TestIsWeekend(t *testing.T) {
	if !IsWeekend(Date(2026, time.January, 17)) { // Saturday
		t.Error("2026-01-17 should be a weekend")
	}
	if IsWeekend(Date(2026, time.January, 19)) { // Monday
		t.Error("2026-01-19 should not be a weekend")
	}
}
