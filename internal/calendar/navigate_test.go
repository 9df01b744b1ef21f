package calendar

import (
	"errors"
	"testing"
	"time"

	"bizcal/internal/domain"
)

func TestNextBusinessDaySkipsWeekend(t *testing.T) {
	f := newFake("fake")
	got, err := NextBusinessDay(f, date(2026, time.January, 16)) // Friday
	if err != nil {
		t.Fatalf("NextBusinessDay: %v", err)
	}
	if want := date(2026, time.January, 19); !got.Equal(want) {
		t.Errorf("NextBusinessDay = %s, want %s", domain.FormatDate(got), domain.FormatDate(want))
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	f := newFake("fake", date(2026, time.January, 19))
	got, err := PreviousBusinessDay(f, date(2026, time.January, 20)) // Tuesday
	if err != nil {
		t.Fatalf("PreviousBusinessDay: %v", err)
	}
	// Monday the 19th is closed, so Friday the 16th.
	if want := date(2026, time.January, 16); !got.Equal(want) {
		t.Errorf("PreviousBusinessDay = %s, want %s", domain.FormatDate(got), domain.FormatDate(want))
	}
}

func TestOffsetForwardAndBack(t *testing.T) {
	f := newFake("fake", date(2026, time.January, 19))

	// Thursday +2: Friday 16, then (skip weekend and closed Monday) Tuesday 20.
	got, err := OffsetBusinessDays(f, date(2026, time.January, 15), 2)
	if err != nil {
		t.Fatalf("OffsetBusinessDays(+2): %v", err)
	}
	if want := date(2026, time.January, 20); !got.Equal(want) {
		t.Errorf("offset +2 = %s, want %s", domain.FormatDate(got), domain.FormatDate(want))
	}
	if open, _ := f.IsBusinessDay(got); !open {
		t.Error("offset landed on a closed day")
	}

	back, err := OffsetBusinessDays(f, got, -2)
	if err != nil {
		t.Fatalf("OffsetBusinessDays(-2): %v", err)
	}
	if want := date(2026, time.January, 15); !back.Equal(want) {
		t.Errorf("offset -2 = %s, want %s", domain.FormatDate(back), domain.FormatDate(want))
	}
}

func TestOffsetZero(t *testing.T) {
	f := newFake("fake")

	// Zero offset from an open day returns it unchanged.
	mon := date(2026, time.January, 19)
	got, err := OffsetBusinessDays(f, mon, 0)
	if err != nil {
		t.Fatalf("OffsetBusinessDays(0) on open day: %v", err)
	}
	if !got.Equal(mon) {
		t.Errorf("zero offset moved the date: %s", domain.FormatDate(got))
	}

	// Zero offset from a closed day is rejected.
	sat := date(2026, time.January, 17)
	_, err = OffsetBusinessDays(f, sat, 0)
	if !errors.Is(err, domain.ErrInvalidOffset) {
		t.Errorf("error = %v, want ErrInvalidOffset", err)
	}
}

func TestSearchExhaustedOnAlwaysClosed(t *testing.T) {
	comb, err := Combine([]Adapter{allClosed{}, newFake("fake")}, Intersection)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	_, err = NextBusinessDay(comb, date(2026, time.January, 1))
	if !errors.Is(err, domain.ErrSearchExhausted) {
		t.Errorf("error = %v, want ErrSearchExhausted", err)
	}
	_, err = PreviousBusinessDay(comb, date(2026, time.January, 1))
	if !errors.Is(err, domain.ErrSearchExhausted) {
		t.Errorf("error = %v, want ErrSearchExhausted", err)
	}
}

// next -> previous -> next returns to the same day once stabilized.
func TestNavigationRoundTrip(t *testing.T) {
	f := newFake("fake", date(2026, time.January, 19))
	start := date(2026, time.January, 14) // Wednesday

	n1, err := NextBusinessDay(f, start)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	p, err := PreviousBusinessDay(f, n1)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	n2, err := NextBusinessDay(f, p)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !n1.Equal(n2) {
		t.Errorf("round trip drifted: %s vs %s", domain.FormatDate(n1), domain.FormatDate(n2))
	}
}
