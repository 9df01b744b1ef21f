package calendar

import (
	"testing"
	"time"

	"bizcal/internal/domain"
)

func TestOverrideAddForcesClosed(t *testing.T) {
	f := newFake("base")
	strike := date(2026, time.May, 15) // Friday, open in base

	o := WithOverrides(f, []time.Time{strike}, nil)
	open, err := o.IsBusinessDay(strike)
	if err != nil {
		t.Fatalf("IsBusinessDay: %v", err)
	}
	if open {
		t.Error("added holiday still reported open")
	}

	// Base is untouched.
	open, _ = f.IsBusinessDay(strike)
	if !open {
		t.Error("base adapter mutated by override")
	}
}

func TestOverrideRemoveForcesOpen(t *testing.T) {
	holiday := date(2026, time.January, 1) // Thursday, closed in base
	f := newFake("base", holiday)

	o := WithOverrides(f, nil, []time.Time{holiday})
	open, err := o.IsBusinessDay(holiday)
	if err != nil {
		t.Fatalf("IsBusinessDay: %v", err)
	}
	if !open {
		t.Error("removed holiday still reported closed")
	}
}

// A date in both sets is forced closed: additions win.
func TestOverrideAddWinsOverlap(t *testing.T) {
	d := date(2026, time.June, 10) // Wednesday
	o := WithOverrides(newFake("base"), []time.Time{d}, []time.Time{d})
	open, err := o.IsBusinessDay(d)
	if err != nil {
		t.Fatalf("IsBusinessDay: %v", err)
	}
	if open {
		t.Error("overlapping override should force closed")
	}
}

func TestOverrideRangesMatchMembership(t *testing.T) {
	newYear := date(2026, time.January, 1)
	f := newFake("base", newYear)
	o := WithOverrides(f,
		[]time.Time{date(2026, time.January, 2)}, // closed Friday
		[]time.Time{newYear},                     // reopened Thursday
	)

	start, end := date(2026, time.January, 1), date(2026, time.January, 7)
	bus, err := o.BusinessDays(start, end)
	if err != nil {
		t.Fatalf("BusinessDays: %v", err)
	}
	want := []time.Time{
		date(2026, time.January, 1),
		date(2026, time.January, 5),
		date(2026, time.January, 6),
		date(2026, time.January, 7),
	}
	if !sameDays(bus, want) {
		t.Errorf("BusinessDays = %v, want %v", bus, want)
	}

	hol, err := o.Holidays(start, end)
	if err != nil {
		t.Fatalf("Holidays: %v", err)
	}
	wantHol := []time.Time{
		date(2026, time.January, 2),
		date(2026, time.January, 3),
		date(2026, time.January, 4),
	}
	if !sameDays(hol, wantHol) {
		t.Errorf("Holidays = %v, want %v", hol, wantHol)
	}

	// Every enumerated day agrees with the membership test.
	for _, d := range bus {
		if open, _ := o.IsBusinessDay(d); !open {
			t.Errorf("%s enumerated as business but membership says closed", domain.FormatDate(d))
		}
	}
	for _, d := range hol {
		if open, _ := o.IsBusinessDay(d); open {
			t.Errorf("%s enumerated as holiday but membership says open", domain.FormatDate(d))
		}
	}
}

func TestOverridesAccessor(t *testing.T) {
	a := date(2026, time.March, 2)
	b := date(2026, time.March, 3)
	o := WithOverrides(newFake("base"), []time.Time{b, a}, nil)
	added, removed := o.Overrides()
	if !sameDays(added, []time.Time{a, b}) {
		t.Errorf("added = %v, want sorted [%v %v]", added, a, b)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want empty", removed)
	}
}
