package source

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ecb"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
)

// rfrDef ties a rate family to the fixing-day convention it publishes under.
type rfrDef struct {
	family   string
	calName  string
	holidays []*cal.Holiday
}

// Fixing conventions: €STR fixes on TARGET business days, SOFR on the US
// government securities calendar (US federal holidays as proxy), SONIA on
// UK settlement days.
var rfrDefs = map[string]rfrDef{
	"ESTR":  {family: "ESTR", calName: "TARGET", holidays: ecb.Holidays},
	"SOFR":  {family: "SOFR", calName: "US-GOVIES", holidays: us.Holidays},
	"SONIA": {family: "SONIA", calName: "UK", holidays: gb.Holidays},
}

// rfrAliases folds ticker variants onto a rate family. Keys are compared
// after domain.NormalizeCode, which already folds "€" to "E".
var rfrAliases = map[string]string{
	"ESTR":           "ESTR",
	"ESTER":          "ESTR",
	"ESTRON":         "ESTR",
	"ESTR INDEX":     "ESTR",
	"ESTRON INDEX":   "ESTR",
	"SOFR":           "SOFR",
	"SOFRRATE":       "SOFR",
	"SOFR INDEX":     "SOFR",
	"SOFRRATE INDEX": "SOFR",
	"SONIA":          "SONIA",
	"SONIA INDEX":    "SONIA",
	"SONIO/N INDEX":  "SONIA",
}

// Compile-time interface check.
var _ calendar.Adapter = (*RFR)(nil)

// RFR is a reference-rate fixing calendar: open days are the days the rate
// is published. Rule-based, total over all dates.
type RFR struct {
	ticker string
	family string
	name   string
	cal    *cal.BusinessCalendar
}

// NewRFR resolves a Bloomberg-style rate ticker ("SOFRRATE Index",
// "€STRON Index", "SONIA") to its fixing calendar.
// Fails with domain.ErrUnknownCalendar for unknown tickers.
func NewRFR(ticker string) (*RFR, error) {
	key := domain.NormalizeCode(ticker)
	family, ok := rfrAliases[key]
	if !ok {
		// Tolerate other " Index"-suffixed variants of known families.
		family, ok = rfrAliases[strings.TrimSuffix(key, " INDEX")]
	}
	if !ok {
		return nil, fmt.Errorf("%w: rfr ticker %q", domain.ErrUnknownCalendar, ticker)
	}

	def := rfrDefs[family]
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(def.holidays...)
	return &RFR{
		ticker: key,
		family: family,
		name:   fmt.Sprintf("rfr:%s(%s)", def.family, def.calName),
		cal:    bc,
	}, nil
}

func (r *RFR) Name() string { return r.name }

// Family returns the canonical rate family (ESTR, SOFR, SONIA).
func (r *RFR) Family() string { return r.family }

// IsBusinessDay reports whether d is a fixing day.
func (r *RFR) IsBusinessDay(d time.Time) (bool, error) {
	return r.cal.IsWorkday(domain.DayOf(d)), nil
}

func (r *RFR) BusinessDays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(r, start, end, true)
}

func (r *RFR) Holidays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(r, start, end, false)
}

// SupportedRFRs lists the ticker spellings the resolver accepts, sorted.
func SupportedRFRs() []string {
	out := make([]string, 0, len(rfrAliases))
	for k := range rfrAliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
