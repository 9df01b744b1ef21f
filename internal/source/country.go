package source

import (
	"fmt"
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/ch"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
)

// countryHolidays maps ISO country codes to their rule-based holiday
// definitions. Rules extrapolate to any year, so country adapters are total
// over all dates.
var countryHolidays = map[string][]*cal.Holiday{
	"BE": be.Holidays,
	"CA": ca.Holidays,
	"CH": ch.Holidays,
	"DE": de.Holidays,
	"ES": es.Holidays,
	"FR": fr.Holidays,
	"GB": gb.Holidays,
	"IT": it.Holidays,
	"JP": jp.Holidays,
	"NL": nl.Holidays,
	"US": us.Holidays,
}

// countryAliases folds common spellings onto ISO codes.
var countryAliases = map[string]string{
	"UK":             "GB",
	"FRANCE":         "FR",
	"GERMANY":        "DE",
	"UNITED KINGDOM": "GB",
	"UNITED STATES":  "US",
	"JAPAN":          "JP",
}

// Compile-time interface check.
var _ calendar.Adapter = (*Country)(nil)

// Country is a national business-day calendar: weekends plus the country's
// public holidays are closed.
type Country struct {
	iso  string
	name string
	cal  *cal.BusinessCalendar
}

// NewCountry builds the calendar for an ISO country code.
// Fails with domain.ErrUnknownCalendar for unsupported codes.
func NewCountry(iso string) (*Country, error) {
	code := domain.NormalizeCode(iso)
	if canonical, ok := countryAliases[code]; ok {
		code = canonical
	}
	holidays, ok := countryHolidays[code]
	if !ok {
		return nil, fmt.Errorf("%w: country %q", domain.ErrUnknownCalendar, iso)
	}

	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(holidays...)
	return &Country{
		iso:  code,
		name: "country:" + code,
		cal:  bc,
	}, nil
}

func (c *Country) Name() string { return c.name }

// ISO returns the canonical country code.
func (c *Country) ISO() string { return c.iso }

func (c *Country) IsBusinessDay(d time.Time) (bool, error) {
	return c.cal.IsWorkday(domain.DayOf(d)), nil
}

func (c *Country) BusinessDays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(c, start, end, true)
}

func (c *Country) Holidays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(c, start, end, false)
}

// SupportedCountries lists the ISO codes with holiday rules, sorted.
func SupportedCountries() []string {
	codes := make([]string, 0, len(countryHolidays))
	for code := range countryHolidays {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
