// Package source implements the three base calendar adapters, one per
// provider family: exchange session tables, rule-based country holiday
// calendars, and reference-rate fixing calendars.
package source

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
)

//go:embed data/*.json
var tableFS embed.FS

// exchangeTable is the on-disk schema of an embedded session table:
// weekday closures only, weekends are implied.
type exchangeTable struct {
	MIC            string   `json:"mic"`
	Description    string   `json:"description"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	NonTradingDays []string `json:"non_trading_days"`
}

// Compile-time interface check.
var _ calendar.Adapter = (*Exchange)(nil)

// Exchange is a tabulated trading-session calendar for one venue. The table
// holds pre-computed facts, not rules, so queries outside its horizon fail
// with domain.ErrRangeUnsupported instead of extrapolating.
type Exchange struct {
	mic        string
	name       string
	start, end time.Time
	closed     map[time.Time]struct{}
}

// NewExchange loads the embedded session table for a MIC code.
// Fails with domain.ErrUnknownCalendar when no table is shipped for it.
func NewExchange(mic string) (*Exchange, error) {
	mic = domain.NormalizeCode(mic)
	raw, err := tableFS.ReadFile("data/" + strings.ToLower(mic) + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: exchange %q", domain.ErrUnknownCalendar, mic)
	}
	var tbl exchangeTable
	if err := json.Unmarshal(raw, &tbl); err != nil {
		return nil, fmt.Errorf("parsing session table for %s: %w", mic, err)
	}
	return newExchangeFromTable(mic, tbl)
}

func newExchangeFromTable(mic string, tbl exchangeTable) (*Exchange, error) {
	start, err := domain.ParseDate(tbl.Start)
	if err != nil {
		return nil, fmt.Errorf("session table %s: %w", mic, err)
	}
	end, err := domain.ParseDate(tbl.End)
	if err != nil {
		return nil, fmt.Errorf("session table %s: %w", mic, err)
	}

	ex := &Exchange{
		mic:    mic,
		name:   "exchange:" + mic,
		start:  start,
		end:    end,
		closed: make(map[time.Time]struct{}, len(tbl.NonTradingDays)),
	}
	for _, s := range tbl.NonTradingDays {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("session table %s: %w", mic, err)
		}
		ex.closed[d] = struct{}{}
	}
	return ex, nil
}

func (e *Exchange) Name() string { return e.name }

// MIC returns the venue code.
func (e *Exchange) MIC() string { return e.mic }

// Horizon returns the tabulated date range.
func (e *Exchange) Horizon() (start, end time.Time) { return e.start, e.end }

func (e *Exchange) IsBusinessDay(d time.Time) (bool, error) {
	d = domain.DayOf(d)
	if d.Before(e.start) || d.After(e.end) {
		return false, fmt.Errorf("%w: %s outside %s table [%s, %s]",
			domain.ErrRangeUnsupported, domain.FormatDate(d), e.mic,
			domain.FormatDate(e.start), domain.FormatDate(e.end))
	}
	if domain.IsWeekend(d) {
		return false, nil
	}
	_, c := e.closed[d]
	return !c, nil
}

func (e *Exchange) BusinessDays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(e, start, end, true)
}

func (e *Exchange) Holidays(start, end time.Time) ([]time.Time, error) {
	return calendar.CollectDays(e, start, end, false)
}

// SupportedExchanges lists the MIC codes with embedded session tables,
// sorted.
func SupportedExchanges() []string {
	entries, err := tableFS.ReadDir("data")
	if err != nil {
		return nil
	}
	mics := make([]string, 0, len(entries))
	for _, e := range entries {
		mics = append(mics, strings.ToUpper(strings.TrimSuffix(e.Name(), ".json")))
	}
	sort.Strings(mics)
	return mics
}
