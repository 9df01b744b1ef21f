package source

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"

	"bizcal/internal/domain"
	"bizcal/internal/util"
)

// NewAlpacaExchange builds an Exchange whose session table is fetched once,
// at construction, from the Alpaca trading-calendar API instead of the
// embedded data files. The returned adapter behaves exactly like a
// table-backed Exchange: pure lookups, explicit horizon.
func NewAlpacaExchange(mic, apiKey, apiSecret, baseURL string, start, end time.Time) (*Exchange, error) {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
	})

	start, end = domain.DayOf(start), domain.DayOf(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", domain.ErrInvalidRange,
			domain.FormatDate(start), domain.FormatDate(end))
	}

	var days []alpaca.CalendarDay
	err := util.Retry(context.Background(), 3, 500*time.Millisecond, func() error {
		var err error
		days, err = client.GetCalendar(alpaca.GetCalendarRequest{
			Start: start,
			End:   end,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GetCalendar: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: exchange %q (no trading days returned)",
			domain.ErrUnknownCalendar, mic)
	}

	sessions := make(map[time.Time]struct{}, len(days))
	for _, day := range days {
		d, err := domain.ParseDate(day.Date)
		if err != nil {
			continue
		}
		sessions[d] = struct{}{}
	}

	// Invert to the non-trading-day table form: every weekday without a
	// session is a closure.
	mic = domain.NormalizeCode(mic)
	ex := &Exchange{
		mic:    mic,
		name:   "exchange:" + mic,
		start:  start,
		end:    end,
		closed: make(map[time.Time]struct{}),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if domain.IsWeekend(d) {
			continue
		}
		if _, ok := sessions[d]; !ok {
			ex.closed[d] = struct{}{}
		}
	}
	return ex, nil
}
