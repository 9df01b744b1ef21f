// Package bizcal provides a Go SDK for the bizcal HTTP API.
package bizcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for all dates.
const DateLayout = "2006-01-02"

// Calendar identifies a calendar on the wire, e.g. {"country", "US"}.
type Calendar struct {
	Kind string
	Code string
}

func (c Calendar) String() string { return c.Kind + ":" + c.Code }

// CheckResult is the answer to an is-business-day query.
type CheckResult struct {
	Calendar      string `json:"calendar"`
	Date          string `json:"date"`
	IsBusinessDay bool   `json:"is_business_day"`
}

// DaysResult lists the dates on one side of the partition of a range.
type DaysResult struct {
	Calendar string   `json:"calendar"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Count    int      `json:"count"`
	Dates    []string `json:"dates"`
}

// CountResult carries the business-day count for a range.
type CountResult struct {
	Calendar string `json:"calendar"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Count    int    `json:"count"`
}

// NavigateResult is the answer to next, previous, and offset queries.
type NavigateResult struct {
	Calendar string `json:"calendar"`
	From     string `json:"from"`
	Offset   int    `json:"offset,omitempty"`
	Date     string `json:"date"`
}

// CalendarsResult lists the codes the server resolves locally.
type CalendarsResult struct {
	Exchanges []string `json:"exchanges"`
	Countries []string `json:"countries"`
	RFRs      []string `json:"rfrs"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bizcal: %d %s", e.StatusCode, e.Message)
}

// Client talks to a bizcal server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new bizcal API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Calendars lists the calendars the server resolves locally.
func (c *Client) Calendars(ctx context.Context) (*CalendarsResult, error) {
	var out CalendarsResult
	if err := c.get(ctx, "/api/v1/calendars", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IsBusinessDay checks one date against the (possibly combined) calendars.
// Mode applies only when more than one calendar is given; "" means
// intersection.
func (c *Client) IsBusinessDay(ctx context.Context, cals []Calendar, mode string, date time.Time) (*CheckResult, error) {
	q := calQuery(cals, mode)
	q.Set("date", date.Format(DateLayout))
	var out CheckResult
	if err := c.get(ctx, "/api/v1/is-business-day", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BusinessDays lists the open days in [start, end].
func (c *Client) BusinessDays(ctx context.Context, cals []Calendar, mode string, start, end time.Time) (*DaysResult, error) {
	return c.days(ctx, "/api/v1/business-days", cals, mode, start, end)
}

// Holidays lists the closed days in [start, end].
func (c *Client) Holidays(ctx context.Context, cals []Calendar, mode string, start, end time.Time) (*DaysResult, error) {
	return c.days(ctx, "/api/v1/holidays", cals, mode, start, end)
}

func (c *Client) days(ctx context.Context, path string, cals []Calendar, mode string, start, end time.Time) (*DaysResult, error) {
	q := calQuery(cals, mode)
	q.Set("start", start.Format(DateLayout))
	q.Set("end", end.Format(DateLayout))
	var out DaysResult
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountBusinessDays counts the open days in [start, end].
func (c *Client) CountBusinessDays(ctx context.Context, cals []Calendar, mode string, start, end time.Time) (int, error) {
	q := calQuery(cals, mode)
	q.Set("start", start.Format(DateLayout))
	q.Set("end", end.Format(DateLayout))
	var out CountResult
	if err := c.get(ctx, "/api/v1/count", q, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// NextBusinessDay returns the first open day strictly after date.
func (c *Client) NextBusinessDay(ctx context.Context, cals []Calendar, mode string, date time.Time) (time.Time, error) {
	return c.navigate(ctx, "/api/v1/next", calQueryWithDate(cals, mode, date))
}

// PreviousBusinessDay returns the first open day strictly before date.
func (c *Client) PreviousBusinessDay(ctx context.Context, cals []Calendar, mode string, date time.Time) (time.Time, error) {
	return c.navigate(ctx, "/api/v1/previous", calQueryWithDate(cals, mode, date))
}

// OffsetBusinessDays moves n business days from date; n may be negative.
func (c *Client) OffsetBusinessDays(ctx context.Context, cals []Calendar, mode string, date time.Time, n int) (time.Time, error) {
	q := calQueryWithDate(cals, mode, date)
	q.Set("n", strconv.Itoa(n))
	return c.navigate(ctx, "/api/v1/offset", q)
}

func (c *Client) navigate(ctx context.Context, path string, q url.Values) (time.Time, error) {
	var out NavigateResult
	if err := c.get(ctx, path, q, &out); err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(DateLayout, out.Date, time.UTC)
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func calQuery(cals []Calendar, mode string) url.Values {
	q := url.Values{}
	for _, cal := range cals {
		q.Add("cal", cal.String())
	}
	if mode != "" {
		q.Set("mode", mode)
	}
	return q
}

func calQueryWithDate(cals []Calendar, mode string, date time.Time) url.Values {
	q := calQuery(cals, mode)
	q.Set("date", date.Format(DateLayout))
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return json.Unmarshal(body, out)
}
