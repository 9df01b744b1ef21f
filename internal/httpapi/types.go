// Package httpapi exposes the calendar engine over a JSON REST API.
package httpapi

// CheckResponse answers an is-business-day query for a single date.
type CheckResponse struct {
	Calendar      string `json:"calendar"`
	Date          string `json:"date"`
	IsBusinessDay bool   `json:"is_business_day"`
}

// DaysResponse lists the dates on one side of the business/holiday
// partition of a range.
type DaysResponse struct {
	Calendar string   `json:"calendar"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Count    int      `json:"count"`
	Dates    []string `json:"dates"`
}

// CountResponse carries the business-day count for a range.
type CountResponse struct {
	Calendar string `json:"calendar"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Count    int    `json:"count"`
}

// NavigateResponse answers next, previous, and offset queries.
type NavigateResponse struct {
	Calendar string `json:"calendar"`
	From     string `json:"from"`
	Offset   int    `json:"offset,omitempty"`
	Date     string `json:"date"`
}

// CalendarsResponse lists the codes the service resolves without remote
// fetches.
type CalendarsResponse struct {
	Exchanges []string `json:"exchanges"`
	Countries []string `json:"countries"`
	RFRs      []string `json:"rfrs"`
}
