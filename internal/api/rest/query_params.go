package rest

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// DEFAULT_PAGE_SIZE applies when no limit is given on /prices
	DEFAULT_PAGE_SIZE = 100
	// MAX_PAGE_SIZE caps the /prices limit
	MAX_PAGE_SIZE = 1000

	defaultHistoryLimit = 100
	// historySpanPadding covers markets that report a few extra sessions
	// inside an explicit from/to window
	historySpanPadding = 10
)

// historyRangeLimits maps the named history ranges to upstream record limits
var historyRangeLimits = map[string]int{
	"1m": 35,
	"3m": 100,
	"6m": 200,
	"1y": 400,
}

// PricesQueryParams holds query parameters for GET /prices
type PricesQueryParams struct {
	State     string `form:"state"`
	District  string `form:"district"`
	Market    string `form:"market"`
	Commodity string `form:"commodity"`
	Variety   string `form:"variety"`
	From      string `form:"from"`
	To        string `form:"to"`
	Limit     int    `form:"limit,default=100"`
}

// OptionsQueryParams holds query parameters for the filter-option endpoints
type OptionsQueryParams struct {
	District  string `form:"district"`
	Commodity string `form:"commodity"`
}

// HistoryQueryParams holds query parameters for GET /proxy/history
type HistoryQueryParams struct {
	State     string `form:"state"`
	District  string `form:"district"`
	Commodity string `form:"commodity"`
	Market    string `form:"market"`
	Variety   string `form:"variety"`
	Range     string `form:"range"`
	From      string `form:"from"`
	To        string `form:"to"`
}

// ParsePricesQuery parses and validates query parameters for GET /prices
func ParsePricesQuery(c *gin.Context) (*PricesQueryParams, error) {
	var params PricesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit <= 0 {
		params.Limit = DEFAULT_PAGE_SIZE
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	if _, err := params.FromDate(); err != nil {
		return nil, err
	}
	if _, err := params.ToDate(); err != nil {
		return nil, err
	}

	return &params, nil
}

// FromDate returns the parsed lower date bound, or nil when absent
func (p *PricesQueryParams) FromDate() (*time.Time, error) {
	return parseFilterDate("from", p.From)
}

// ToDate returns the parsed upper date bound, or nil when absent
func (p *PricesQueryParams) ToDate() (*time.Time, error) {
	return parseFilterDate("to", p.To)
}

// ParseHistoryQuery parses and validates query parameters for GET /proxy/history
func ParseHistoryQuery(c *gin.Context) (*HistoryQueryParams, error) {
	var params HistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.State == "" || params.District == "" || params.Commodity == "" {
		return nil, fmt.Errorf("state, district and commodity are required")
	}

	if params.Range != "" {
		if _, ok := historyRangeLimits[params.Range]; !ok {
			return nil, fmt.Errorf("invalid range %q: expected one of 1m, 3m, 6m, 1y", params.Range)
		}
	}

	return &params, nil
}

// RecordLimit derives how many upstream records the history passthrough
// should request: a fixed budget per named range, the day span plus padding
// for an explicit window, and a default otherwise.
func (p *HistoryQueryParams) RecordLimit() (int, error) {
	if p.Range != "" {
		return historyRangeLimits[p.Range], nil
	}

	if p.From != "" && p.To != "" {
		from, err := parseFilterDate("from", p.From)
		if err != nil {
			return 0, err
		}
		to, err := parseFilterDate("to", p.To)
		if err != nil {
			return 0, err
		}
		if to.Before(*from) {
			return 0, fmt.Errorf("to date is before from date")
		}

		days := int(to.Sub(*from).Hours()/24) + 1
		return days + historySpanPadding, nil
	}

	return defaultHistoryLimit, nil
}

// parseFilterDate parses an optional YYYY-MM-DD query value
func parseFilterDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", name, value)
	}

	return &t, nil
}
