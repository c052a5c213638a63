package datagov

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/domain"
)

// RawRecord is the upstream record shape as published by the open-data API.
// Field names are capitalized on the wire and prices arrive as strings; the
// record is never persisted as-is, only the normalizer's output is stored.
type RawRecord struct {
	State       string `json:"State"`
	District    string `json:"District"`
	Market      string `json:"Market"`
	Commodity   string `json:"Commodity"`
	Variety     string `json:"Variety"`
	Grade       string `json:"Grade"`
	ArrivalDate string `json:"Arrival_Date"`
	MinPrice    string `json:"Min_Price"`
	MaxPrice    string `json:"Max_Price"`
	ModalPrice  string `json:"Modal_Price"`
}

// recordsResponse is the upstream response envelope
type recordsResponse struct {
	Records []RawRecord `json:"records"`
}

// Filters holds the upstream query filters. A zero Date means no date filter.
type Filters struct {
	Date      time.Time
	State     string
	District  string
	Market    string
	Commodity string
	Variety   string
}

// Client defines the interface for upstream data source operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/datagov_client.go -package=mocks -mock_names=Client=MockDataGovClient
type Client interface {
	// FetchPage fetches one page of records for the given filters. A page
	// shorter than limit (or empty) signals end of data to the caller.
	FetchPage(ctx context.Context, filters Filters, offset, limit int) ([]RawRecord, error)

	// FetchHistory fetches up to limit records matching the filters, newest
	// arrival date first, for the deep-history passthrough.
	FetchHistory(ctx context.Context, filters Filters, limit int) ([]RawRecord, error)
}

// DataGovClient implements Client against the data.gov.in resource API
type DataGovClient struct {
	httpClient adapter.HTTPClient
	baseURL    string
	resourceID string
	apiKey     string
}

// NewClient creates a new data.gov.in client
func NewClient(httpClient adapter.HTTPClient, baseURL, resourceID, apiKey string) Client {
	return &DataGovClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		resourceID: resourceID,
		apiKey:     apiKey,
	}
}

// FetchPage fetches one page of records for the given filters
func (c *DataGovClient) FetchPage(ctx context.Context, filters Filters, offset, limit int) ([]RawRecord, error) {
	params := c.baseParams(filters)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	return c.fetch(ctx, params)
}

// FetchHistory fetches up to limit records matching the filters, newest first
func (c *DataGovClient) FetchHistory(ctx context.Context, filters Filters, limit int) ([]RawRecord, error) {
	params := c.baseParams(filters)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort[Arrival_Date]", "desc")

	return c.fetch(ctx, params)
}

// baseParams builds the shared query parameters. All filter values go through
// url.Values encoding, so commodity names with parentheses or slashes survive
// the round trip intact.
func (c *DataGovClient) baseParams(filters Filters) url.Values {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")

	if !filters.Date.IsZero() {
		params.Set("filters[Arrival_Date]", domain.FormatFilterDate(filters.Date))
	}
	if filters.State != "" {
		params.Set("filters[State]", filters.State)
	}
	if filters.District != "" {
		params.Set("filters[District]", filters.District)
	}
	if filters.Market != "" {
		params.Set("filters[Market]", filters.Market)
	}
	if filters.Commodity != "" {
		params.Set("filters[Commodity]", filters.Commodity)
	}
	if filters.Variety != "" {
		params.Set("filters[Variety]", filters.Variety)
	}

	return params
}

// fetch issues the request and unwraps the records envelope
func (c *DataGovClient) fetch(ctx context.Context, params url.Values) ([]RawRecord, error) {
	requestURL := fmt.Sprintf("%s/resource/%s?%s", c.baseURL, c.resourceID, params.Encode())

	var response recordsResponse
	if err := c.httpClient.Get(ctx, requestURL, &response); err != nil {
		return nil, fmt.Errorf("failed to call data source: %w", err)
	}

	return response.Records, nil
}
