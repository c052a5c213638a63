package dto

import (
	"encoding/json"
	"time"

	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store/schema"
)

// PriceResponse represents one stored market session quote
type PriceResponse struct {
	State       string  `json:"state"`
	District    string  `json:"district"`
	Market      string  `json:"market"`
	Commodity   string  `json:"commodity"`
	Variety     string  `json:"variety"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	ModalPrice  float64 `json:"modal_price"`
	ArrivalDate string  `json:"arrival_date"`
}

// PricesResponse is the envelope for GET /prices
type PricesResponse struct {
	Count int             `json:"count"`
	Data  []PriceResponse `json:"data"`
}

// OptionsResponse is the envelope for the filter-option endpoints
type OptionsResponse struct {
	Count int      `json:"count"`
	Data  []string `json:"data"`
}

// StateDistrictsResponse is the envelope for GET /locations/districts/:state
type StateDistrictsResponse struct {
	State     string            `json:"state"`
	Districts []domain.District `json:"districts"`
}

// CommodityResponse represents one commodity catalog entry
type CommodityResponse struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Image     *string  `json:"image,omitempty"`
	Popular   bool     `json:"popular"`
	Varieties []string `json:"varieties"`
}

// CommoditiesResponse is the envelope for GET /commodities
type CommoditiesResponse struct {
	Count int                 `json:"count"`
	Data  []CommodityResponse `json:"data"`
}

// HistoryResponse is the envelope for GET /proxy/history, passing the
// upstream records through unmodified
type HistoryResponse struct {
	Count int                 `json:"count"`
	Data  []datagov.RawRecord `json:"data"`
}

// NewPriceResponse maps a stored price row to its API representation
func NewPriceResponse(p schema.Price) PriceResponse {
	return PriceResponse{
		State:       p.State,
		District:    p.District,
		Market:      p.Market,
		Commodity:   p.Commodity,
		Variety:     p.Variety,
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		ModalPrice:  p.ModalPrice,
		ArrivalDate: p.ArrivalDate.Format(time.DateOnly),
	}
}

// NewCommodityResponse maps a commodity catalog row to its API representation
func NewCommodityResponse(c schema.Commodity) (CommodityResponse, error) {
	varieties := []string{}
	if len(c.Varieties) > 0 {
		if err := json.Unmarshal(c.Varieties, &varieties); err != nil {
			return CommodityResponse{}, err
		}
	}

	return CommodityResponse{
		Name:      c.Name,
		Category:  c.Category,
		Image:     c.Image,
		Popular:   c.Popular,
		Varieties: varieties,
	}, nil
}
