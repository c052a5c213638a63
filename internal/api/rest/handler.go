package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/krishimarga/mandi-indexer/internal/api/rest/dto"
	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetPrices retrieves stored prices with optional filters
	// GET /api/v1/prices?state=<s>&district=<d>&market=<m>&commodity=<c>&variety=<v>&from=<date>&to=<date>&limit=<n>
	GetPrices(c *gin.Context)

	// GetDistrictOptions lists the distinct districts present in price data
	// GET /api/v1/prices/options/districts
	GetDistrictOptions(c *gin.Context)

	// GetCommodityOptions lists the distinct commodities, optionally scoped to a district
	// GET /api/v1/prices/options/commodities?district=<d>
	GetCommodityOptions(c *gin.Context)

	// GetVarietyOptions lists the distinct varieties, optionally scoped to a district and commodity
	// GET /api/v1/prices/options/varieties?district=<d>&commodity=<c>
	GetVarietyOptions(c *gin.Context)

	// ListStates lists the states in the derived location index
	// GET /api/v1/locations/states
	ListStates(c *gin.Context)

	// GetStateDistricts returns the district/market hierarchy of one state
	// GET /api/v1/locations/districts/:state
	GetStateDistricts(c *gin.Context)

	// ListCommodities returns the curated commodity catalog
	// GET /api/v1/commodities
	ListCommodities(c *gin.Context)

	// GetHistory proxies a deep-history query to the upstream source,
	// bypassing the retention window of the local store
	// GET /api/v1/proxy/history?state=<s>&district=<d>&commodity=<c>&market=<m>&variety=<v>&range=<1m|3m|6m|1y>&from=<date>&to=<date>
	GetHistory(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store  store.Store
	source datagov.Client
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, source datagov.Client) Handler {
	return &handler{
		store:  st,
		source: source,
	}
}

// GetPrices retrieves stored prices with optional filters
func (h *handler) GetPrices(c *gin.Context) {
	params, err := ParsePricesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	from, _ := params.FromDate()
	to, _ := params.ToDate()

	prices, err := h.store.QueryPrices(c.Request.Context(), store.PriceFilter{
		State:     params.State,
		District:  params.District,
		Market:    params.Market,
		Commodity: params.Commodity,
		Variety:   params.Variety,
		From:      from,
		To:        to,
		Limit:     params.Limit,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to query prices")
		return
	}

	data := make([]dto.PriceResponse, 0, len(prices))
	for _, p := range prices {
		data = append(data, dto.NewPriceResponse(p))
	}

	c.JSON(http.StatusOK, dto.PricesResponse{Count: len(data), Data: data})
}

// GetDistrictOptions lists the distinct districts present in price data
func (h *handler) GetDistrictOptions(c *gin.Context) {
	districts, err := h.store.DistinctDistricts(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list districts")
		return
	}

	c.JSON(http.StatusOK, dto.OptionsResponse{Count: len(districts), Data: districts})
}

// GetCommodityOptions lists the distinct commodities, optionally district scoped
func (h *handler) GetCommodityOptions(c *gin.Context) {
	var params OptionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	commodities, err := h.store.DistinctCommodities(c.Request.Context(), params.District)
	if err != nil {
		respondInternalError(c, err, "Failed to list commodities")
		return
	}

	c.JSON(http.StatusOK, dto.OptionsResponse{Count: len(commodities), Data: commodities})
}

// GetVarietyOptions lists the distinct varieties, optionally scoped
func (h *handler) GetVarietyOptions(c *gin.Context) {
	var params OptionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	varieties, err := h.store.DistinctVarieties(c.Request.Context(), params.District, params.Commodity)
	if err != nil {
		respondInternalError(c, err, "Failed to list varieties")
		return
	}

	c.JSON(http.StatusOK, dto.OptionsResponse{Count: len(varieties), Data: varieties})
}

// ListStates lists the states in the derived location index
func (h *handler) ListStates(c *gin.Context) {
	states, err := h.store.ListStates(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list states")
		return
	}

	// The hierarchy changes at most once per sync run
	c.Header("Cache-Control", "public, max-age=86400")
	c.JSON(http.StatusOK, dto.OptionsResponse{Count: len(states), Data: states})
}

// GetStateDistricts returns the district/market hierarchy of one state
func (h *handler) GetStateDistricts(c *gin.Context) {
	state := c.Param("state")
	if state == "" {
		respondBadRequest(c, "State is required")
		return
	}

	location, err := h.store.GetLocationByState(c.Request.Context(), state)
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			respondNotFound(c, "State not found", state)
			return
		}
		respondInternalError(c, err, "Failed to load state districts", zap.String("state", state))
		return
	}

	var districts []domain.District
	if err := json.Unmarshal(location.Districts, &districts); err != nil {
		respondInternalError(c, err, "Failed to decode state districts", zap.String("state", state))
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, dto.StateDistrictsResponse{State: location.State, Districts: districts})
}

// ListCommodities returns the curated commodity catalog
func (h *handler) ListCommodities(c *gin.Context) {
	commodities, err := h.store.ListCommodities(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list commodities")
		return
	}

	data := make([]dto.CommodityResponse, 0, len(commodities))
	for _, commodity := range commodities {
		item, err := dto.NewCommodityResponse(commodity)
		if err != nil {
			respondInternalError(c, err, "Failed to decode commodity", zap.String("commodity", commodity.Name))
			return
		}
		data = append(data, item)
	}

	c.JSON(http.StatusOK, dto.CommoditiesResponse{Count: len(data), Data: data})
}

// GetHistory proxies a deep-history query to the upstream source
func (h *handler) GetHistory(c *gin.Context) {
	params, err := ParseHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	limit, err := params.RecordLimit()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	records, err := h.source.FetchHistory(c.Request.Context(), datagov.Filters{
		State:     params.State,
		District:  params.District,
		Commodity: params.Commodity,
		Market:    params.Market,
		Variety:   params.Variety,
	}, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to fetch history",
			zap.String("state", params.State),
			zap.String("district", params.District),
			zap.String("commodity", params.Commodity),
		)
		return
	}

	if records == nil {
		records = []datagov.RawRecord{}
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Count: len(records), Data: records})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
