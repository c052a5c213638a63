package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Stored price queries
		v1.GET("/prices", handler.GetPrices)

		// Filter option endpoints (distinct values from price data)
		v1.GET("/prices/options/districts", handler.GetDistrictOptions)
		v1.GET("/prices/options/commodities", handler.GetCommodityOptions)
		v1.GET("/prices/options/varieties", handler.GetVarietyOptions)

		// Derived location hierarchy
		v1.GET("/locations/states", handler.ListStates)
		v1.GET("/locations/districts/:state", handler.GetStateDistricts)

		// Curated commodity catalog
		v1.GET("/commodities", handler.ListCommodities)

		// Deep-history passthrough to the upstream source
		v1.GET("/proxy/history", handler.GetHistory)
	}
}
