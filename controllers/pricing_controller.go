package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/pricing"
)

// QuoteRequest asks for a price preview
type QuoteRequest struct {
	ServiceType    string                 `json:"serviceType" binding:"required"`
	ServiceDetails map[string]interface{} `json:"serviceDetails"`
}

// ListServices handles GET /api/v1/services
func ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pricing.Catalog(),
	})
}

// QuotePricing handles POST /api/v1/pricing/quote
func QuotePricing(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	st, ok := models.ParseServiceType(req.ServiceType)
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_SERVICE_TYPE", "Unknown service type")
		return
	}

	quote, err := pricing.QuoteDetails(st, req.ServiceDetails)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownServiceType) {
			respondError(c, http.StatusBadRequest, "INVALID_SERVICE_TYPE", err.Error())
			return
		}
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lang := c.DefaultQuery("lang", "en")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"serviceType":     quote.ServiceType,
			"calculatedCosts": quote.Breakdown,
			"totalCost":       quote.Total,
			"totalDisplay":    quote.Display(lang),
		},
	})
}
