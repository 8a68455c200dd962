package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/pricing"
	"github.com/ohm-hive/orders-api/services"
)

// SubmitOrderRequest is the multipart order form
type SubmitOrderRequest struct {
	FirstName       string `form:"firstName" binding:"required"`
	LastName        string `form:"lastName" binding:"required"`
	Phone           string `form:"phone" binding:"required"`
	Email           string `form:"email" binding:"required"`
	ServiceType     string `form:"serviceType" binding:"required"`
	ServiceDetails  string `form:"serviceDetails"`
	CalculatedCosts string `form:"calculatedCosts"`
	TotalCost       string `form:"totalCost"`
	Signature       string `form:"signature" binding:"required"`
}

// UpdateOrderRequest is the admin PATCH body. TotalCost is read separately
// so that an explicit null can be told apart from an absent field.
type UpdateOrderRequest struct {
	Status          *string              `json:"status"`
	CalculatedCosts models.CostBreakdown `json:"calculatedCosts"`
}

// SubmitOrder handles POST /api/v1/orders - public order submission with attachments
func SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBind(&req); err != nil {
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

	input := services.OrderInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		ServiceType: req.ServiceType,
		Signature:   req.Signature,
	}

	if s := strings.TrimSpace(req.ServiceDetails); s != "" {
		if err := json.Unmarshal([]byte(s), &input.ServiceDetails); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "serviceDetails must be a JSON object")
			return
		}
	}
	if s := strings.TrimSpace(req.CalculatedCosts); s != "" {
		if err := json.Unmarshal([]byte(s), &input.ClientCosts); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "calculatedCosts must be a JSON object")
			return
		}
	}
	total, err := parseTotal(req.TotalCost)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "totalCost must be a number or null")
		return
	}
	input.ClientTotal = total

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["files"]
	}

	order, err := services.GetOrderService().CreateOrder(c.Request.Context(), input, files)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	services.NotifyAsync(services.GetNotifier(), *order)

	costs := order.Costs()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"orderNumber":     order.OrderNumber,
			"orderId":         order.ID,
			"calculatedCosts": costs,
			"totalCost":       order.TotalCost,
			"totalDisplay":    pricing.FormatTotal(costs, order.TotalCost, "en"),
			"files":           order.Files,
		},
	})
}

// parseTotal reads the form's totalCost field; empty and "null" mean TBD
func parseTotal(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "null" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListOrders handles GET /api/v1/orders - every order, newest first (admin)
func ListOrders(c *gin.Context) {
	orders, err := services.GetOrderService().ListOrders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:orderNumber
func GetOrder(c *gin.Context) {
	order, err := services.GetOrderService().GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:orderNumber - status and cost updates (admin)
func UpdateOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	var req UpdateOrderRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	upd := services.OrderUpdate{
		Status:          req.Status,
		CalculatedCosts: req.CalculatedCosts,
	}
	if rawTotal, ok := raw["totalCost"]; ok {
		upd.TotalCostSet = true
		if err := json.Unmarshal(rawTotal, &upd.TotalCost); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "totalCost must be a number or null")
			return
		}
	}

	if upd.Status == nil && upd.CalculatedCosts == nil && !upd.TotalCostSet {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Nothing to update")
		return
	}

	order, err := services.GetOrderService().UpdateOrder(c.Request.Context(), c.Param("orderNumber"), upd)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:orderNumber - removes the order and its files (admin)
func DeleteOrder(c *gin.Context) {
	number := c.Param("orderNumber")
	if err := services.GetOrderService().DeleteOrder(c.Request.Context(), number); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orderNumber": number,
			"deleted":     true,
		},
	})
}
