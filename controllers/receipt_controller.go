package controllers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/receipt"
	"github.com/ohm-hive/orders-api/services"
)

// GetReceipt handles GET /api/v1/orders/:orderNumber/receipt?lang=en|ar
func GetReceipt(c *gin.Context) {
	order, err := services.GetOrderService().GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// render into a buffer so a template failure can still become a JSON error
	var buf bytes.Buffer
	if err := receipt.Default().Render(&buf, order, c.DefaultQuery("lang", "en")); err != nil {
		log.Printf("Failed to render receipt for %s: %v", order.OrderNumber, err)
		respondError(c, http.StatusInternalServerError, "RENDER_ERROR", err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetReceiptQR handles GET /api/v1/orders/:orderNumber/receipt/qr
func GetReceiptQR(c *gin.Context) {
	order, err := services.GetOrderService().GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    receipt.NewQRPayload(order),
	})
}

// GetReceiptQRImage handles GET /api/v1/orders/:orderNumber/receipt/qr.png
func GetReceiptQRImage(c *gin.Context) {
	order, err := services.GetOrderService().GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	png, err := receipt.QRCodePNG(order, receipt.QRSize)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "RENDER_ERROR", err.Error())
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
