package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/services"
	"github.com/ohm-hive/orders-api/utils"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// handleServiceError maps errors returned by the services onto HTTP responses
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var fileErr *utils.FileUploadError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Code, validationErr.Message)
	case errors.As(err, &fileErr):
		respondError(c, http.StatusBadRequest, fileErr.Code, fileErr.Message)
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, services.ErrFileNotFound):
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
	case errors.Is(err, services.ErrStorage):
		log.Printf("Storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
	default:
		log.Printf("Database error: %v", err)
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
	}
}
