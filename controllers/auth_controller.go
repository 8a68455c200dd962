package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/middleware"
	"github.com/ohm-hive/orders-api/services"
)

// LoginRequest represents the admin login body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/admin/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
				"details": err.Error(),
			},
		})
		return
	}

	result, err := services.GetAuthService().Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Logout handles POST /api/v1/admin/logout. It succeeds even without a valid token.
func Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c.Request)
	if err := services.GetAuthService().Logout(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Logged out",
		},
	})
}

// Verify handles GET /api/v1/admin/verify (admin)
func Verify(c *gin.Context) {
	username, err := middleware.GetAdminUsername(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"valid":    true,
			"username": username,
		},
	})
}
