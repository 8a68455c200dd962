package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/services"
)

// AuthTokenHeader is the alternative header the admin panel sends its token in
const AuthTokenHeader = "X-Auth-Token"

const (
	adminUsernameKey = "admin_username"
	sessionIDKey     = "session_id"
	claimsKey        = "validated_claims"
)

// TokenExtractor reads the token from "Authorization: Bearer <token>" or,
// failing that, from the X-Auth-Token header.
func TokenExtractor() jwtmiddleware.TokenExtractor {
	return jwtmiddleware.MultiTokenExtractor(
		jwtmiddleware.AuthHeaderTokenExtractor,
		func(r *http.Request) (string, error) {
			return strings.TrimSpace(r.Header.Get(AuthTokenHeader)), nil
		},
	)
}

// TokenFromRequest returns the raw admin token of a request, if any
func TokenFromRequest(r *http.Request) string {
	token, err := TokenExtractor()(r)
	if err != nil {
		return ""
	}
	return token
}

// RequireAdmin is a middleware that checks the admin token and its session.
func RequireAdmin(auth *services.AuthService) gin.HandlerFunc {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)

		body := `{"success":false,"error":{"code":"INVALID_TOKEN","message":"Invalid or expired token"}}`
		if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
			body = `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Authentication required"}}`
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			log.Printf("Failed to write error response: %v", writeErr)
		}
	}

	middleware := jwtmiddleware.New(
		auth.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithTokenExtractor(TokenExtractor()),
	)

	return func(c *gin.Context) {
		authorized := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			authorized = true
			claims := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			c.Set(adminUsernameKey, claims.RegisteredClaims.Subject)
			c.Set(sessionIDKey, claims.RegisteredClaims.ID)
			c.Set(claimsKey, claims)
			c.Request = r

			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !authorized {
			c.Abort()
		}
	}
}

// GetAdminUsername extracts the authenticated admin from the Gin context
func GetAdminUsername(c *gin.Context) (string, error) {
	username, exists := c.Get(adminUsernameKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_USER", Message: "Admin not found in context"}
	}

	name, ok := username.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER", Message: "Admin username is not a string"}
	}

	return name, nil
}

// GetSessionID extracts the session ID of the validated token
func GetSessionID(c *gin.Context) (string, error) {
	id, exists := c.Get(sessionIDKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_SESSION", Message: "Session not found in context"}
	}
	sid, ok := id.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_SESSION", Message: "Session ID is not a string"}
	}
	return sid, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
