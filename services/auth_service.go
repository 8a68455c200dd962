package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminRole is the role claim carried by admin tokens
const AdminRole = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AdminClaims contains the custom data carried in admin tokens.
type AdminClaims struct {
	Role string `json:"role"`
}

// Validate rejects tokens that were not issued for an admin.
func (c *AdminClaims) Validate(ctx context.Context) error {
	if c.Role != AdminRole {
		return fmt.Errorf("unexpected role %q", c.Role)
	}
	return nil
}

type adminTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is returned to the admin panel after a successful login
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService issues and checks admin tokens
type AuthService struct {
	db        *gorm.DB
	sessions  SessionStore
	secret    []byte
	issuer    string
	audience  string
	ttl       time.Duration
	validator *validator.Validator
	now       func() time.Time
}

var authServiceInstance *AuthService

// NewAuthService creates the auth service and its token validator
func NewAuthService(db *gorm.DB, sessions SessionStore, cfg *config.Config) (*AuthService, error) {
	secret := []byte(cfg.JWTSecret)

	jwtValidator, err := validator.New(
		func(ctx context.Context) (interface{}, error) {
			return secret, nil
		},
		validator.HS256,
		cfg.TokenIssuer,
		[]string{cfg.TokenAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &AdminClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	return &AuthService{
		db:        db,
		sessions:  sessions,
		secret:    secret,
		issuer:    cfg.TokenIssuer,
		audience:  cfg.TokenAudience,
		ttl:       cfg.SessionTTL,
		validator: jwtValidator,
		now:       time.Now,
	}, nil
}

// InitAuthService creates the global auth service
func InitAuthService(db *gorm.DB, sessions SessionStore, cfg *config.Config) (*AuthService, error) {
	svc, err := NewAuthService(db, sessions, cfg)
	if err != nil {
		return nil, err
	}
	authServiceInstance = svc
	return svc, nil
}

// GetAuthService returns the initialized auth service
func GetAuthService() *AuthService {
	return authServiceInstance
}

// SetAuthService sets the auth service instance (primarily for testing)
func SetAuthService(svc *AuthService) {
	authServiceInstance = svc
}

// SeedAdmin creates the configured admin account if it does not exist yet.
// An existing account keeps its password.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.Admin{Username: username, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	log.Printf("Seeded admin account %q", username)
	return nil
}

// Login checks the credentials and opens a new session
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := adminTokenClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   admin.Username,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &Session{ID: sessionID, Username: admin.Username, CreatedAt: now, ExpiresAt: expiresAt}
	if err := s.sessions.Create(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResult{Token: token, Username: admin.Username, ExpiresAt: expiresAt}, nil
}

// ValidateToken checks the token signature and claims and requires its
// session to still be live. It matches jwtmiddleware.ValidateToken.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	validated, err := s.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	claims, ok := validated.(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.ID == "" {
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if session.Username != claims.RegisteredClaims.Subject {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate resolves a raw token to its live session
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	validated, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	claims := validated.(*validator.ValidatedClaims)
	return s.sessions.Get(ctx, claims.RegisteredClaims.ID)
}

// Logout revokes the session behind token. Unknown or invalid tokens are
// ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	session, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, session.ID)
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
