// Package auth implements back-office authentication: a single admin
// credential pair exchanged for a signed JWT.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"spottive/internal/core/apperror"
	appctx "spottive/internal/core/context"
)

// JWTConfig holds token signing parameters.
type JWTConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// Claims are the JWT claims issued to the back office.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// JWTService issues and validates tokens.
type JWTService struct {
	cfg JWTConfig
}

// NewJWTService creates a JWTService.
func NewJWTService(cfg JWTConfig) *JWTService {
	if cfg.Issuer == "" {
		cfg.Issuer = "spottive"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	return &JWTService{cfg: cfg}
}

// Generate issues a signed token for the given user.
func (s *JWTService) Generate(username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Username: username,
		IsAdmin:  isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperror.Internal("failed to sign token", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning the caller identity.
func (s *JWTService) Validate(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Unauthorized("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeUnauthorized, "invalid token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("invalid token claims")
	}

	return &appctx.UserContext{
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
