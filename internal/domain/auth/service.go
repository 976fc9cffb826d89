package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"spottive/internal/core/apperror"
	appctx "spottive/internal/core/context"
	"spottive/pkg/logger"
)

// Credentials is the configured admin account. The password is kept
// only as a bcrypt hash.
type Credentials struct {
	Username     string
	PasswordHash []byte
}

// NewCredentials hashes a plaintext password into Credentials.
func NewCredentials(username, password string) (Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, apperror.Internal("failed to hash password", err)
	}
	return Credentials{Username: username, PasswordHash: hash}, nil
}

// Service authenticates back-office logins.
type Service struct {
	creds Credentials
	jwt   *JWTService
	log   *logger.Logger
}

// NewService creates the auth service.
func NewService(creds Credentials, jwtService *JWTService, log *logger.Logger) *Service {
	return &Service{
		creds: creds,
		jwt:   jwtService,
		log:   log.WithComponent("auth"),
	}
}

// Login verifies the credentials and returns a signed token. Username
// and password failures are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.creds.Username ||
		bcrypt.CompareHashAndPassword(s.creds.PasswordHash, []byte(password)) != nil {
		s.log.WithContext(ctx).Warnw("failed login attempt", "username", username)
		return "", apperror.Unauthorized("invalid username or password")
	}

	token, err := s.jwt.Generate(username, true)
	if err != nil {
		return "", err
	}

	s.log.WithContext(ctx).Infow("admin logged in", "username", username)
	return token, nil
}

// Validate verifies a bearer token and returns the caller identity.
func (s *Service) Validate(tokenString string) (*appctx.UserContext, error) {
	return s.jwt.Validate(tokenString)
}
