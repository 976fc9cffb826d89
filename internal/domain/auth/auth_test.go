package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spottive/internal/core/apperror"
	"spottive/pkg/logger"
)

func testJWT(ttl time.Duration) *JWTService {
	return NewJWTService(JWTConfig{Secret: "test-secret", TokenTTL: ttl})
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	svc := testJWT(time.Hour)

	token, err := svc.Generate("adeeb", true)
	require.NoError(t, err)

	user, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "adeeb", user.Username)
	assert.True(t, user.IsAdmin)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := testJWT(time.Hour).Generate("adeeb", true)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{Secret: "different-secret"})
	_, err = other.Validate(token)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
}

func TestValidateRejectsExpired(t *testing.T) {
	token, err := testJWT(-time.Minute).Generate("adeeb", true)
	require.NoError(t, err)

	_, err = testJWT(time.Hour).Validate(token)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
}

func TestLogin(t *testing.T) {
	creds, err := NewCredentials("adeeb", "123")
	require.NoError(t, err)
	svc := NewService(creds, testJWT(time.Hour), logger.Default())
	ctx := context.Background()

	t.Run("correct credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "adeeb", "123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		user, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "adeeb", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "adeeb", "wrong")
		assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := svc.Login(ctx, "someone", "123")
		assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
	})
}
