package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "spottive/internal/core/context"
	"spottive/internal/domain/auth"
	"spottive/pkg/logger"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour})

	router := gin.New()
	router.Use(ErrorHandler(logger.Default()))
	router.GET("/protected", Auth(jwtService), func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		require.NotNil(t, user)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router, jwtService
}

func request(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthAcceptsValidToken(t *testing.T) {
	router, jwtService := newAuthRouter(t)

	token, err := jwtService.Generate("adeeb", true)
	require.NoError(t, err)

	rec := request(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adeeb")
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router, _ := newAuthRouter(t)
	rec := request(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsNonBearer(t *testing.T) {
	router, _ := newAuthRouter(t)
	rec := request(router, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	router, _ := newAuthRouter(t)
	rec := request(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
