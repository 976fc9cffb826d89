package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"spottive/internal/core/apperror"
	appctx "spottive/internal/core/context"
)

// TokenValidator verifies a bearer token and returns the caller.
type TokenValidator interface {
	Validate(token string) (*appctx.UserContext, error)
}

// Auth requires a valid bearer token and stores the caller identity in
// the request context. Mutating catalog routes sit behind this; reads
// and the live feed stay public.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperror.Unauthorized("missing authorization header"))
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			abort(c, apperror.Unauthorized("authorization header must be a bearer token"))
			return
		}

		user, err := validator.Validate(token)
		if err != nil {
			abort(c, err)
			return
		}

		c.Request = c.Request.WithContext(appctx.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
