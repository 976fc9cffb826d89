// Package context carries request-scoped identity and tracing data.
package context

import (
	"context"
)

// UserContext identifies the authenticated caller of a request.
type UserContext struct {
	Username string
	IsAdmin  bool
}

type userContextKey struct{}

// WithUser stores UserContext in context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context, or nil for anonymous requests.
func GetUser(ctx context.Context) *UserContext {
	user, _ := ctx.Value(userContextKey{}).(*UserContext)
	return user
}

// Username returns the caller's username, or "anonymous".
func Username(ctx context.Context) string {
	if user := GetUser(ctx); user != nil {
		return user.Username
	}
	return "anonymous"
}
