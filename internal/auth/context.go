package auth

import (
	"context"

	"github.com/ayush/gyft/backend/internal/models"
)

type contextKey string

const (
	userKey    = contextKey("user")
	sessionKey = contextKey("session")
)

// WithUser attaches the authenticated user and its session id to ctx.
func WithUser(ctx context.Context, u *models.User, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userKey, u)
	return context.WithValue(ctx, sessionKey, sessionID)
}

// UserFromContext returns the current user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// SessionIDFromContext returns the session id stored by WithUser.
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
