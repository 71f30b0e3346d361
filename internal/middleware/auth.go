package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/auth"
	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/web"
)

// UserResolver resolves a session id to its user.
type UserResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*models.User, error)
}

// LoadSession reads the session cookie and, when it names a live session,
// injects the user into the request context. Anonymous requests pass through.
func LoadSession(users UserResolver, cookieSecure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.CurrentUser(r.Context(), cookie.Value)
			switch {
			case err == nil:
				ctx := auth.WithUser(r.Context(), user, cookie.Value)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			case errors.Is(err, models.ErrUnauthenticated):
				// stale cookie
				http.SetCookie(w, auth.ExpiredSessionCookie(cookieSecure))
			default:
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("session lookup failed")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth sends requests without a logged-in user to the account page.
// It must run after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFromContext(r.Context()) == nil {
			web.FlashRedirect(w, r, "/account", web.FlashInfo, "Please log in to access this page.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
