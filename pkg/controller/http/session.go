package http

import (
	"context"
	"net/http"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/types"
)

const sessionCookieName = "fanpage_session"

type sessionConfig struct {
	secure bool
	maxAge time.Duration
}

// SessionOption configures the session cookie middleware
type SessionOption func(*sessionConfig)

// WithSecureCookies marks session cookies Secure (production over HTTPS)
func WithSecureCookies(secure bool) SessionOption {
	return func(c *sessionConfig) {
		c.secure = secure
	}
}

// WithSessionMaxAge sets the session cookie lifetime
func WithSessionMaxAge(maxAge time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.maxAge = maxAge
	}
}

// sessionMiddleware assigns each browser a session ID via an HTTP-only
// cookie and injects it into the request context. The server-side session
// data expires independently in the session store.
func sessionMiddleware(opts ...SessionOption) func(http.Handler) http.Handler {
	cfg := &sessionConfig{
		maxAge: time.Hour,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sessionID types.SessionID
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				sessionID = types.SessionID(cookie.Value)
			}

			if !sessionID.IsValid() {
				sessionID = types.NewSessionID(ctx)
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID.String(),
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(cfg.maxAge.Seconds()),
				})
			}

			next.ServeHTTP(w, r.WithContext(contextWithSessionID(ctx, sessionID)))
		})
	}
}

type contextKey string

const sessionIDContextKey contextKey = "session_id"

func contextWithSessionID(ctx context.Context, id types.SessionID) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, id)
}

// SessionIDFromContext extracts the session ID injected by the middleware.
func SessionIDFromContext(ctx context.Context) (types.SessionID, bool) {
	id, ok := ctx.Value(sessionIDContextKey).(types.SessionID)
	return id, ok
}
