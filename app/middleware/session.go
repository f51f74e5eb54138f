package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"modern-stitch/logger"
	"modern-stitch/service"
)

type sessionKey struct{}

// SessionOptions configures the session cookie
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Sessions resolves the storefront session from the cookie, creating one on first visit.
// The cookie is re-issued on every request so its expiry follows the server-side TTL.
func Sessions(store *service.SessionStore, opts SessionOptions) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "ms_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(opts.CookieName); err == nil {
				id = c.Value
			}

			session, _ := store.GetOrCreate(id)
			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    session.ID,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			log := logger.FromContext(r.Context(), nil).With(zap.String("session_id", session.ID))
			ctx := logger.WithContext(r.Context(), log)
			ctx = context.WithValue(ctx, sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by Sessions
func SessionFromContext(ctx context.Context) (*service.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*service.Session)
	return s, ok && s != nil
}

// WithSession stores a session in ctx
func WithSession(ctx context.Context, s *service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}
