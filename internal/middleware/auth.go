package middleware

import (
	"context"
	"errors"
	"net/http"

	"pokedex-api/internal/domain"
	"pokedex-api/internal/observability"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	SessionKey contextKey = "session"
)

// SessionResolver resolves a cookie token to a live session, extending its
// rolling TTL. AuthService satisfies this.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.Session, error)
}

// Auth resolves the session cookie to a principal and stores it on the
// request context. Absence of a session is a 401; a session store failure
// is a 500, not an auth failure.
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Error(w, `{"error":"Not authenticated"}`, http.StatusUnauthorized)
				return
			}

			session, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					http.Error(w, `{"error":"Invalid or expired session"}`, http.StatusUnauthorized)
					return
				}
				observability.FromContext(r.Context()).Error("session resolution failed",
					"error", err.Error())
				http.Error(w, `{"error":"Session store unavailable"}`, http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, session.UserID)
			ctx = context.WithValue(ctx, SessionKey, session)
			ctx = observability.WithUserID(ctx, session.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.Session)
	return session, ok
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
