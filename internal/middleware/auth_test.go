package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pokedex-api/internal/domain"
	"pokedex-api/internal/testutil"
)

type mockResolver struct {
	resolveFunc func(ctx context.Context, token string) (*domain.Session, error)
}

func (m *mockResolver) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	return m.resolveFunc(ctx, token)
}

func TestAuth(t *testing.T) {
	t.Run("valid session reaches the handler", func(t *testing.T) {
		session := testutil.NewTestSession()
		resolver := &mockResolver{
			resolveFunc: func(ctx context.Context, token string) (*domain.Session, error) {
				if token != session.Token {
					t.Errorf("resolver received token %q, want %q", token, session.Token)
				}
				return session, nil
			},
		}

		var gotUserID string
		var gotSession *domain.Session
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = GetUserID(r.Context())
			gotSession, _ = GetSession(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := testutil.NewRequestWithCookie(t, http.MethodGet, "/user/",
			SessionCookieName, session.Token)
		w := httptest.NewRecorder()

		Auth(resolver)(next).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		if gotUserID != session.UserID {
			t.Errorf("expected user ID %q on context, got %q", session.UserID, gotUserID)
		}
		if gotSession != session {
			t.Error("expected the resolved session on context")
		}
	})

	t.Run("missing cookie", func(t *testing.T) {
		resolver := &mockResolver{
			resolveFunc: func(ctx context.Context, token string) (*domain.Session, error) {
				t.Fatal("resolver must not be called without a cookie")
				return nil, nil
			},
		}

		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := httptest.NewRequest(http.MethodGet, "/user/", nil)
		w := httptest.NewRecorder()

		Auth(resolver)(next).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
		if called {
			t.Error("handler must not run for an unauthenticated request")
		}
	})

	t.Run("expired session", func(t *testing.T) {
		resolver := &mockResolver{
			resolveFunc: func(ctx context.Context, token string) (*domain.Session, error) {
				return nil, domain.ErrSessionNotFound
			},
		}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run for an expired session")
		})

		req := testutil.NewRequestWithCookie(t, http.MethodGet, "/user/",
			SessionCookieName, "stale-token")
		w := httptest.NewRecorder()

		Auth(resolver)(next).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("session store failure", func(t *testing.T) {
		resolver := &mockResolver{
			resolveFunc: func(ctx context.Context, token string) (*domain.Session, error) {
				return nil, errors.New("store unavailable")
			},
		}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run when the session store is down")
		})

		req := testutil.NewRequestWithCookie(t, http.MethodGet, "/user/",
			SessionCookieName, "some-token")
		w := httptest.NewRecorder()

		Auth(resolver)(next).ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}
	})
}

func TestGetUserID(t *testing.T) {
	if _, ok := GetUserID(context.Background()); ok {
		t.Error("expected no user ID on an empty context")
	}

	ctx := WithUserID(context.Background(), "user-1")
	userID, ok := GetUserID(ctx)
	if !ok || userID != "user-1" {
		t.Errorf("expected user-1, got %q (ok=%v)", userID, ok)
	}
}
