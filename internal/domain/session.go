package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session represents a server-side session bound to one user. Token is the
// opaque value held by the client cookie; the expiry deadline lives in the
// session store's TTL, not on the struct.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository defines the interface for session store access.
// Touch implements the rolling TTL: a successful lookup pushes the expiry
// deadline forward by the configured idle timeout.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Touch(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
