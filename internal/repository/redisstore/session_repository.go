// Package redisstore implements the session store on Redis. Sessions are
// JSON blobs keyed by token with a TTL; the TTL is the only expiry record.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pokedex-api/internal/domain"
	"pokedex-api/internal/observability"
)

const sessionKeyPrefix = "session:"

// SessionRepository implements domain.SessionRepository on Redis.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository creates a SessionRepository. ttl is the idle timeout
// applied on creation and refreshed on every Touch.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

// Create stores the session under its token with the idle TTL.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKey(session.Token), payload, r.ttl).Err(); err != nil {
		observability.SessionStoreOps.WithLabelValues("create", "error").Inc()
		return fmt.Errorf("failed to store session: %w", err)
	}

	observability.SessionStoreOps.WithLabelValues("create", "ok").Inc()
	return nil
}

// Touch looks up the session and pushes its expiry forward by the idle TTL
// in the same round trip. A missing or expired key is a legitimate state,
// reported as domain.ErrSessionNotFound.
func (r *SessionRepository) Touch(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.rdb.GetEx(ctx, sessionKey(token), r.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			observability.SessionStoreOps.WithLabelValues("touch", "miss").Inc()
			return nil, domain.ErrSessionNotFound
		}
		observability.SessionStoreOps.WithLabelValues("touch", "error").Inc()
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := &domain.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	observability.SessionStoreOps.WithLabelValues("touch", "ok").Inc()
	return session, nil
}

// Delete invalidates the session immediately. Deleting an absent token is
// not an error; a store failure is.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		observability.SessionStoreOps.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("failed to delete session: %w", err)
	}
	observability.SessionStoreOps.WithLabelValues("delete", "ok").Inc()
	return nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
