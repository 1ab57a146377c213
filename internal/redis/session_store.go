package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"authstore/internal/domain"
	apperrors "authstore/internal/errors"
	"authstore/internal/metrics"
)

var _ domain.SessionStore = (*SessionStore)(nil)

// SessionStore implements the session token contract on Redis. Expiry rides
// on Redis TTLs; ClearExpired does nothing.
//
// ClearAll issues FLUSHDB, so the logical database behind the client must be
// dedicated to session data.
type SessionStore struct {
	rdb *goredis.Client
}

// NewSessionStore creates a SessionStore over an existing client.
func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{rdb: client.rdb}
}

// sessionKey encodes the 128-bit id as raw bytes.
func sessionKey(id uuid.UUID) string {
	return string(id[:])
}

func (s *SessionStore) Insert(ctx context.Context, id uuid.UUID, token string) error {
	return s.InsertFor(ctx, id, token, domain.DefaultSessionTTL)
}

func (s *SessionStore) InsertFor(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	err := s.rdb.SetEx(ctx, sessionKey(id), token, ttl.Truncate(time.Second)).Err()
	s.record("insert", err)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to store session: %w", err))
	}
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, id uuid.UUID) error {
	err := s.rdb.Del(ctx, sessionKey(id)).Err()
	s.record("remove", err)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to remove session: %w", err))
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (string, bool, error) {
	token, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		s.record("get", nil)
		return "", false, nil
	}
	s.record("get", err)
	if err != nil {
		return "", false, apperrors.Storage(fmt.Errorf("failed to get session: %w", err))
	}
	return token, true, nil
}

func (s *SessionStore) ClearAll(ctx context.Context) error {
	err := s.rdb.FlushDB(ctx).Err()
	s.record("clear_all", err)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to clear sessions: %w", err))
	}
	return nil
}

// ClearExpired is a no-op; Redis expires entries natively.
func (s *SessionStore) ClearExpired(ctx context.Context) error {
	return nil
}

func (s *SessionStore) record(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SessionOpsTotal.WithLabelValues(op, status).Inc()
}
