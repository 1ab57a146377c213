package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"authstore/internal/domain"
	apperrors "authstore/internal/errors"
)

var _ domain.UserStore = (*Serialized)(nil)

// Serialized wraps a backend with no internal concurrency guarantee (a single
// logical connection) and serializes every operation, reads included, through
// one mutex. Waiters acquire in whatever order sync.Mutex hands out; callers
// may only assume no two operations overlap.
//
// If the inner store panics mid-operation the connection state is unknown, so
// the decorator marks itself corrupted: the failed call and every later call
// report LockCorrupted instead of touching the connection again.
type Serialized struct {
	mu        sync.Mutex
	corrupted bool
	inner     domain.UserStore
}

// NewSerialized creates an exclusive-lock decorator over a backend that is
// not safe for concurrent use.
func NewSerialized(inner domain.UserStore) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) do(op func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.corrupted {
		return apperrors.LockCorrupted()
	}

	defer func() {
		if r := recover(); r != nil {
			s.corrupted = true
			slog.Error("store operation panicked, marking connection corrupted", "panic", r)
			err = apperrors.LockCorrupted()
		}
	}()
	return op()
}

func (s *Serialized) Init(ctx context.Context) error {
	return s.do(func() error { return s.inner.Init(ctx) })
}

func (s *Serialized) Create(ctx context.Context, id uuid.UUID, email, passwordHash string, isAdmin bool) error {
	return s.do(func() error { return s.inner.Create(ctx, id, email, passwordHash, isAdmin) })
}

func (s *Serialized) Update(ctx context.Context, user *domain.User) error {
	return s.do(func() error { return s.inner.Update(ctx, user) })
}

func (s *Serialized) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.do(func() error { return s.inner.DeleteByID(ctx, id) })
}

func (s *Serialized) DeleteByEmail(ctx context.Context, email string) error {
	return s.do(func() error { return s.inner.DeleteByEmail(ctx, email) })
}

func (s *Serialized) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := s.do(func() error {
		var opErr error
		user, opErr = s.inner.GetByID(ctx, id)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Serialized) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := s.do(func() error {
		var opErr error
		user, opErr = s.inner.GetByEmail(ctx, email)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
