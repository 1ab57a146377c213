// Package store provides the concurrency decorators that adapt backends with
// differing thread-safety guarantees to the one user store contract. Both
// decorators implement domain.UserStore themselves, so callers compose them
// freely with any adapter.
package store

import (
	"context"

	"github.com/google/uuid"

	"authstore/internal/domain"
)

var _ domain.UserStore = (*Shared)(nil)

// Shared wraps a backend that already multiplexes concurrent operations
// internally (a connection pool). It adds no synchronization; it only lets
// independent owners hold the same backend instance. Every call passes
// through unchanged, errors included.
type Shared struct {
	inner domain.UserStore
}

// NewShared creates a shared-ownership decorator over an internally pooled
// backend.
func NewShared(inner domain.UserStore) *Shared {
	return &Shared{inner: inner}
}

func (s *Shared) Init(ctx context.Context) error {
	return s.inner.Init(ctx)
}

func (s *Shared) Create(ctx context.Context, id uuid.UUID, email, passwordHash string, isAdmin bool) error {
	return s.inner.Create(ctx, id, email, passwordHash, isAdmin)
}

func (s *Shared) Update(ctx context.Context, user *domain.User) error {
	return s.inner.Update(ctx, user)
}

func (s *Shared) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.inner.DeleteByID(ctx, id)
}

func (s *Shared) DeleteByEmail(ctx context.Context, email string) error {
	return s.inner.DeleteByEmail(ctx, email)
}

func (s *Shared) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.inner.GetByID(ctx, id)
}

func (s *Shared) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.inner.GetByEmail(ctx, email)
}
