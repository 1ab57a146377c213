package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"authstore/internal/domain"
	"authstore/internal/metrics"
)

var _ domain.UserStore = (*Instrumented)(nil)

// Instrumented records operation counts and latency to prometheus. It is a
// pass-through decorator; wrap it around the outermost store.
type Instrumented struct {
	inner domain.UserStore
	clock clockwork.Clock
}

// NewInstrumented creates an instrumentation decorator. The clock is
// injectable so tests can use a fake.
func NewInstrumented(inner domain.UserStore, clock clockwork.Clock) *Instrumented {
	return &Instrumented{inner: inner, clock: clock}
}

func (i *Instrumented) observe(op string, fn func() error) error {
	start := i.clock.Now()
	err := fn()
	metrics.StoreOpDuration.WithLabelValues(op).Observe(i.clock.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StoreOpsTotal.WithLabelValues(op, status).Inc()
	return err
}

func (i *Instrumented) Init(ctx context.Context) error {
	return i.observe("init", func() error { return i.inner.Init(ctx) })
}

func (i *Instrumented) Create(ctx context.Context, id uuid.UUID, email, passwordHash string, isAdmin bool) error {
	return i.observe("create", func() error { return i.inner.Create(ctx, id, email, passwordHash, isAdmin) })
}

func (i *Instrumented) Update(ctx context.Context, user *domain.User) error {
	return i.observe("update", func() error { return i.inner.Update(ctx, user) })
}

func (i *Instrumented) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return i.observe("delete_by_id", func() error { return i.inner.DeleteByID(ctx, id) })
}

func (i *Instrumented) DeleteByEmail(ctx context.Context, email string) error {
	return i.observe("delete_by_email", func() error { return i.inner.DeleteByEmail(ctx, email) })
}

func (i *Instrumented) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := i.observe("get_by_id", func() error {
		var opErr error
		user, opErr = i.inner.GetByID(ctx, id)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (i *Instrumented) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := i.observe("get_by_email", func() error {
		var opErr error
		user, opErr = i.inner.GetByEmail(ctx, email)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
