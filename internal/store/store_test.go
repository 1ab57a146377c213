package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"authstore/internal/domain"
)

// recordingStore fakes a backend with no concurrency safety: every call
// registers an entry/exit interval so tests can check that no two operations
// ever ran at the same time.
type recordingStore struct {
	mu        sync.Mutex
	intervals [][2]time.Time
	inFlight  int
	overlaps  int
	delay     time.Duration
	err       error
}

func (r *recordingStore) enter() time.Time {
	r.mu.Lock()
	r.inFlight++
	if r.inFlight > 1 {
		r.overlaps++
	}
	r.mu.Unlock()
	return time.Now()
}

func (r *recordingStore) exit(start time.Time) {
	time.Sleep(r.delay)
	r.mu.Lock()
	r.inFlight--
	r.intervals = append(r.intervals, [2]time.Time{start, time.Now()})
	r.mu.Unlock()
}

func (r *recordingStore) op() error {
	defer r.exit(r.enter())
	return r.err
}

func (r *recordingStore) Init(ctx context.Context) error { return r.op() }

func (r *recordingStore) Create(ctx context.Context, id uuid.UUID, email, hash string, isAdmin bool) error {
	return r.op()
}

func (r *recordingStore) Update(ctx context.Context, user *domain.User) error { return r.op() }

func (r *recordingStore) DeleteByID(ctx context.Context, id uuid.UUID) error { return r.op() }

func (r *recordingStore) DeleteByEmail(ctx context.Context, email string) error { return r.op() }

func (r *recordingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := r.op(); err != nil {
		return nil, err
	}
	return &domain.User{ID: id}, nil
}

func (r *recordingStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.op(); err != nil {
		return nil, err
	}
	return &domain.User{Email: email}, nil
}

// panickingStore blows up on every write to simulate an irrecoverable
// mid-operation failure.
type panickingStore struct {
	recordingStore
}

func (p *panickingStore) Create(ctx context.Context, id uuid.UUID, email, hash string, isAdmin bool) error {
	panic("connection wedged")
}
