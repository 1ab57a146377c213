package domain

import (
	"context"

	"github.com/google/uuid"
)

// User is the account record persisted by a UserStore.
// ID is caller-supplied and immutable after creation; all other fields
// are replaced wholesale by Update.
type User struct {
	ID       uuid.UUID `db:"id"`
	Email    string    `db:"email"`
	Password string    `db:"password"`
	IsAdmin  bool      `db:"is_admin"`
}

// UserStore is the account-persistence contract. Every backend adapter and
// every concurrency decorator implements it, so callers stay agnostic to the
// storage engine and to whether sharing or exclusion is in effect.
//
// All operations are I/O-bound and resolve exactly once. Failures surface as
// *errors.Error values from the closed taxonomy: Create reports Conflict on a
// duplicate email, Update and both Gets report NotFound when no row matches,
// and any driver fault arrives as Storage with the cause preserved.
type UserStore interface {
	// Init idempotently ensures the users table exists. Calling it again
	// must not error and must not touch existing rows.
	Init(ctx context.Context) error

	// Create inserts a new account. The id is generated by the caller.
	Create(ctx context.Context, id uuid.UUID, email, passwordHash string, isAdmin bool) error

	// Update replaces email, password, and is_admin of the record with
	// user.ID. Zero affected rows normalizes to NotFound.
	Update(ctx context.Context, user *User) error

	// DeleteByID removes at most one record. Deleting a missing id is a
	// silent no-op.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteByEmail removes at most one record. Deleting a missing email
	// is a silent no-op.
	DeleteByEmail(ctx context.Context, email string) error

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
