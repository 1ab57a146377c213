package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is applied by Insert when no explicit TTL is given.
const DefaultSessionTTL = 365 * 24 * time.Hour

// SessionStore is the ephemeral token-persistence contract. Entries expire
// through the backend's native TTL mechanism; nothing in this module sweeps
// them actively.
type SessionStore interface {
	// Insert stores token under id with DefaultSessionTTL.
	Insert(ctx context.Context, id uuid.UUID, token string) error

	// InsertFor stores token under id with an explicit TTL, truncated to
	// whole seconds at the storage boundary.
	InsertFor(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error

	// Remove deletes the entry. Removing a missing id is not an error.
	Remove(ctx context.Context, id uuid.UUID) error

	// Get returns the stored token and whether it was found. A missing or
	// expired entry is ("", false, nil); a backend fault is reported as a
	// non-nil error instead of being collapsed into "absent".
	Get(ctx context.Context, id uuid.UUID) (string, bool, error)

	// ClearAll drops every entry visible to the store's connection. The
	// backing database must be dedicated to session data, otherwise this
	// is destructive beyond its intended scope.
	ClearAll(ctx context.Context) error

	// ClearExpired is a no-op kept for contract symmetry; expiry is
	// enforced by the backend TTL.
	ClearExpired(ctx context.Context) error
}
