package store

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned when no controller key matches a lookup.
// An inactive (revoked) key is reported the same way as an absent one.
var ErrKeyNotFound = errors.New("controller key not found")

// ControllerKeyRecord identifies one physical controller allowed to call in.
// Revocation flips IsActive and stamps RevokedAt; rows are never deleted so
// that historical access_logs rows keep a resolvable controller_id.
type ControllerKeyRecord struct {
	ID             string
	ControllerName string
	APIKey         string
	IsActive       bool
	CreatedAt      time.Time
	RevokedAt      *time.Time
	LastSeenAt     *time.Time
}

type ControllerKeyStore interface {
	Insert(ctx context.Context, rec ControllerKeyRecord) error

	// FindActiveBySecret matches the secret exactly and only against active
	// keys. Absent and revoked keys both yield ErrKeyNotFound.
	FindActiveBySecret(ctx context.Context, secret string) (ControllerKeyRecord, error)

	// Revoke is a one-way transition; there is no re-activation path.
	Revoke(ctx context.Context, id string, at time.Time) error

	// TouchSeen updates the key's last_seen timestamp. Best-effort liveness
	// signal; callers may ignore the error.
	TouchSeen(ctx context.Context, id string, at time.Time) error

	List(ctx context.Context) ([]ControllerKeyRecord, error)
}
