package store

import (
	"context"
	"time"
)

// AccessLogRecord is one append-only audit row. DoorID and CardNumber are
// weak references by design: a row may name a door or card that no longer
// exists, preserving historical fidelity.
type AccessLogRecord struct {
	ID           int64
	CardNumber   string
	PINUsed      string
	DoorID       string
	AccessType   string
	ControllerID string
	Notes        string
	CreatedAt    time.Time
}

// AccessLogStore persists controller-reported events. Rows are never
// updated or deleted through this interface.
type AccessLogStore interface {
	Insert(ctx context.Context, rec AccessLogRecord) error

	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]AccessLogRecord, error)
}
