package httpapi

import (
	"time"

	"github.com/janus-access/janus-server/internal/janus/store"
	"github.com/janus-access/janus-server/internal/janus/types"
)

func keyToWire(rec store.ControllerKeyRecord) types.ControllerKey {
	out := types.ControllerKey{
		ID:             rec.ID,
		ControllerName: rec.ControllerName,
		APIKey:         rec.APIKey,
		IsActive:       rec.IsActive,
		CreatedAt:      rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if rec.RevokedAt != nil {
		out.RevokedAt = rec.RevokedAt.UTC().Format(time.RFC3339Nano)
	}
	if rec.LastSeenAt != nil {
		out.LastSeenAt = rec.LastSeenAt.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func logToWire(rec store.AccessLogRecord) types.AccessLogEntry {
	return types.AccessLogEntry{
		ID:           rec.ID,
		CardNumber:   rec.CardNumber,
		PINUsed:      rec.PINUsed,
		DoorID:       rec.DoorID,
		AccessType:   rec.AccessType,
		ControllerID: rec.ControllerID,
		Notes:        rec.Notes,
		Timestamp:    rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
