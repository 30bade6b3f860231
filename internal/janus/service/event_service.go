package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janus-access/janus-server/internal/janus/store"
	"github.com/janus-access/janus-server/internal/janus/types"
)

var ErrEventFieldsRequired = errors.New("card_number, pin, door_id and access_type required")

// EventService appends controller-reported door interactions to the audit
// log. It makes no authorization judgement of its own: access_type is
// recorded exactly as the controller supplied it, so locally-made decisions
// (offline fallback, timeout) can be logged alongside server-validated ones.
type EventService struct {
	logs store.AccessLogStore
}

func NewEventService(ls store.AccessLogStore) *EventService {
	return &EventService{logs: ls}
}

// Record inserts exactly one audit row. The timestamp is the server clock
// at insert time; controllerID comes from the authenticated key, never from
// the request body.
func (s *EventService) Record(ctx context.Context, controllerID string, req types.LogAccessRequest) error {
	if req.CardNumber == "" || req.PIN == "" || req.DoorID == "" || req.AccessType == "" {
		return ErrEventFieldsRequired
	}

	rec := store.AccessLogRecord{
		CardNumber:   req.CardNumber,
		PINUsed:      req.PIN,
		DoorID:       req.DoorID,
		AccessType:   req.AccessType,
		ControllerID: controllerID,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.logs.Insert(ctx, rec); err != nil {
		return fmt.Errorf("record access event: %w", err)
	}
	return nil
}

// Recent returns the newest audit entries, for the admin log table.
func (s *EventService) Recent(ctx context.Context, limit int) ([]store.AccessLogRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.logs.ListRecent(ctx, limit)
}
