package memory

import (
	"context"
	"sync"

	"github.com/janus-access/janus-server/internal/janus/store"
)

// AccessLogStore is an in-memory append-only audit log for tests and dev.
type AccessLogStore struct {
	mu      sync.Mutex
	entries []store.AccessLogRecord
	nextID  int64
}

func NewAccessLogStore() *AccessLogStore {
	return &AccessLogStore{nextID: 1}
}

func (s *AccessLogStore) Insert(_ context.Context, rec store.AccessLogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, rec)
	return nil
}

func (s *AccessLogStore) ListRecent(_ context.Context, limit int) ([]store.AccessLogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]store.AccessLogRecord, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Entries returns a copy of all recorded rows, oldest first. Test-only helper.
func (s *AccessLogStore) Entries() []store.AccessLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.AccessLogRecord, len(s.entries))
	copy(out, s.entries)
	return out
}
