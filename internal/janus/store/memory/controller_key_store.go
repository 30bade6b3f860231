package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/janus-access/janus-server/internal/janus/store"
)

// ControllerKeyStore is an in-memory key registry for tests and dev.
type ControllerKeyStore struct {
	mu   sync.RWMutex
	byID map[string]store.ControllerKeyRecord
}

func NewControllerKeyStore() *ControllerKeyStore {
	return &ControllerKeyStore{byID: make(map[string]store.ControllerKeyRecord)}
}

func (s *ControllerKeyStore) Insert(_ context.Context, rec store.ControllerKeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if existing.APIKey == rec.APIKey {
			return fmt.Errorf("api_key already exists")
		}
	}
	s.byID[rec.ID] = rec
	return nil
}

func (s *ControllerKeyStore) FindActiveBySecret(_ context.Context, secret string) (store.ControllerKeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.byID {
		if rec.APIKey == secret && rec.IsActive {
			return rec, nil
		}
	}
	return store.ControllerKeyRecord{}, store.ErrKeyNotFound
}

func (s *ControllerKeyStore) Revoke(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return store.ErrKeyNotFound
	}
	if rec.IsActive {
		rec.IsActive = false
		t := at.UTC()
		rec.RevokedAt = &t
		s.byID[id] = rec
	}
	return nil
}

func (s *ControllerKeyStore) TouchSeen(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return store.ErrKeyNotFound
	}
	t := at.UTC()
	rec.LastSeenAt = &t
	s.byID[id] = rec
	return nil
}

func (s *ControllerKeyStore) List(_ context.Context) ([]store.ControllerKeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.ControllerKeyRecord, 0, len(s.byID))
	for _, rec := range s.byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Get returns a record by id. Test-only helper.
func (s *ControllerKeyStore) Get(id string) (store.ControllerKeyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	return rec, ok
}
