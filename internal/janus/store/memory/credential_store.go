package memory

import (
	"context"
	"sync"

	"github.com/janus-access/janus-server/internal/janus/store"
)

// CredentialStore holds a fixed set of user credentials for tests and dev.
type CredentialStore struct {
	mu      sync.RWMutex
	creds   []store.CredentialRecord
	lookups int
}

func NewCredentialStore(creds []store.CredentialRecord) *CredentialStore {
	out := make([]store.CredentialRecord, len(creds))
	copy(out, creds)
	return &CredentialStore{creds: out}
}

func (s *CredentialStore) FindByCardAndPIN(_ context.Context, cardNumber, pin string) (store.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookups++

	// Prefer a usable record when a disabled user still holds the same
	// card number (uniqueness is only enforced among enabled users).
	var match *store.CredentialRecord
	for i := range s.creds {
		c := s.creds[i]
		if c.CardNumber != cardNumber || c.PIN != pin {
			continue
		}
		if !c.Disabled && !c.PINDisabled {
			return c, nil
		}
		if match == nil {
			match = &c
		}
	}
	if match != nil {
		return *match, nil
	}
	return store.CredentialRecord{}, store.ErrCredentialNotFound
}

// SetDisabled flips the disabled flag on the user with the given id.
// Test-only helper standing in for the out-of-scope admin UI.
func (s *CredentialStore) SetDisabled(userID string, disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.creds {
		if s.creds[i].UserID == userID {
			s.creds[i].Disabled = disabled
		}
	}
}

// SetPINDisabled flips the pin_disabled flag. Test-only helper.
func (s *CredentialStore) SetPINDisabled(userID string, disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.creds {
		if s.creds[i].UserID == userID {
			s.creds[i].PINDisabled = disabled
		}
	}
}

// Lookups reports how many times FindByCardAndPIN ran. Test-only helper
// for asserting that invalid requests never reach the store.
func (s *CredentialStore) Lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}
