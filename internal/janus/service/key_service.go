package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/janus-access/janus-server/internal/janus/store"
)

var ErrControllerNameRequired = errors.New("controller_name is required")

// apiKeySecretLength is the fixed length of issued controller secrets.
const apiKeySecretLength = 32

const apiKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// KeyService owns the controller key lifecycle: issue, revoke, list.
// Secrets are generated server-side from crypto/rand; revocation is a
// one-way state transition and rows are never deleted.
type KeyService struct {
	keys store.ControllerKeyStore
}

func NewKeyService(ks store.ControllerKeyStore) *KeyService {
	return &KeyService{keys: ks}
}

// Issue creates a new active key for the named controller and returns the
// full record, including the secret. The secret is only ever derivable
// from this return value and the admin list endpoint.
func (s *KeyService) Issue(ctx context.Context, controllerName string) (store.ControllerKeyRecord, error) {
	controllerName = strings.TrimSpace(controllerName)
	if controllerName == "" {
		return store.ControllerKeyRecord{}, ErrControllerNameRequired
	}

	secret, err := generateSecret(apiKeySecretLength)
	if err != nil {
		return store.ControllerKeyRecord{}, err
	}

	rec := store.ControllerKeyRecord{
		ID:             uuid.NewString(),
		ControllerName: controllerName,
		APIKey:         secret,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.keys.Insert(ctx, rec); err != nil {
		return store.ControllerKeyRecord{}, fmt.Errorf("insert controller key: %w", err)
	}
	return rec, nil
}

// Revoke deactivates the key with the given id. Revoking an already-revoked
// key is a no-op that still succeeds; there is no way back to active.
func (s *KeyService) Revoke(ctx context.Context, id string) error {
	return s.keys.Revoke(ctx, id, time.Now().UTC())
}

func (s *KeyService) List(ctx context.Context) ([]store.ControllerKeyRecord, error) {
	return s.keys.List(ctx)
}

// generateSecret builds an n-character alphanumeric secret from
// crypto/rand. Bytes >= 248 are rejected so the modulo over the 62-char
// alphabet stays unbiased.
func generateSecret(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		for _, b := range buf {
			if b >= 248 {
				continue
			}
			out = append(out, apiKeyAlphabet[int(b)%len(apiKeyAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
