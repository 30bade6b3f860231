package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/janus-access/janus-server/internal/janus/store"
)

var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrInvalidAPIKey = errors.New("invalid or inactive API key")
)

// ControllerRegistry authenticates calling hardware. It is the single
// controller-identity check consumed by both the decision and the logging
// endpoints.
type ControllerRegistry struct {
	keys store.ControllerKeyStore
}

func NewControllerRegistry(ks store.ControllerKeyStore) *ControllerRegistry {
	return &ControllerRegistry{keys: ks}
}

// Authenticate resolves a presented secret to a controller id. Absent and
// revoked keys are distinguished only by which sentinel is returned; neither
// yields any identity information. A successful match touches the key's
// last_seen timestamp as a best-effort liveness signal.
func (r *ControllerRegistry) Authenticate(ctx context.Context, secret string) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", ErrMissingAPIKey
	}

	rec, err := r.keys.FindActiveBySecret(ctx, secret)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", ErrInvalidAPIKey
	}
	if err != nil {
		return "", err
	}

	_ = r.keys.TouchSeen(ctx, rec.ID, time.Now().UTC())

	return rec.ID, nil
}
