package store

import (
	"context"
	"errors"
)

var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRecord is the subset of a user row that the access decision
// needs. Card number and PIN are stored and matched as exact strings.
type CredentialRecord struct {
	UserID      string
	Name        string
	CardNumber  string
	PIN         string
	Disabled    bool
	PINDisabled bool
}

type CredentialStore interface {
	// FindByCardAndPIN does a case-sensitive exact match on both values.
	// No normalization is applied. Returns ErrCredentialNotFound when no
	// row matches; account-state flags on a matched row are the caller's
	// concern.
	FindByCardAndPIN(ctx context.Context, cardNumber, pin string) (CredentialRecord, error)
}
