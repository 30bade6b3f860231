package service

import (
	"context"
	"errors"

	"github.com/janus-access/janus-server/internal/janus/store"
	"github.com/janus-access/janus-server/internal/janus/types"
)

var (
	ErrCardPINRequired = errors.New("card_number and pin required")

	// ErrAccessDenied covers both "no such credential" and "credential
	// matched but the account is disabled or has its PIN disabled". The two
	// cases must stay indistinguishable to the caller so a compromised
	// controller cannot probe account state.
	ErrAccessDenied = errors.New("not found or access denied")
)

// AccessService decides whether a presented card+PIN pair identifies a
// currently-usable person. It is a pure read path: no event is recorded
// here — reporting is the controller's separate call to the event recorder.
type AccessService struct {
	credentials store.CredentialStore
}

func NewAccessService(cs store.CredentialStore) *AccessService {
	return &AccessService{credentials: cs}
}

func (s *AccessService) ValidateCardPIN(ctx context.Context, req types.ValidateCardPINRequest) (types.ValidateCardPINResponse, error) {
	// Exact-string matching throughout: no trimming, no case folding.
	if req.CardNumber == "" || req.PIN == "" {
		return types.ValidateCardPINResponse{}, ErrCardPINRequired
	}

	cred, err := s.credentials.FindByCardAndPIN(ctx, req.CardNumber, req.PIN)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return types.ValidateCardPINResponse{}, ErrAccessDenied
	}
	if err != nil {
		return types.ValidateCardPINResponse{}, err
	}

	if cred.Disabled || cred.PINDisabled {
		return types.ValidateCardPINResponse{}, ErrAccessDenied
	}

	return types.ValidateCardPINResponse{
		UserID:     cred.UserID,
		Name:       cred.Name,
		CardNumber: cred.CardNumber,
	}, nil
}
