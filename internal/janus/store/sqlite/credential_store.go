package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/janus-access/janus-server/internal/janus/store"
)

// CredentialStore is a read-only view over the users table. User rows are
// managed by the admin dashboard; this process only ever looks them up.
type CredentialStore struct {
	conn *sql.DB
}

func NewCredentialStore(conn *sql.DB) *CredentialStore {
	return &CredentialStore{conn: conn}
}

func (s *CredentialStore) FindByCardAndPIN(ctx context.Context, cardNumber, pin string) (store.CredentialRecord, error) {
	// SQLite's default comparison on TEXT is exact and case-sensitive,
	// matching the contract. A disabled user may share a card number with
	// an enabled one, so prefer the usable row when both match.
	row := s.conn.QueryRowContext(ctx, `
SELECT user_id, name, card_number, pin, disabled, pin_disabled
FROM users
WHERE card_number = ? AND pin = ?
ORDER BY disabled ASC, pin_disabled ASC
LIMIT 1;
`, cardNumber, pin)

	var (
		rec         store.CredentialRecord
		disabled    int
		pinDisabled int
	)
	err := row.Scan(&rec.UserID, &rec.Name, &rec.CardNumber, &rec.PIN, &disabled, &pinDisabled)
	if errors.Is(err, sql.ErrNoRows) {
		return store.CredentialRecord{}, store.ErrCredentialNotFound
	}
	if err != nil {
		return store.CredentialRecord{}, fmt.Errorf("FindByCardAndPIN: %w", err)
	}
	rec.Disabled = disabled == 1
	rec.PINDisabled = pinDisabled == 1
	return rec, nil
}
