package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/janus-access/janus-server/internal/janus/store"
	sqlitestore "github.com/janus-access/janus-server/internal/janus/store/sqlite"
)

func TestCredentialStore_ExactMatch(t *testing.T) {
	conn := openTestDB(t)
	seedUser(t, conn, "user-1", "Alice Smith", "1001", "4321", false, false)
	cs := sqlitestore.NewCredentialStore(conn)

	rec, err := cs.FindByCardAndPIN(context.Background(), "1001", "4321")
	if err != nil {
		t.Fatalf("FindByCardAndPIN: %v", err)
	}
	if rec.UserID != "user-1" || rec.Name != "Alice Smith" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Disabled || rec.PINDisabled {
		t.Error("expected flags clear on seeded user")
	}
}

func TestCredentialStore_NoMatch(t *testing.T) {
	conn := openTestDB(t)
	seedUser(t, conn, "user-1", "Alice", "1001", "4321", false, false)
	cs := sqlitestore.NewCredentialStore(conn)
	ctx := context.Background()

	cases := []struct{ card, pin string }{
		{"1001", "0000"},  // wrong pin
		{"2002", "4321"},  // wrong card
		{"1001", " 4321"}, // whitespace matters
	}
	for _, c := range cases {
		_, err := cs.FindByCardAndPIN(ctx, c.card, c.pin)
		if !errors.Is(err, store.ErrCredentialNotFound) {
			t.Errorf("card=%q pin=%q: expected ErrCredentialNotFound, got %v", c.card, c.pin, err)
		}
	}
}

func TestCredentialStore_CaseSensitive(t *testing.T) {
	conn := openTestDB(t)
	seedUser(t, conn, "user-1", "Alice", "AbCd", "4321", false, false)
	cs := sqlitestore.NewCredentialStore(conn)

	_, err := cs.FindByCardAndPIN(context.Background(), "abcd", "4321")
	if !errors.Is(err, store.ErrCredentialNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
}

func TestCredentialStore_FlagsSurfaced(t *testing.T) {
	conn := openTestDB(t)
	seedUser(t, conn, "user-1", "Alice", "1001", "4321", true, false)
	seedUser(t, conn, "user-2", "Bob", "2002", "8765", false, true)
	cs := sqlitestore.NewCredentialStore(conn)
	ctx := context.Background()

	rec, err := cs.FindByCardAndPIN(ctx, "1001", "4321")
	if err != nil {
		t.Fatalf("disabled user lookup: %v", err)
	}
	if !rec.Disabled {
		t.Error("expected disabled=true to be surfaced")
	}

	rec, err = cs.FindByCardAndPIN(ctx, "2002", "8765")
	if err != nil {
		t.Fatalf("pin_disabled user lookup: %v", err)
	}
	if !rec.PINDisabled {
		t.Error("expected pin_disabled=true to be surfaced")
	}
}

// A disabled user may share a card number with an enabled one (uniqueness is
// only enforced among enabled users); lookup must prefer the usable row.
func TestCredentialStore_PrefersEnabledOnSharedCard(t *testing.T) {
	conn := openTestDB(t)
	seedUser(t, conn, "user-old", "Old Holder", "1001", "4321", true, false)
	seedUser(t, conn, "user-new", "New Holder", "1001", "4321", false, false)
	cs := sqlitestore.NewCredentialStore(conn)

	rec, err := cs.FindByCardAndPIN(context.Background(), "1001", "4321")
	if err != nil {
		t.Fatalf("FindByCardAndPIN: %v", err)
	}
	if rec.UserID != "user-new" {
		t.Errorf("expected the enabled holder, got %q", rec.UserID)
	}
}

func TestCredentialStore_CardUniqueAmongEnabledOnly(t *testing.T) {
	conn := openTestDB(t)
	// Two disabled users may share a card.
	seedUser(t, conn, "user-1", "A", "1001", "1111", true, false)
	seedUser(t, conn, "user-2", "B", "1001", "2222", true, false)
	// And one enabled holder is fine.
	seedUser(t, conn, "user-3", "C", "1001", "3333", false, false)

	// A second enabled holder violates the partial unique index.
	ctx := context.Background()
	_, err := conn.ExecContext(ctx, `
INSERT INTO users(user_id, name, card_number, pin, disabled, pin_disabled, created_at_ms, updated_at_ms)
VALUES ('user-4', 'D', '1001', '4444', 0, 0, 0, 0);`)
	if err == nil {
		t.Fatal("expected unique violation for second enabled user with same card")
	}
}
