package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/janus-access/janus-server/internal/janus/store"
	sqlitestore "github.com/janus-access/janus-server/internal/janus/store/sqlite"
)

func TestControllerKeyStore_InsertAndFind(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	err := ks.Insert(ctx, store.ControllerKeyRecord{
		ID:             "ctrl-1",
		ControllerName: "North Entrance",
		APIKey:         "abc123abc123abc123abc123abc12345",
		IsActive:       true,
		CreatedAt:      created,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rec, err := ks.FindActiveBySecret(ctx, "abc123abc123abc123abc123abc12345")
	if err != nil {
		t.Fatalf("FindActiveBySecret: %v", err)
	}
	if rec.ID != "ctrl-1" {
		t.Errorf("expected key_id=ctrl-1, got %q", rec.ID)
	}
	if rec.ControllerName != "North Entrance" {
		t.Errorf("expected controller_name=North Entrance, got %q", rec.ControllerName)
	}
	if !rec.IsActive {
		t.Error("expected is_active=true")
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("expected created_at=%v, got %v", created, rec.CreatedAt)
	}
}

func TestControllerKeyStore_FindUnknownSecret(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)

	_, err := ks.FindActiveBySecret(context.Background(), "nope")
	if !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

// The secret column carries a UNIQUE constraint across all rows, revoked
// included.
func TestControllerKeyStore_SecretUnique(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)
	ctx := context.Background()

	rec := store.ControllerKeyRecord{
		ID:             "ctrl-1",
		ControllerName: "A",
		APIKey:         "abc123abc123abc123abc123abc12345",
		IsActive:       true,
	}
	if err := ks.Insert(ctx, rec); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := ks.Revoke(ctx, "ctrl-1", time.Now().UTC()); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	dup := rec
	dup.ID = "ctrl-2"
	if err := ks.Insert(ctx, dup); err == nil {
		t.Fatal("expected UNIQUE violation inserting duplicate secret against a revoked key")
	}
}

func TestControllerKeyStore_RevokeHidesFromAuth(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)
	ctx := context.Background()

	if err := ks.Insert(ctx, store.ControllerKeyRecord{
		ID: "ctrl-1", ControllerName: "A",
		APIKey: "abc123abc123abc123abc123abc12345", IsActive: true,
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	revokedAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if err := ks.Revoke(ctx, "ctrl-1", revokedAt); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if _, err := ks.FindActiveBySecret(ctx, "abc123abc123abc123abc123abc12345"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after revoke, got %v", err)
	}

	// The row itself survives for audit traceability.
	recs, err := ks.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 row after revoke, got %d", len(recs))
	}
	if recs[0].IsActive {
		t.Error("expected is_active=false")
	}
	if recs[0].RevokedAt == nil || !recs[0].RevokedAt.Equal(revokedAt) {
		t.Errorf("expected revoked_at=%v, got %v", revokedAt, recs[0].RevokedAt)
	}
}

func TestControllerKeyStore_RevokeKeepsFirstTimestamp(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)
	ctx := context.Background()

	if err := ks.Insert(ctx, store.ControllerKeyRecord{
		ID: "ctrl-1", ControllerName: "A",
		APIKey: "abc123abc123abc123abc123abc12345", IsActive: true,
	}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	first := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if err := ks.Revoke(ctx, "ctrl-1", first); err != nil {
		t.Fatalf("first Revoke: %v", err)
	}
	if err := ks.Revoke(ctx, "ctrl-1", first.Add(time.Hour)); err != nil {
		t.Fatalf("second Revoke: %v", err)
	}

	recs, err := ks.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if recs[0].RevokedAt == nil || !recs[0].RevokedAt.Equal(first) {
		t.Errorf("expected original revoked_at to stick, got %v", recs[0].RevokedAt)
	}
}

func TestControllerKeyStore_RevokeUnknownID(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)

	err := ks.Revoke(context.Background(), "missing", time.Now().UTC())
	if !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestControllerKeyStore_TouchSeen(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)
	ctx := context.Background()

	seedControllerKey(t, conn, "ctrl-1", "abc123abc123abc123abc123abc12345")

	seen := time.Date(2026, 3, 3, 8, 30, 0, 0, time.UTC)
	if err := ks.TouchSeen(ctx, "ctrl-1", seen); err != nil {
		t.Fatalf("TouchSeen: %v", err)
	}

	rec, err := ks.FindActiveBySecret(ctx, "abc123abc123abc123abc123abc12345")
	if err != nil {
		t.Fatalf("FindActiveBySecret: %v", err)
	}
	if rec.LastSeenAt == nil || !rec.LastSeenAt.Equal(seen) {
		t.Errorf("expected last_seen=%v, got %v", seen, rec.LastSeenAt)
	}
}

func TestControllerKeyStore_ListNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	ks := sqlitestore.NewControllerKeyStore(conn, w)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"ctrl-a", "ctrl-b", "ctrl-c"} {
		err := ks.Insert(ctx, store.ControllerKeyRecord{
			ID: id, ControllerName: id,
			APIKey:    id + "0123456789012345678901234567",
			IsActive:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}

	recs, err := ks.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(recs))
	}
	if recs[0].ID != "ctrl-c" || recs[2].ID != "ctrl-a" {
		t.Errorf("expected newest first, got %s..%s", recs[0].ID, recs[2].ID)
	}
}
