package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/janus-access/janus-server/internal/db"
)

// openTestDB returns an in-memory SQLite connection with the same PRAGMAs
// and schema as production. The connection is closed automatically when the
// test finishes.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each call gets a unique in-memory database. The shared-cache URI
	// keeps the database alive for the lifetime of the connection pool.
	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		t.Name(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}

	// Match production: single connection for SQLite safety.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}

	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestWriter returns a db.Worker backed by conn, closed automatically
// when the test finishes.
func newTestWriter(t *testing.T, conn *sql.DB) *db.Worker {
	t.Helper()

	w := db.NewWorker(conn)
	t.Cleanup(func() { w.Close() })
	return w
}

// seedControllerKey inserts an active key row directly, standing in for the
// key service.
func seedControllerKey(t *testing.T, conn *sql.DB, id, secret string) {
	t.Helper()
	nowMs := time.Now().UTC().UnixMilli()
	_, err := conn.ExecContext(context.Background(), `
INSERT INTO controller_api_keys(key_id, controller_name, api_key, is_active, created_at_ms)
VALUES (?, ?, ?, 1, ?);`, id, "Controller "+id, secret, nowMs)
	if err != nil {
		t.Fatalf("seedControllerKey(%s): %v", id, err)
	}
}

// seedUser inserts a user row directly, standing in for the admin dashboard.
func seedUser(t *testing.T, conn *sql.DB, id, name, card, pin string, disabled, pinDisabled bool) {
	t.Helper()
	nowMs := time.Now().UTC().UnixMilli()
	toInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	_, err := conn.ExecContext(context.Background(), `
INSERT INTO users(user_id, name, card_number, pin, disabled, pin_disabled, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`, id, name, card, pin, toInt(disabled), toInt(pinDisabled), nowMs, nowMs)
	if err != nil {
		t.Fatalf("seedUser(%s): %v", id, err)
	}
}
