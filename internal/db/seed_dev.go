package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DevAPIKey is the fixed controller secret seeded in dev so firmware can be
// pointed at a fresh instance without first issuing a key through the admin
// API. Dev only; production keys come from the key service.
const DevAPIKey = "J4nusDevControllerKey00000000000"

// SeedDev inserts a starter door, an enabled test user and an active
// controller key. Idempotent; safe to run on every dev start.
func SeedDev(ctx context.Context, conn *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO doors(door_id, name, location, created_at_ms, updated_at_ms)
VALUES ('door_main', 'Main Door', 'Dev', ?, ?);`, now, now); err != nil {
		return fmt.Errorf("seed doors: %w", err)
	}

	if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO users(user_id, name, card_number, pin, created_at_ms, updated_at_ms)
VALUES ('user_dev', 'Dev User', '1001', '4321', ?, ?);`, now, now); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if _, err := conn.ExecContext(ctx, `
INSERT OR IGNORE INTO controller_api_keys(key_id, controller_name, api_key, is_active, created_at_ms)
VALUES ('ctrl_dev', 'Dev Controller', ?, 1, ?);`, DevAPIKey, now); err != nil {
		return fmt.Errorf("seed controller key: %w", err)
	}

	return nil
}
