package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/janus-access/janus-server/internal/db"
	"github.com/janus-access/janus-server/internal/janus/store"
)

type ControllerKeyStore struct {
	conn   *sql.DB
	writer *dbpkg.Worker
}

func NewControllerKeyStore(conn *sql.DB, writer *dbpkg.Worker) *ControllerKeyStore {
	return &ControllerKeyStore{conn: conn, writer: writer}
}

func (s *ControllerKeyStore) Insert(ctx context.Context, rec store.ControllerKeyRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var active int
	if rec.IsActive {
		active = 1
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO controller_api_keys(key_id, controller_name, api_key, is_active, created_at_ms)
VALUES (?, ?, ?, ?, ?);
`, rec.ID, rec.ControllerName, rec.APIKey, active, rec.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("Insert controller key: %w", err)
		}
		return nil
	})
}

func (s *ControllerKeyStore) FindActiveBySecret(ctx context.Context, secret string) (store.ControllerKeyRecord, error) {
	row := s.conn.QueryRowContext(ctx, `
SELECT key_id, controller_name, api_key, is_active, created_at_ms, revoked_at_ms, last_seen_at_ms
FROM controller_api_keys
WHERE api_key = ? AND is_active = 1;
`, secret)

	rec, err := scanKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ControllerKeyRecord{}, store.ErrKeyNotFound
	}
	if err != nil {
		return store.ControllerKeyRecord{}, fmt.Errorf("FindActiveBySecret: %w", err)
	}
	return rec, nil
}

func (s *ControllerKeyStore) Revoke(ctx context.Context, id string, at time.Time) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// One-way: never clears revoked_at_ms once set, and re-revoking an
		// already-revoked key keeps the original timestamp.
		res, err := tx.ExecContext(ctx, `
UPDATE controller_api_keys
SET is_active = 0,
    revoked_at_ms = COALESCE(revoked_at_ms, ?)
WHERE key_id = ?;
`, at.UTC().UnixMilli(), id)
		if err != nil {
			return fmt.Errorf("Revoke: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return store.ErrKeyNotFound
		}
		return nil
	})
}

func (s *ControllerKeyStore) TouchSeen(ctx context.Context, id string, at time.Time) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
UPDATE controller_api_keys
SET last_seen_at_ms = ?
WHERE key_id = ?;
`, at.UTC().UnixMilli(), id); err != nil {
			return fmt.Errorf("TouchSeen: %w", err)
		}
		return nil
	})
}

func (s *ControllerKeyStore) List(ctx context.Context) ([]store.ControllerKeyRecord, error) {
	rows, err := s.conn.QueryContext(ctx, `
SELECT key_id, controller_name, api_key, is_active, created_at_ms, revoked_at_ms, last_seen_at_ms
FROM controller_api_keys
ORDER BY created_at_ms DESC, key_id;
`)
	if err != nil {
		return nil, fmt.Errorf("List keys: %w", err)
	}
	defer rows.Close()

	var out []store.ControllerKeyRecord
	for rows.Next() {
		rec, err := scanKey(rows)
		if err != nil {
			return nil, fmt.Errorf("List keys scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List keys rows: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKey(r rowScanner) (store.ControllerKeyRecord, error) {
	var (
		rec       store.ControllerKeyRecord
		active    int
		createdMs int64
		revokedMs sql.NullInt64
		seenMs    sql.NullInt64
	)
	if err := r.Scan(&rec.ID, &rec.ControllerName, &rec.APIKey, &active, &createdMs, &revokedMs, &seenMs); err != nil {
		return store.ControllerKeyRecord{}, err
	}
	rec.IsActive = active == 1
	rec.CreatedAt = time.UnixMilli(createdMs).UTC()
	if revokedMs.Valid {
		t := time.UnixMilli(revokedMs.Int64).UTC()
		rec.RevokedAt = &t
	}
	if seenMs.Valid {
		t := time.UnixMilli(seenMs.Int64).UTC()
		rec.LastSeenAt = &t
	}
	return rec, nil
}
