package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/janus-access/janus-server/internal/db"
	"github.com/janus-access/janus-server/internal/janus/store"
)

type AccessLogStore struct {
	conn   *sql.DB
	writer *dbpkg.Worker
}

func NewAccessLogStore(conn *sql.DB, writer *dbpkg.Worker) *AccessLogStore {
	return &AccessLogStore{conn: conn, writer: writer}
}

// Insert appends one audit row. door_id is written as supplied even when no
// such door exists; only controller_id must resolve.
func (s *AccessLogStore) Insert(ctx context.Context, rec store.AccessLogRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO access_logs(card_number, pin_used, door_id, access_type, controller_id, notes, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);
`, rec.CardNumber, rec.PINUsed, rec.DoorID, rec.AccessType, rec.ControllerID, rec.Notes,
			rec.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("Insert access log: %w", err)
		}
		return nil
	})
}

func (s *AccessLogStore) ListRecent(ctx context.Context, limit int) ([]store.AccessLogRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.conn.QueryContext(ctx, `
SELECT log_id, card_number, pin_used, door_id, access_type, controller_id, notes, created_at_ms
FROM access_logs
ORDER BY created_at_ms DESC, log_id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer rows.Close()

	var out []store.AccessLogRecord
	for rows.Next() {
		var (
			rec       store.AccessLogRecord
			createdMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.CardNumber, &rec.PINUsed, &rec.DoorID,
			&rec.AccessType, &rec.ControllerID, &rec.Notes, &createdMs); err != nil {
			return nil, fmt.Errorf("ListRecent scan: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecent rows: %w", err)
	}
	return out, nil
}
