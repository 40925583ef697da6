// Package history keeps a journal of send attempts in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one send attempt
type Record struct {
	CreatedAt time.Time
	ID        string
	ChatID    string
	Webhook   string
	Detail    string
	OK        bool
}

// Journal appends and lists send records
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a journal on a migrated database
func New(db *sql.DB) *Journal {
	return &Journal{db: db, now: time.Now}
}

// Record stores rec, filling in ID and CreatedAt when unset
func (j *Journal) Record(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = j.now()
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO sends (id, chat_id, webhook, ok, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.ChatID, rec.Webhook, rec.OK, rec.Detail, rec.CreatedAt.Unix())
	if err != nil {
		return rec, fmt.Errorf("failed to record send: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := j.db.QueryContext(ctx,
		"SELECT id, chat_id, webhook, ok, detail, created_at FROM sends ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query send history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var created int64
		if err := rows.Scan(&rec.ID, &rec.ChatID, &rec.Webhook, &rec.OK, &rec.Detail, &created); err != nil {
			return nil, fmt.Errorf("failed to scan send record: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read send history: %w", err)
	}

	return records, nil
}
