package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bogaguard/bogaguard/pkg/engine"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS threat_history (
	id          uuid PRIMARY KEY,
	input       text NOT NULL,
	score       double precision NOT NULL,
	reasons     text[] NOT NULL DEFAULT '{}',
	recorded_at timestamptz NOT NULL
)`

// HistoryArchive stores learning history records in Postgres. Snapshots
// carry only the newest records, so appends are idempotent on record ID.
type HistoryArchive struct {
	pool *pgxpool.Pool
}

// NewHistoryArchive connects to Postgres and ensures the schema exists.
func NewHistoryArchive(ctx context.Context, dsn string) (*HistoryArchive, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, historySchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &HistoryArchive{pool: pool}, nil
}

// Append inserts records, skipping IDs already archived.
func (a *HistoryArchive) Append(ctx context.Context, records []engine.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO threat_history (id, input, score, reasons, recorded_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			rec.ID, rec.Input, rec.Score, rec.Reasons, rec.Timestamp,
		)
	}

	results := a.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("archive history: %w", err)
		}
	}
	return nil
}

// Recent returns the newest archived records, newest first.
func (a *HistoryArchive) Recent(ctx context.Context, limit int) ([]engine.HistoryRecord, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT id, input, score, reasons, recorded_at
		 FROM threat_history ORDER BY recorded_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []engine.HistoryRecord
	for rows.Next() {
		var rec engine.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.Input, &rec.Score, &rec.Reasons, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the connection pool.
func (a *HistoryArchive) Close() {
	a.pool.Close()
}
