package scores

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const schema = `
CREATE TABLE IF NOT EXISTS scavenger_scores (
	id SERIAL PRIMARY KEY,
	player TEXT NOT NULL,
	days INTEGER NOT NULL,
	turns BIGINT NOT NULL,
	seed BIGINT NOT NULL DEFAULT 0,
	ended_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS scavenger_scores_days ON scavenger_scores (days DESC);`

// PostgresStore keeps entries in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and creates the table if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scavenger_scores (player, days, turns, seed, ended_at) VALUES ($1, $2, $3, $4, $5)`,
		e.Player, e.Days, int64(e.Turns), e.Seed, e.EndedAt)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *PostgresStore) Best(ctx context.Context) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(days) FROM scavenger_scores`).Scan(&best); err != nil {
		return 0, fmt.Errorf("query best: %w", err)
	}
	return int(best.Int64), nil
}

func (s *PostgresStore) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, days, turns, seed, ended_at FROM scavenger_scores ORDER BY days DESC, id ASC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query top: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var turns int64
		if err := rows.Scan(&e.Player, &e.Days, &turns, &e.Seed, &e.EndedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.Turns = uint64(turns)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
