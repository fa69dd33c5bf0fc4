package feedback

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists feedback in the feedback_entries table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table if it does not exist. Called once at
// startup; real migrations can take over later without a schema change.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS feedback_entries (
	id              UUID PRIMARY KEY,
	chart_id        TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL,
	prediction      TEXT NOT NULL,
	rating          INT  NOT NULL,
	accuracy        TEXT NOT NULL,
	actual          TEXT NOT NULL,
	correct_parts   TEXT NOT NULL DEFAULT '',
	incorrect_parts TEXT NOT NULL DEFAULT '',
	missing_parts   TEXT NOT NULL DEFAULT '',
	client_ip       TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure feedback schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, entry Entry) error {
	const q = `
INSERT INTO feedback_entries
	(id, chart_id, category, prediction, rating, accuracy, actual,
	 correct_parts, incorrect_parts, missing_parts, client_ip, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, q,
		entry.ID, entry.ChartID, entry.Category, entry.Prediction,
		entry.Rating, string(entry.Accuracy), entry.Actual,
		entry.CorrectParts, entry.IncorrectParts, entry.MissingParts,
		entry.ClientIP, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	const q = `
SELECT id, chart_id, category, prediction, rating, accuracy, actual,
       correct_parts, incorrect_parts, missing_parts, client_ip, created_at
FROM feedback_entries
ORDER BY created_at DESC
LIMIT $1`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var accuracy string
		if err := rows.Scan(
			&e.ID, &e.ChartID, &e.Category, &e.Prediction, &e.Rating,
			&accuracy, &e.Actual, &e.CorrectParts, &e.IncorrectParts,
			&e.MissingParts, &e.ClientIP, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		e.Accuracy = Accuracy(accuracy)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	const q = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE accuracy = 'accurate'),
	COUNT(*) FILTER (WHERE accuracy = 'partial'),
	COUNT(*) FILTER (WHERE accuracy = 'inaccurate'),
	COALESCE(AVG(rating), 0)
FROM feedback_entries`
	var stats Stats
	err := s.db.QueryRowContext(ctx, q).Scan(
		&stats.Total, &stats.Accurate, &stats.Partial, &stats.Inaccurate, &stats.MeanRating,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("feedback stats: %w", err)
	}
	return stats, nil
}
