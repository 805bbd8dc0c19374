package database

import (
	"context"
	"fmt"

	"github.com/kdimtricp/plotshazam/internal/models"
)

// HistoryRepository persists completed identifications. Fallback results
// are never recorded here; only answers the provider actually produced.
type HistoryRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Insert(ctx context.Context, entry *models.HistoryEntry) error {
	query := `
		INSERT INTO identifications (id, plot, movie_name, release_date, rationale, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if r.db.dbType == "postgres" {
		query = `
		INSERT INTO identifications (id, plot, movie_name, release_date, rationale, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		entry.ID,
		entry.Plot,
		entry.Result.MovieName,
		entry.Result.ReleaseDate,
		entry.Result.Rationale,
		entry.Result.Confidence,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert identification: %w", err)
	}

	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, plot, movie_name, release_date, rationale, confidence, created_at
		FROM identifications
		ORDER BY created_at DESC
		LIMIT ?`
	if r.db.dbType == "postgres" {
		query = `
		SELECT id, plot, movie_name, release_date, rationale, confidence, created_at
		FROM identifications
		ORDER BY created_at DESC
		LIMIT $1`
	}

	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list identifications: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.Plot,
			&e.Result.MovieName,
			&e.Result.ReleaseDate,
			&e.Result.Rationale,
			&e.Result.Confidence,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan identification: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// Count returns the total number of recorded identifications.
func (r *HistoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM identifications").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count identifications: %w", err)
	}
	return count, nil
}
