package repository

import (
	"database/sql"
	"fmt"

	"scentbase/database"
	"scentbase/models"
)

// RunRepository records the outcome of catalog parse runs.
type RunRepository struct{}

func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

// SaveRun persists the stats of a finished (or aborted) run.
func (r *RunRepository) SaveRun(stats *models.RunStats) error {
	query := `
		INSERT INTO parse_runs (started_at, finished_at, pages, listings, duplicates, fetched, skipped, upserted, created, failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := database.DB.Exec(query,
		stats.StartedAt, stats.FinishedAt, stats.Pages, stats.Listings, stats.Duplicates,
		stats.Fetched, stats.Skipped, stats.Upserted, stats.Created, stats.Failed,
	)
	if err != nil {
		return fmt.Errorf("failed to save parse run: %v", err)
	}
	return nil
}

// GetLatestRun returns the most recent run, or nil when none exist yet.
func (r *RunRepository) GetLatestRun() (*models.RunStats, error) {
	query := `
		SELECT started_at, finished_at, pages, listings, duplicates, fetched, skipped, upserted, created, failed
		FROM parse_runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var stats models.RunStats
	var finishedAt sql.NullTime
	err := database.DB.QueryRow(query).Scan(
		&stats.StartedAt, &finishedAt, &stats.Pages, &stats.Listings, &stats.Duplicates,
		&stats.Fetched, &stats.Skipped, &stats.Upserted, &stats.Created, &stats.Failed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest parse run: %v", err)
	}

	if finishedAt.Valid {
		stats.FinishedAt = finishedAt.Time
	}
	return &stats, nil
}
