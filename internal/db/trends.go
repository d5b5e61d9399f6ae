package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

// SaveTrendReport stores the report header and its ranked trends in one
// transaction and returns the new run ID.
func (db *DB) SaveTrendReport(ctx context.Context, report *types.TrendReport) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO trend_runs (id, taxonomy_version, postings_received, postings_resolved, duplicates_dropped, trending_title)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, report.TaxonomyVersion, report.PostingsReceived, report.PostingsResolved,
		report.DuplicatesDropped, report.TrendingTitle,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert trend run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, t := range report.Trends {
		batch.Queue(
			`INSERT INTO skill_trends (run_id, rank, skill, frequency, source_diversity, credibility_score)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, i+1, t.Skill, t.Frequency, t.SourceDiversity, t.CredibilityScore,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert skill trends: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit trend run: %w", err)
	}
	return id, nil
}

// GetTrendReport loads a stored report. It returns nil, nil when the run does not exist.
func (db *DB) GetTrendReport(ctx context.Context, runID uuid.UUID) (*types.TrendReport, error) {
	report := types.TrendReport{RunID: runID.String(), Trends: []types.SkillTrend{}}

	err := db.pool.QueryRow(ctx,
		`SELECT taxonomy_version, postings_received, postings_resolved, duplicates_dropped, trending_title
		 FROM trend_runs WHERE id = $1`,
		runID,
	).Scan(&report.TaxonomyVersion, &report.PostingsReceived, &report.PostingsResolved,
		&report.DuplicatesDropped, &report.TrendingTitle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trend run: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT skill, frequency, source_diversity, credibility_score
		 FROM skill_trends WHERE run_id = $1 ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get skill trends: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t types.SkillTrend
		if err := rows.Scan(&t.Skill, &t.Frequency, &t.SourceDiversity, &t.CredibilityScore); err != nil {
			return nil, fmt.Errorf("failed to scan skill trend: %w", err)
		}
		report.Trends = append(report.Trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill trends: %w", err)
	}
	return &report, nil
}

// ListTrendRuns returns the most recent runs first.
func (db *DB) ListTrendRuns(ctx context.Context, limit int) ([]TrendRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, taxonomy_version, postings_received, postings_resolved, duplicates_dropped, trending_title, created_at
		 FROM trend_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trend runs: %w", err)
	}
	defer rows.Close()

	runs := []TrendRun{}
	for rows.Next() {
		var r TrendRun
		if err := rows.Scan(&r.ID, &r.TaxonomyVersion, &r.PostingsReceived, &r.PostingsResolved,
			&r.DuplicatesDropped, &r.TrendingTitle, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trend run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
