package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

// SaveGapPlan stores a gap report and its roadmap and returns the new plan ID.
func (db *DB) SaveGapPlan(ctx context.Context, plan *types.GapPlan) (uuid.UUID, error) {
	reportJSON, err := json.Marshal(plan.Report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal gap report: %w", err)
	}
	roadmapJSON, err := json.Marshal(plan.Roadmap)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal roadmap: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO gap_plans (id, role, match_score, report, roadmap)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, plan.Report.Role, plan.Report.MatchScore, reportJSON, roadmapJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save gap plan: %w", err)
	}
	return id, nil
}

// GetGapPlan loads a stored plan. It returns nil, nil when the plan does not exist.
func (db *DB) GetGapPlan(ctx context.Context, planID uuid.UUID) (*types.GapPlan, error) {
	var reportJSON, roadmapJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT report, roadmap FROM gap_plans WHERE id = $1`,
		planID,
	).Scan(&reportJSON, &roadmapJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gap plan: %w", err)
	}

	plan := types.GapPlan{RunID: planID.String()}
	if err := json.Unmarshal(reportJSON, &plan.Report); err != nil {
		return nil, fmt.Errorf("failed to decode gap report: %w", err)
	}
	if err := json.Unmarshal(roadmapJSON, &plan.Roadmap); err != nil {
		return nil, fmt.Errorf("failed to decode roadmap: %w", err)
	}
	return &plan, nil
}
