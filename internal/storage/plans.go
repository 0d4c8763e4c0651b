package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/fitcoach/internal/models"
)

// InsertWorkoutPlan stores a generated plan. Request and plan are kept as JSONB.
func (db *DB) InsertWorkoutPlan(ctx context.Context, p models.StoredWorkoutPlan) error {
	req, err := json.Marshal(p.Request)
	if err != nil {
		return fmt.Errorf("encoding workout request: %w", err)
	}
	plan, err := json.Marshal(p.Plan)
	if err != nil {
		return fmt.Errorf("encoding workout plan: %w", err)
	}
	warnings, err := json.Marshal(nonNil(p.Warnings))
	if err != nil {
		return fmt.Errorf("encoding warnings: %w", err)
	}
	recs, err := json.Marshal(nonNil(p.Recommendations))
	if err != nil {
		return fmt.Errorf("encoding recommendations: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_plans (id, user_id, request, plan, warnings, recommendations, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.UserID, req, plan, warnings, recs, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting workout plan: %w", err)
	}
	return nil
}

// ListWorkoutPlans returns the user's most recent plans, newest first.
func (db *DB) ListWorkoutPlans(ctx context.Context, userID, limit int) ([]models.StoredWorkoutPlan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, request, plan, warnings, recommendations, created_at
		 FROM workout_plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying workout plans: %w", err)
	}
	defer rows.Close()

	var result []models.StoredWorkoutPlan
	for rows.Next() {
		p, err := scanWorkoutPlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetWorkoutPlan retrieves a single plan owned by userID, or NOT_FOUND.
func (db *DB) GetWorkoutPlan(ctx context.Context, userID int, id uuid.UUID) (*models.StoredWorkoutPlan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, request, plan, warnings, recommendations, created_at
		 FROM workout_plans
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	p, err := scanWorkoutPlan(row)
	if err != nil {
		return nil, notFound(err, "workout plan")
	}
	return &p, nil
}

func scanWorkoutPlan(row pgx.Row) (models.StoredWorkoutPlan, error) {
	var (
		p                         models.StoredWorkoutPlan
		req, plan, warnings, recs []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &req, &plan, &warnings, &recs, &p.CreatedAt); err != nil {
		return p, err
	}
	if err := json.Unmarshal(req, &p.Request); err != nil {
		return p, fmt.Errorf("decoding workout request: %w", err)
	}
	if err := json.Unmarshal(plan, &p.Plan); err != nil {
		return p, fmt.Errorf("decoding workout plan: %w", err)
	}
	if err := json.Unmarshal(warnings, &p.Warnings); err != nil {
		return p, fmt.Errorf("decoding warnings: %w", err)
	}
	if err := json.Unmarshal(recs, &p.Recommendations); err != nil {
		return p, fmt.Errorf("decoding recommendations: %w", err)
	}
	return p, nil
}

// InsertNutritionPlan stores a nutrition calculation with the input it was made from.
func (db *DB) InsertNutritionPlan(ctx context.Context, p models.StoredNutritionPlan) error {
	input, err := json.Marshal(p.Input)
	if err != nil {
		return fmt.Errorf("encoding nutrition input: %w", err)
	}
	plan, err := json.Marshal(p.Plan)
	if err != nil {
		return fmt.Errorf("encoding nutrition plan: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO nutrition_plans (id, user_id, input, plan, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.UserID, input, plan, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting nutrition plan: %w", err)
	}
	return nil
}
