package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/models"
)

const muscleUsageColumns = `user_id, muscle_id, muscle_name, last_worked_at, weekly_frequency,
		 intensity, required_recovery_hours, is_marked_recovered`

// GetMuscleUsage returns the usage record for one muscle, or nil if the
// muscle has never been logged.
func (db *DB) GetMuscleUsage(ctx context.Context, userID int, muscleID string) (*models.MuscleUsageRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+muscleUsageColumns+`
		 FROM muscle_usage
		 WHERE user_id = $1 AND muscle_id = $2`,
		userID, muscleID)

	rec, err := scanMuscleUsage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying muscle usage: %w", err)
	}
	return &rec, nil
}

// ListMuscleUsage returns every usage record for the user, ordered by muscle.
func (db *DB) ListMuscleUsage(ctx context.Context, userID int) ([]models.MuscleUsageRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+muscleUsageColumns+`
		 FROM muscle_usage
		 WHERE user_id = $1
		 ORDER BY muscle_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying muscle usage: %w", err)
	}
	defer rows.Close()

	var result []models.MuscleUsageRecord
	for rows.Next() {
		rec, err := scanMuscleUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning muscle usage: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// UpsertMuscleUsage writes rec over any existing record for the same muscle.
func (db *DB) UpsertMuscleUsage(ctx context.Context, rec models.MuscleUsageRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO muscle_usage (`+muscleUsageColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, muscle_id) DO UPDATE SET
			muscle_name = EXCLUDED.muscle_name,
			last_worked_at = EXCLUDED.last_worked_at,
			weekly_frequency = EXCLUDED.weekly_frequency,
			intensity = EXCLUDED.intensity,
			required_recovery_hours = EXCLUDED.required_recovery_hours,
			is_marked_recovered = EXCLUDED.is_marked_recovered`,
		rec.UserID, rec.MuscleID, rec.MuscleName, rec.LastWorkedAt, rec.WeeklyFrequency,
		rec.Intensity, rec.RequiredRecoveryHours, rec.IsMarkedRecovered)
	if err != nil {
		return fmt.Errorf("upserting muscle usage: %w", err)
	}
	return nil
}

// MarkMuscleRecovered sets the recovered flag. The flag is cleared again by
// the next log of that muscle.
func (db *DB) MarkMuscleRecovered(ctx context.Context, userID int, muscleID string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE muscle_usage SET is_marked_recovered = TRUE
		 WHERE user_id = $1 AND muscle_id = $2`,
		userID, muscleID)
	if err != nil {
		return fmt.Errorf("marking muscle recovered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("muscle " + muscleID)
	}
	return nil
}

func scanMuscleUsage(row pgx.Row) (models.MuscleUsageRecord, error) {
	var r models.MuscleUsageRecord
	err := row.Scan(&r.UserID, &r.MuscleID, &r.MuscleName, &r.LastWorkedAt, &r.WeeklyFrequency,
		&r.Intensity, &r.RequiredRecoveryHours, &r.IsMarkedRecovered)
	return r, err
}
