package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/models"
)

// GetProfile returns the stored profile, or NOT_FOUND.
func (s *Store) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var body, health, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT body, health, updated_at FROM profiles WHERE user_id = ?`, userID,
	).Scan(&body, &health, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("profile")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	p := models.UserProfile{UserID: userID}
	if err := json.Unmarshal([]byte(body), &p.Body); err != nil {
		return nil, fmt.Errorf("decoding profile body: %w", err)
	}
	if err := json.Unmarshal([]byte(health), &p.Health); err != nil {
		return nil, fmt.Errorf("decoding health profile: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

// SaveProfile inserts or replaces the user's profile.
func (s *Store) SaveProfile(ctx context.Context, p models.UserProfile) error {
	body, err := json.Marshal(p.Body)
	if err != nil {
		return fmt.Errorf("encoding profile body: %w", err)
	}
	health, err := json.Marshal(p.Health)
	if err != nil {
		return fmt.Errorf("encoding health profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profiles (user_id, body, health, updated_at) VALUES (?, ?, ?, ?)`,
		p.UserID, string(body), string(health), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

const muscleUsageColumns = `user_id, muscle_id, muscle_name, last_worked_at, weekly_frequency,
	intensity, required_recovery_hours, is_marked_recovered`

// GetMuscleUsage returns the usage record for one muscle, or nil if the
// muscle has never been logged.
func (s *Store) GetMuscleUsage(ctx context.Context, userID int, muscleID string) (*models.MuscleUsageRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+muscleUsageColumns+` FROM muscle_usage WHERE user_id = ? AND muscle_id = ?`,
		userID, muscleID)
	rec, err := scanMuscleUsage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying muscle usage: %w", err)
	}
	return &rec, nil
}

// ListMuscleUsage returns every usage record for the user, ordered by muscle.
func (s *Store) ListMuscleUsage(ctx context.Context, userID int) ([]models.MuscleUsageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+muscleUsageColumns+` FROM muscle_usage WHERE user_id = ? ORDER BY muscle_id`,
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
func (s *Store) UpsertMuscleUsage(ctx context.Context, rec models.MuscleUsageRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO muscle_usage (`+muscleUsageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, muscle_id) DO UPDATE SET
			muscle_name = excluded.muscle_name,
			last_worked_at = excluded.last_worked_at,
			weekly_frequency = excluded.weekly_frequency,
			intensity = excluded.intensity,
			required_recovery_hours = excluded.required_recovery_hours,
			is_marked_recovered = excluded.is_marked_recovered`,
		rec.UserID, rec.MuscleID, rec.MuscleName, formatTime(rec.LastWorkedAt), rec.WeeklyFrequency,
		rec.Intensity, rec.RequiredRecoveryHours, boolToInt(rec.IsMarkedRecovered))
	if err != nil {
		return fmt.Errorf("upserting muscle usage: %w", err)
	}
	return nil
}

// MarkMuscleRecovered sets the recovered flag, or returns NOT_FOUND.
func (s *Store) MarkMuscleRecovered(ctx context.Context, userID int, muscleID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE muscle_usage SET is_marked_recovered = 1 WHERE user_id = ? AND muscle_id = ?`,
		userID, muscleID)
	if err != nil {
		return fmt.Errorf("marking muscle recovered: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("muscle " + muscleID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMuscleUsage(row scanner) (models.MuscleUsageRecord, error) {
	var (
		r         models.MuscleUsageRecord
		last      string
		recovered int
	)
	err := row.Scan(&r.UserID, &r.MuscleID, &r.MuscleName, &last, &r.WeeklyFrequency,
		&r.Intensity, &r.RequiredRecoveryHours, &recovered)
	if err != nil {
		return r, err
	}
	r.IsMarkedRecovered = recovered != 0
	r.LastWorkedAt, err = parseTime(last)
	return r, err
}

// InsertWorkoutPlan stores a generated plan as a JSON document.
func (s *Store) InsertWorkoutPlan(ctx context.Context, p models.StoredWorkoutPlan) error {
	return s.insertDocument(ctx, "workout_plans", p.ID, p.UserID, p, formatTime(p.CreatedAt))
}

// ListWorkoutPlans returns the user's most recent plans, newest first.
func (s *Store) ListWorkoutPlans(ctx context.Context, userID, limit int) ([]models.StoredWorkoutPlan, error) {
	var result []models.StoredWorkoutPlan
	err := s.listDocuments(ctx, "workout_plans", userID, limit, func(payload []byte) error {
		var p models.StoredWorkoutPlan
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		result = append(result, p)
		return nil
	})
	return result, err
}

// GetWorkoutPlan retrieves a single plan owned by userID, or NOT_FOUND.
func (s *Store) GetWorkoutPlan(ctx context.Context, userID int, id uuid.UUID) (*models.StoredWorkoutPlan, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM workout_plans WHERE id = ? AND user_id = ?`, id.String(), userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("workout plan")
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout plan: %w", err)
	}
	var p models.StoredWorkoutPlan
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decoding workout plan: %w", err)
	}
	return &p, nil
}

// InsertNutritionPlan stores a nutrition calculation as a JSON document.
func (s *Store) InsertNutritionPlan(ctx context.Context, p models.StoredNutritionPlan) error {
	return s.insertDocument(ctx, "nutrition_plans", p.ID, p.UserID, p, formatTime(p.CreatedAt))
}

// InsertInjuryReport stores an assessment as a JSON document.
func (s *Store) InsertInjuryReport(ctx context.Context, r models.InjuryReport) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding injury report: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO injury_reports (id, user_id, risk_level, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID.String(), r.UserID, string(r.Assessment.RiskLevel), string(payload), formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting injury report: %w", err)
	}
	return nil
}

// ListInjuryReports returns the user's most recent reports, newest first.
func (s *Store) ListInjuryReports(ctx context.Context, userID, limit int) ([]models.InjuryReport, error) {
	var result []models.InjuryReport
	err := s.listDocuments(ctx, "injury_reports", userID, limit, func(payload []byte) error {
		var r models.InjuryReport
		if err := json.Unmarshal(payload, &r); err != nil {
			return err
		}
		result = append(result, r)
		return nil
	})
	return result, err
}

// insertDocument and listDocuments serve the tables shaped
// (id, user_id, payload, created_at). table is always a constant.
func (s *Store) insertDocument(ctx context.Context, table string, id uuid.UUID, userID int, doc any, createdAt string) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s row: %w", table, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, user_id, payload, created_at) VALUES (?, ?, ?, ?)`,
		id.String(), userID, string(payload), createdAt)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	return nil
}

func (s *Store) listDocuments(ctx context.Context, table string, userID, limit int, fn func([]byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM `+table+` WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		if err := fn([]byte(payload)); err != nil {
			return fmt.Errorf("decoding %s: %w", table, err)
		}
	}
	return rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
