package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitcoach/internal/models"
)

// GetProfile returns the stored profile, or NOT_FOUND.
func (db *DB) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var p models.UserProfile
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, age_years, sex, weight_kg, height_cm, activity_level, fitness_goal,
		 physical_limitations, medical_conditions, dietary_preferences, updated_at
		 FROM profiles
		 WHERE user_id = $1`,
		userID).Scan(&p.UserID, &p.Body.AgeYears, &p.Body.Sex, &p.Body.WeightKg, &p.Body.HeightCm,
		&p.Body.ActivityLevel, &p.Body.FitnessGoal,
		&p.Health.PhysicalLimitations, &p.Health.MedicalConditions, &p.Health.DietaryPreferences,
		&p.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "profile")
	}
	return &p, nil
}

// SaveProfile inserts or replaces the user's profile.
func (db *DB) SaveProfile(ctx context.Context, p models.UserProfile) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO profiles (user_id, age_years, sex, weight_kg, height_cm, activity_level, fitness_goal,
		 physical_limitations, medical_conditions, dietary_preferences, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (user_id) DO UPDATE SET
			age_years = EXCLUDED.age_years,
			sex = EXCLUDED.sex,
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			activity_level = EXCLUDED.activity_level,
			fitness_goal = EXCLUDED.fitness_goal,
			physical_limitations = EXCLUDED.physical_limitations,
			medical_conditions = EXCLUDED.medical_conditions,
			dietary_preferences = EXCLUDED.dietary_preferences,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.Body.AgeYears, string(p.Body.Sex), p.Body.WeightKg, p.Body.HeightCm,
		string(p.Body.ActivityLevel), string(p.Body.FitnessGoal),
		nonNil(p.Health.PhysicalLimitations), nonNil(p.Health.MedicalConditions),
		nonNil(p.Health.DietaryPreferences), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
