package engine

import (
	"strings"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/models"
)

// ValidateWorkoutRequest checks the plan generation parameters.
func ValidateWorkoutRequest(req models.WorkoutRequest) error {
	if !req.Goal.Valid() {
		return apperr.InvalidInput("goal", "unknown goal %q", req.Goal)
	}
	if !req.ExperienceLevel.Valid() {
		return apperr.InvalidInput("experience_level", "unknown experience level %q", req.ExperienceLevel)
	}
	if req.DaysPerWeek < MinDaysPerWeek || req.DaysPerWeek > MaxDaysPerWeek {
		return apperr.InvalidInput("days_per_week", "must be between %d and %d, got %d",
			MinDaysPerWeek, MaxDaysPerWeek, req.DaysPerWeek)
	}
	return nil
}

// ValidatePhysiologicalInput checks that every measurement is positive and
// every enum is known. The calculator itself does not check.
func ValidatePhysiologicalInput(in models.PhysiologicalInput) error {
	switch {
	case in.AgeYears <= 0:
		return apperr.InvalidInput("age_years", "must be positive, got %d", in.AgeYears)
	case in.WeightKg <= 0:
		return apperr.InvalidInput("weight_kg", "must be positive")
	case in.HeightCm <= 0:
		return apperr.InvalidInput("height_cm", "must be positive")
	case !in.Sex.Valid():
		return apperr.InvalidInput("sex", "unknown sex %q", in.Sex)
	case !in.ActivityLevel.Valid():
		return apperr.InvalidInput("activity_level", "unknown activity level %q", in.ActivityLevel)
	case !in.FitnessGoal.Valid():
		return apperr.InvalidInput("fitness_goal", "unknown goal %q", in.FitnessGoal)
	}
	return nil
}

// ValidateUsageLog checks a single muscle usage event.
func ValidateUsageLog(entry models.MuscleUsageLog) error {
	switch {
	case strings.TrimSpace(entry.MuscleID) == "":
		return apperr.InvalidInput("muscle_id", "is required")
	case entry.Intensity < 1 || entry.Intensity > 10:
		return apperr.InvalidInput("intensity", "must be between 1 and 10, got %d", entry.Intensity)
	case entry.RequiredRecoveryHours < 0:
		return apperr.InvalidInput("required_recovery_hours", "must not be negative")
	}
	return nil
}
