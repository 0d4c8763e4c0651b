// Package engine validates caller input and composes the split selector,
// health filter, nutrition calculator and injury-risk assessor.
//
// The components themselves never fail; every error returned here is an
// apperr.ErrInvalidInput describing which field the caller got wrong.
package engine

import (
	"log/slog"
	"time"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/healthfilter"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/injury"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/nutrition"
	"github.com/claude/fitcoach/internal/split"
)

// Supported training frequency.
const (
	MinDaysPerWeek = 2
	MaxDaysPerWeek = 6
)

// Engine is safe for concurrent use.
type Engine struct {
	catalog    *healthrules.Catalog
	calculator *nutrition.Calculator
	log        *slog.Logger
	now        func() time.Time
}

// New creates an Engine over a fully loaded catalog.
func New(catalog *healthrules.Catalog, log *slog.Logger) *Engine {
	return &Engine{
		catalog:    catalog,
		calculator: nutrition.New(catalog),
		log:        log,
		now:        time.Now,
	}
}

// Catalog returns the rule catalog the engine was built with.
func (e *Engine) Catalog() *healthrules.Catalog {
	return e.catalog
}

// GenerateWorkout selects a split for req and filters it against profile.
func (e *Engine) GenerateWorkout(req models.WorkoutRequest, profile models.HealthProfile) (healthfilter.FilteredPlan, error) {
	if err := ValidateWorkoutRequest(req); err != nil {
		return healthfilter.FilteredPlan{}, err
	}

	plan := split.Select(req.Goal, req.ExperienceLevel, req.DaysPerWeek, req.Sport)
	e.log.Debug("split selected",
		"family", split.Family(req.Goal, req.DaysPerWeek, req.Sport),
		"days", len(plan.Days),
		"goal", req.Goal,
		"level", req.ExperienceLevel,
	)

	if unknown := e.catalog.Unknown(profile); len(unknown) > 0 {
		e.log.Debug("ignoring unknown health profile ids", "ids", unknown)
	}
	filtered := healthfilter.Filter(plan, profile, e.catalog)
	if filtered.Filtered {
		e.log.Debug("plan filtered",
			"removed", filtered.Counts.Removed,
			"substituted", filtered.Counts.Substituted,
			"modified", filtered.Counts.Modified,
		)
	}
	return filtered, nil
}

// CalculateNutrition returns nutrition targets for in, with health overrides
// when profile is non-nil.
func (e *Engine) CalculateNutrition(in models.PhysiologicalInput, profile *models.HealthProfile) (models.NutritionPlan, error) {
	if err := ValidatePhysiologicalInput(in); err != nil {
		return models.NutritionPlan{}, err
	}
	plan := e.calculator.Calculate(in, profile)
	if plan.HealthAdjustments != nil {
		e.log.Debug("nutrition overrides applied", "passes", plan.HealthAdjustments.AppliedOverrides)
	}
	return plan, nil
}

// AssessInjuryRisk scores usage as of now. A plannedWeeklyFrequency of zero
// skips the planned-frequency check.
func (e *Engine) AssessInjuryRisk(usage []models.MuscleUsageRecord, plannedWeeklyFrequency int) (models.InjuryRiskAssessment, error) {
	if plannedWeeklyFrequency < 0 || plannedWeeklyFrequency > 14 {
		return models.InjuryRiskAssessment{}, apperr.InvalidInput("planned_frequency", "must be between 0 and 14, got %d", plannedWeeklyFrequency)
	}
	a := injury.Assess(usage, plannedWeeklyFrequency, e.now())
	e.log.Debug("injury risk assessed",
		"muscles", len(usage),
		"flags", len(a.FlaggedMuscles),
		"risk", a.RiskLevel,
	)
	return a, nil
}

// ApplyUsageLog validates entry and folds it into the previous record for
// that muscle (nil on first use). A zero WorkedAt means now.
func (e *Engine) ApplyUsageLog(userID int, prev *models.MuscleUsageRecord, entry models.MuscleUsageLog) (models.MuscleUsageRecord, error) {
	if entry.WorkedAt.IsZero() {
		entry.WorkedAt = e.now()
	}
	if err := ValidateUsageLog(entry); err != nil {
		return models.MuscleUsageRecord{}, err
	}
	return models.NextUsageRecord(userID, prev, entry), nil
}
