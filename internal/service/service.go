// Package service ties the engine to a store: it looks up the caller's
// profile and usage history, runs the engine, and persists the results.
// The HTTP server, the MCP server and the offline CLI all go through it.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/engine"
	"github.com/claude/fitcoach/internal/healthfilter"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/storage"
)

// Store is the persistence surface. *storage.DB (PostgreSQL) and
// *localstore.Store (SQLite) both satisfy it. Missing profiles and plans are
// reported as apperr NOT_FOUND; a muscle that was never logged is (nil, nil).
type Store interface {
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, p models.UserProfile) error

	GetMuscleUsage(ctx context.Context, userID int, muscleID string) (*models.MuscleUsageRecord, error)
	ListMuscleUsage(ctx context.Context, userID int) ([]models.MuscleUsageRecord, error)
	UpsertMuscleUsage(ctx context.Context, rec models.MuscleUsageRecord) error
	MarkMuscleRecovered(ctx context.Context, userID int, muscleID string) error

	InsertWorkoutPlan(ctx context.Context, p models.StoredWorkoutPlan) error
	ListWorkoutPlans(ctx context.Context, userID, limit int) ([]models.StoredWorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, userID int, id uuid.UUID) (*models.StoredWorkoutPlan, error)
	InsertNutritionPlan(ctx context.Context, p models.StoredNutritionPlan) error

	InsertInjuryReport(ctx context.Context, r models.InjuryReport) error
	ListInjuryReports(ctx context.Context, userID, limit int) ([]models.InjuryReport, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// List limits: DefaultListLimit applies when the caller gives none, larger
// requests are clamped to MaxListLimit.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service is safe for concurrent use if its Store is.
type Service struct {
	store          Store
	engine         *engine.Engine
	log            *slog.Logger
	plannedDefault int
	now            func() time.Time
}

// New creates a Service. plannedDefault is the planned weekly frequency used
// for injury-risk assessment when the caller passes none (0 disables the check).
func New(store Store, eng *engine.Engine, plannedDefault int, log *slog.Logger) *Service {
	return &Service{
		store:          store,
		engine:         eng,
		log:            log,
		plannedDefault: plannedDefault,
		now:            time.Now,
	}
}

// WorkoutResult is a freshly generated and persisted plan.
type WorkoutResult struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	healthfilter.FilteredPlan
}

// NutritionRequest selects what to calculate nutrition for. A nil Input
// means the stored profile's body measurements; a nil Health means the
// stored health profile (or none, if the user has no profile).
type NutritionRequest struct {
	Input  *models.PhysiologicalInput `json:"input,omitempty"`
	Health *models.HealthProfile      `json:"health,omitempty"`
}

// NutritionResult is a persisted nutrition calculation.
type NutritionResult struct {
	ID        uuid.UUID                 `json:"id"`
	CreatedAt time.Time                 `json:"created_at"`
	Input     models.PhysiologicalInput `json:"input"`
	models.NutritionPlan
}

// Profile returns the user's stored profile, or NOT_FOUND.
func (s *Service) Profile(ctx context.Context, userID int) (*models.UserProfile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "loading profile")
	}
	return p, nil
}

// SaveProfile validates and stores the user's profile. Body measurements may
// be left empty; they are only needed for profile-based nutrition.
func (s *Service) SaveProfile(ctx context.Context, userID int, body models.PhysiologicalInput, health models.HealthProfile) (*models.UserProfile, error) {
	if body != (models.PhysiologicalInput{}) {
		if err := engine.ValidatePhysiologicalInput(body); err != nil {
			return nil, err
		}
	}
	p := models.UserProfile{
		UserID:    userID,
		Body:      body,
		Health:    health,
		UpdatedAt: s.now().UTC(),
	}
	if unknown := s.engine.Catalog().Unknown(health); len(unknown) > 0 {
		s.log.Warn("profile references unknown health rule ids", "user_id", userID, "ids", unknown)
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, storeErr(err, "saving profile")
	}
	return &p, nil
}

// healthProfile returns the stored health profile, or an empty one.
func (s *Service) healthProfile(ctx context.Context, userID int) (models.HealthProfile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.HealthProfile{}, nil
	}
	if err != nil {
		return models.HealthProfile{}, storeErr(err, "loading profile")
	}
	return p.Health, nil
}

// GenerateWorkout builds a plan for req, filters it against the user's stored
// health profile and persists it.
func (s *Service) GenerateWorkout(ctx context.Context, userID int, req models.WorkoutRequest) (*WorkoutResult, error) {
	if err := engine.ValidateWorkoutRequest(req); err != nil {
		return nil, err
	}
	health, err := s.healthProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered, err := s.engine.GenerateWorkout(req, health)
	if err != nil {
		return nil, err
	}

	res := &WorkoutResult{ID: uuid.New(), CreatedAt: s.now().UTC(), FilteredPlan: filtered}
	stored := models.StoredWorkoutPlan{
		ID:              res.ID,
		UserID:          userID,
		Request:         req,
		Plan:            filtered.Plan,
		Warnings:        filtered.Warnings,
		Recommendations: filtered.Recommendations,
		CreatedAt:       res.CreatedAt,
	}
	if err := s.store.InsertWorkoutPlan(ctx, stored); err != nil {
		return nil, storeErr(err, "saving workout plan")
	}
	s.log.Info("workout plan generated", "user_id", userID, "plan", filtered.Plan.Name, "id", res.ID)
	return res, nil
}

// WorkoutPlans lists the user's stored plans, newest first.
func (s *Service) WorkoutPlans(ctx context.Context, userID, limit int) ([]models.StoredWorkoutPlan, error) {
	plans, err := s.store.ListWorkoutPlans(ctx, userID, listLimit(limit))
	if err != nil {
		return nil, storeErr(err, "listing workout plans")
	}
	return plans, nil
}

// WorkoutPlan returns one stored plan, or NOT_FOUND.
func (s *Service) WorkoutPlan(ctx context.Context, userID int, id uuid.UUID) (*models.StoredWorkoutPlan, error) {
	p, err := s.store.GetWorkoutPlan(ctx, userID, id)
	if err != nil {
		return nil, storeErr(err, "loading workout plan")
	}
	return p, nil
}

// CalculateNutrition computes and persists nutrition targets. Missing parts of
// req are filled from the stored profile.
func (s *Service) CalculateNutrition(ctx context.Context, userID int, req NutritionRequest) (*NutritionResult, error) {
	var stored *models.UserProfile
	if req.Input == nil || req.Health == nil {
		p, err := s.store.GetProfile(ctx, userID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
		case err != nil:
			return nil, storeErr(err, "loading profile")
		default:
			stored = p
		}
	}

	var in models.PhysiologicalInput
	switch {
	case req.Input != nil:
		in = *req.Input
	case stored != nil && stored.Body != (models.PhysiologicalInput{}):
		in = stored.Body
	default:
		return nil, apperr.InvalidInput("input", "no body measurements given and none stored in the profile")
	}

	health := req.Health
	if health == nil && stored != nil {
		health = &stored.Health
	}

	plan, err := s.engine.CalculateNutrition(in, health)
	if err != nil {
		return nil, err
	}

	res := &NutritionResult{ID: uuid.New(), CreatedAt: s.now().UTC(), Input: in, NutritionPlan: plan}
	err = s.store.InsertNutritionPlan(ctx, models.StoredNutritionPlan{
		ID:        res.ID,
		UserID:    userID,
		Input:     in,
		Plan:      plan,
		CreatedAt: res.CreatedAt,
	})
	if err != nil {
		return nil, storeErr(err, "saving nutrition plan")
	}
	return res, nil
}

// LogMuscleUsage folds entry into the user's usage record for that muscle.
func (s *Service) LogMuscleUsage(ctx context.Context, userID int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error) {
	if err := engine.ValidateUsageLog(entry); err != nil {
		return nil, err
	}
	prev, err := s.store.GetMuscleUsage(ctx, userID, entry.MuscleID)
	if err != nil {
		return nil, storeErr(err, "loading muscle usage")
	}
	rec, err := s.engine.ApplyUsageLog(userID, prev, entry)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertMuscleUsage(ctx, rec); err != nil {
		return nil, storeErr(err, "saving muscle usage")
	}
	return &rec, nil
}

// MuscleUsage lists the user's usage records.
func (s *Service) MuscleUsage(ctx context.Context, userID int) ([]models.MuscleUsageRecord, error) {
	usage, err := s.store.ListMuscleUsage(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "listing muscle usage")
	}
	return usage, nil
}

// MarkRecovered flags a muscle as recovered ahead of its recovery window.
func (s *Service) MarkRecovered(ctx context.Context, userID int, muscleID string) error {
	if err := s.store.MarkMuscleRecovered(ctx, userID, muscleID); err != nil {
		return storeErr(err, "marking muscle recovered")
	}
	return nil
}

// AssessInjuryRisk scores the user's usage history and persists the report.
// A negative planned frequency means the configured default.
func (s *Service) AssessInjuryRisk(ctx context.Context, userID, planned int) (*models.InjuryReport, error) {
	if planned < 0 {
		planned = s.plannedDefault
	}
	usage, err := s.store.ListMuscleUsage(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "listing muscle usage")
	}
	a, err := s.engine.AssessInjuryRisk(usage, planned)
	if err != nil {
		return nil, err
	}

	report := models.InjuryReport{
		ID:         uuid.New(),
		UserID:     userID,
		Assessment: a,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.InsertInjuryReport(ctx, report); err != nil {
		return nil, storeErr(err, "saving injury report")
	}
	if a.NeedsRestDay {
		s.log.Info("rest day recommended", "user_id", userID, "risk", a.RiskLevel)
	}
	return &report, nil
}

// InjuryReports lists the user's stored reports, newest first.
func (s *Service) InjuryReports(ctx context.Context, userID, limit int) ([]models.InjuryReport, error) {
	reports, err := s.store.ListInjuryReports(ctx, userID, listLimit(limit))
	if err != nil {
		return nil, storeErr(err, "listing injury reports")
	}
	return reports, nil
}

// HealthRules summarizes the loaded rule catalog.
func (s *Service) HealthRules(ctx context.Context) (*healthrules.Summary, error) {
	sum := s.engine.Catalog().Summary()
	return &sum, nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// storeErr passes apperr errors through and wraps everything else as STORAGE_ERROR.
func storeErr(err error, msg string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Wrap(err, apperr.CodeStorage, msg)
}
