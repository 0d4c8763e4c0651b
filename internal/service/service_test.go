package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/engine"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/localstore"
	"github.com/claude/fitcoach/internal/models"
)

// Compile-time check: the SQLite store satisfies Store.
var _ Store = (*localstore.Store)(nil)

var referenceBody = models.PhysiologicalInput{
	AgeYears:      25,
	Sex:           models.SexMale,
	WeightKg:      75,
	HeightCm:      180,
	ActivityLevel: models.ActivityModerate,
	FitnessGoal:   models.GoalMuscleGain,
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, engine.New(healthrules.Default(), log), 3, log)
}

func TestSaveProfileValidatesBody(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	bad := referenceBody
	bad.WeightKg = 0
	if _, err := s.SaveProfile(ctx, 1, bad, models.HealthProfile{}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("SaveProfile with zero weight: err = %v, want INVALID_INPUT", err)
	}

	// Health-only profiles are allowed.
	health := models.HealthProfile{PhysicalLimitations: []string{"shoulder_injury"}}
	if _, err := s.SaveProfile(ctx, 1, models.PhysiologicalInput{}, health); err != nil {
		t.Fatalf("SaveProfile health only: %v", err)
	}
	p, err := s.Profile(ctx, 1)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(p.Health.PhysicalLimitations) != 1 {
		t.Errorf("PhysicalLimitations = %v", p.Health.PhysicalLimitations)
	}
}

func TestProfileNotFound(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Profile(context.Background(), 9); apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Errorf("Profile: err = %v, want NOT_FOUND", err)
	}
}

func TestGenerateWorkoutUsesStoredProfile(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	req := models.WorkoutRequest{Goal: models.GoalMuscleGain, ExperienceLevel: models.LevelBeginner, DaysPerWeek: 3}

	plain, err := s.GenerateWorkout(ctx, 1, req)
	if err != nil {
		t.Fatalf("GenerateWorkout without profile: %v", err)
	}
	if plain.Filtered {
		t.Error("plan without profile should not be filtered")
	}

	if _, err := s.SaveProfile(ctx, 1, referenceBody, models.HealthProfile{PhysicalLimitations: []string{"shoulder_injury"}}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	filtered, err := s.GenerateWorkout(ctx, 1, req)
	if err != nil {
		t.Fatalf("GenerateWorkout: %v", err)
	}
	if !filtered.Filtered {
		t.Error("plan with shoulder injury should be filtered")
	}

	stored, err := s.WorkoutPlan(ctx, 1, filtered.ID)
	if err != nil {
		t.Fatalf("WorkoutPlan: %v", err)
	}
	if stored.Plan.HealthModifications == nil {
		t.Error("stored plan lost its health modifications")
	}
	if stored.Request != req {
		t.Errorf("stored request = %+v, want %+v", stored.Request, req)
	}

	plans, err := s.WorkoutPlans(ctx, 1, 0)
	if err != nil {
		t.Fatalf("WorkoutPlans: %v", err)
	}
	if len(plans) != 2 {
		t.Errorf("len(WorkoutPlans) = %d, want 2", len(plans))
	}
}

func TestGenerateWorkoutInvalid(t *testing.T) {
	s := newTestService(t)
	_, err := s.GenerateWorkout(context.Background(), 1, models.WorkoutRequest{
		Goal: models.GoalMuscleGain, ExperienceLevel: models.LevelBeginner, DaysPerWeek: 9,
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestWorkoutPlanNotFound(t *testing.T) {
	s := newTestService(t)
	if _, err := s.WorkoutPlan(context.Background(), 1, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestCalculateNutrition(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if _, err := s.CalculateNutrition(ctx, 1, NutritionRequest{}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("no input and no profile: err = %v, want INVALID_INPUT", err)
	}

	in := referenceBody
	inline, err := s.CalculateNutrition(ctx, 1, NutritionRequest{Input: &in})
	if err != nil {
		t.Fatalf("CalculateNutrition inline: %v", err)
	}
	if inline.TargetCalories != 3128 {
		t.Errorf("TargetCalories = %d, want 3128", inline.TargetCalories)
	}
	if inline.HealthAdjustments != nil {
		t.Error("inline calculation without a profile should have no adjustments")
	}

	health := models.HealthProfile{MedicalConditions: []string{"diabetes_type_2"}}
	if _, err := s.SaveProfile(ctx, 1, referenceBody, health); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	stored, err := s.CalculateNutrition(ctx, 1, NutritionRequest{})
	if err != nil {
		t.Fatalf("CalculateNutrition from profile: %v", err)
	}
	if stored.Macros.CarbsPercentage != 40 {
		t.Errorf("CarbsPercentage = %d, want 40", stored.Macros.CarbsPercentage)
	}
	if stored.Input != referenceBody {
		t.Errorf("Input = %+v, want stored body", stored.Input)
	}

	// An explicit empty health profile overrides the stored one.
	none, err := s.CalculateNutrition(ctx, 1, NutritionRequest{Health: &models.HealthProfile{}})
	if err != nil {
		t.Fatalf("CalculateNutrition: %v", err)
	}
	if none.HealthAdjustments != nil {
		t.Error("explicit empty health profile should skip overrides")
	}
}

func TestLogMuscleUsageAndAssess(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	empty, err := s.AssessInjuryRisk(ctx, 1, -1)
	if err != nil {
		t.Fatalf("AssessInjuryRisk on empty history: %v", err)
	}
	if empty.Assessment.RiskLevel != models.RiskLow {
		t.Errorf("RiskLevel = %s, want low", empty.Assessment.RiskLevel)
	}

	for i := 0; i < 4; i++ {
		_, err := s.LogMuscleUsage(ctx, 1, models.MuscleUsageLog{
			MuscleID:   "chest",
			MuscleName: "Chest",
			WorkedAt:   time.Now().Add(time.Duration(i-4) * time.Hour),
			Intensity:  9,
		})
		if err != nil {
			t.Fatalf("LogMuscleUsage #%d: %v", i+1, err)
		}
	}
	usage, err := s.MuscleUsage(ctx, 1)
	if err != nil {
		t.Fatalf("MuscleUsage: %v", err)
	}
	if len(usage) != 1 || usage[0].WeeklyFrequency != 4 {
		t.Fatalf("usage = %+v, want one chest record with frequency 4", usage)
	}

	if _, err := s.LogMuscleUsage(ctx, 1, models.MuscleUsageLog{MuscleID: "chest", Intensity: 11}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("intensity 11: err = %v, want INVALID_INPUT", err)
	}

	if err := s.MarkRecovered(ctx, 1, "chest"); err != nil {
		t.Fatalf("MarkRecovered: %v", err)
	}
	if err := s.MarkRecovered(ctx, 1, "calves"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("MarkRecovered unknown: err = %v, want NOT_FOUND", err)
	}

	reports, err := s.InjuryReports(ctx, 1, 0)
	if err != nil {
		t.Fatalf("InjuryReports: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("len(InjuryReports) = %d, want 1", len(reports))
	}

	if _, err := s.AssessInjuryRisk(ctx, 1, 15); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("planned 15: err = %v, want INVALID_INPUT", err)
	}
}

func TestHealthRules(t *testing.T) {
	s := newTestService(t)
	sum, err := s.HealthRules(context.Background())
	if err != nil {
		t.Fatalf("HealthRules: %v", err)
	}
	if len(sum.Limitations) == 0 || len(sum.Conditions) == 0 || len(sum.Diets) == 0 {
		t.Errorf("summary = %+v, want every section populated", sum)
	}
}

func TestListLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultListLimit},
		{-3, DefaultListLimit},
		{5, 5},
		{100, 100},
		{500, MaxListLimit},
	}
	for _, tt := range tests {
		if got := listLimit(tt.in); got != tt.want {
			t.Errorf("listLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStoreErrWrapsPlainErrors(t *testing.T) {
	err := storeErr(errors.New("disk full"), "saving")
	if apperr.CodeOf(err) != apperr.CodeStorage {
		t.Errorf("code = %s, want STORAGE_ERROR", apperr.CodeOf(err))
	}
	nf := apperr.NotFound("profile")
	if got := storeErr(nf, "loading"); got != error(nf) {
		t.Errorf("storeErr should pass apperr errors through, got %v", got)
	}
}
