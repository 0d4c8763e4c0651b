package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/models"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var t0 = time.Date(2025, 4, 2, 18, 30, 0, 0, time.UTC)

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := Open(dir)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.GetProfile(ctx, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetProfile on empty db: err = %v, want NOT_FOUND", err)
	}

	want := models.UserProfile{
		UserID: 1,
		Body: models.PhysiologicalInput{
			AgeYears:      30, Sex: models.SexFemale, WeightKg: 62.5, HeightCm: 168,
			ActivityLevel: models.ActivityLight, FitnessGoal: models.GoalFatLoss,
		},
		Health: models.HealthProfile{
			PhysicalLimitations: []string{"knee_injury"},
			MedicalConditions:   []string{"hypertension"},
			DietaryPreferences:  []string{"vegetarian"},
		},
		UpdatedAt: t0,
	}
	if err := s.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	got, err := s.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("profile (-want +got):\n%s", diff)
	}

	want.Health.MedicalConditions = nil
	if err := s.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile (replace): %v", err)
	}
	got, err = s.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if len(got.Health.MedicalConditions) != 0 {
		t.Errorf("MedicalConditions = %v, want empty after replace", got.Health.MedicalConditions)
	}
}

func TestMuscleUsage(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec, err := s.GetMuscleUsage(ctx, 1, "chest")
	if err != nil || rec != nil {
		t.Fatalf("GetMuscleUsage on empty db = %v, %v; want nil, nil", rec, err)
	}

	chest := models.MuscleUsageRecord{
		UserID:          1, MuscleID: "chest", MuscleName: "Chest", LastWorkedAt: t0,
		WeeklyFrequency: 1, Intensity: 7, RequiredRecoveryHours: 48,
	}
	if err := s.UpsertMuscleUsage(ctx, chest); err != nil {
		t.Fatalf("UpsertMuscleUsage: %v", err)
	}
	chest.WeeklyFrequency = 2
	chest.LastWorkedAt = t0.Add(24 * time.Hour)
	if err := s.UpsertMuscleUsage(ctx, chest); err != nil {
		t.Fatalf("UpsertMuscleUsage (update): %v", err)
	}
	back := chest
	back.MuscleID, back.MuscleName = "back", "Back"
	if err := s.UpsertMuscleUsage(ctx, back); err != nil {
		t.Fatalf("UpsertMuscleUsage: %v", err)
	}
	other := chest
	other.UserID = 2
	if err := s.UpsertMuscleUsage(ctx, other); err != nil {
		t.Fatalf("UpsertMuscleUsage: %v", err)
	}

	all, err := s.ListMuscleUsage(ctx, 1)
	if err != nil {
		t.Fatalf("ListMuscleUsage: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(ListMuscleUsage) = %d, want 2", len(all))
	}
	if all[0].MuscleID != "back" || all[1].MuscleID != "chest" {
		t.Errorf("order = %s, %s; want back, chest", all[0].MuscleID, all[1].MuscleID)
	}
	if diff := cmp.Diff(chest, all[1]); diff != "" {
		t.Errorf("chest (-want +got):\n%s", diff)
	}

	if err := s.MarkMuscleRecovered(ctx, 1, "chest"); err != nil {
		t.Fatalf("MarkMuscleRecovered: %v", err)
	}
	rec, err = s.GetMuscleUsage(ctx, 1, "chest")
	if err != nil {
		t.Fatalf("GetMuscleUsage: %v", err)
	}
	if !rec.IsMarkedRecovered {
		t.Error("IsMarkedRecovered = false, want true")
	}

	if err := s.MarkMuscleRecovered(ctx, 1, "calves"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("MarkMuscleRecovered unknown muscle: err = %v, want NOT_FOUND", err)
	}
}

func TestWorkoutPlans(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		p := models.StoredWorkoutPlan{
			ID:        uuid.New(),
			UserID:    1,
			Request:   models.WorkoutRequest{Goal: models.GoalMuscleGain, ExperienceLevel: models.LevelBeginner, DaysPerWeek: 3},
			Plan:      models.WorkoutPlan{Name: "Push/Pull/Legs", Days: []models.WorkoutDay{{DayLabel: "Push", DayOfWeek: 1}}},
			Warnings:  []string{"Avoid painful ranges."},
			CreatedAt: t0.Add(time.Duration(i) * time.Hour),
		}
		if err := s.InsertWorkoutPlan(ctx, p); err != nil {
			t.Fatalf("InsertWorkoutPlan: %v", err)
		}
		ids = append(ids, p.ID)
	}

	list, err := s.ListWorkoutPlans(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListWorkoutPlans: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != ids[2] || list[1].ID != ids[1] {
		t.Errorf("ListWorkoutPlans not newest first")
	}

	got, err := s.GetWorkoutPlan(ctx, 1, ids[0])
	if err != nil {
		t.Fatalf("GetWorkoutPlan: %v", err)
	}
	if got.Plan.Name != "Push/Pull/Legs" || len(got.Warnings) != 1 {
		t.Errorf("GetWorkoutPlan = %+v", got)
	}

	if _, err := s.GetWorkoutPlan(ctx, 2, ids[0]); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("other user's plan: err = %v, want NOT_FOUND", err)
	}
}

func TestInjuryReports(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	r := models.InjuryReport{
		ID:     uuid.New(),
		UserID: 1,
		Assessment: models.InjuryRiskAssessment{
			RiskLevel:       models.RiskHigh,
			FlaggedMuscles:  []models.FlaggedMuscle{{MuscleName: "Chest", IssueKind: models.IssueInsufficientRecovery}},
			Recommendations: []string{"Take a rest day."},
			NeedsRestDay:    true,
		},
		CreatedAt: t0,
	}
	if err := s.InsertInjuryReport(ctx, r); err != nil {
		t.Fatalf("InsertInjuryReport: %v", err)
	}
	if err := s.InsertNutritionPlan(ctx, models.StoredNutritionPlan{ID: uuid.New(), UserID: 1, CreatedAt: t0}); err != nil {
		t.Fatalf("InsertNutritionPlan: %v", err)
	}

	got, err := s.ListInjuryReports(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListInjuryReports: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if diff := cmp.Diff(r, got[0]); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
}
