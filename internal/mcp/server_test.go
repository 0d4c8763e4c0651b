package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
	"github.com/claude/fitcoach/internal/split"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// fakeBackend records the last call and returns canned results.
type fakeBackend struct {
	userID    int
	workout   models.WorkoutRequest
	nutrition service.NutritionRequest
	planned   int
	usage     models.MuscleUsageLog
	err       error
}

func (f *fakeBackend) GenerateWorkout(ctx context.Context, userID int, req models.WorkoutRequest) (*service.WorkoutResult, error) {
	f.userID, f.workout = userID, req
	if f.err != nil {
		return nil, f.err
	}
	return &service.WorkoutResult{}, nil
}

func (f *fakeBackend) CalculateNutrition(ctx context.Context, userID int, req service.NutritionRequest) (*service.NutritionResult, error) {
	f.userID, f.nutrition = userID, req
	if f.err != nil {
		return nil, f.err
	}
	return &service.NutritionResult{}, nil
}

func (f *fakeBackend) AssessInjuryRisk(ctx context.Context, userID, planned int) (*models.InjuryReport, error) {
	f.userID, f.planned = userID, planned
	if f.err != nil {
		return nil, f.err
	}
	return &models.InjuryReport{Assessment: models.InjuryRiskAssessment{RiskLevel: models.RiskLow}}, nil
}

func (f *fakeBackend) LogMuscleUsage(ctx context.Context, userID int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error) {
	f.userID, f.usage = userID, entry
	if f.err != nil {
		return nil, f.err
	}
	return &models.MuscleUsageRecord{MuscleID: entry.MuscleID}, nil
}

func (f *fakeBackend) HealthRules(ctx context.Context) (*healthrules.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &healthrules.Summary{Limitations: []healthrules.Entry{{ID: "knee_injury", Name: "Knee Injury"}}}, nil
}

func newHandlers(b Backend) *handlers {
	return &handlers{b: b, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestGenerateWorkoutPlanTool(t *testing.T) {
	b := &fakeBackend{}
	h := newHandlers(b)
	ctx := WithUserID(context.Background(), 7)

	res, err := h.generateWorkoutPlan(ctx, callReq("generate_workout_plan", map[string]any{
		"goal":             "sport_specific",
		"experience_level": "intermediate",
		"days_per_week":    float64(4),
		"sport":            "soccer",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	want := models.WorkoutRequest{Goal: models.GoalSportSpecific, ExperienceLevel: models.LevelIntermediate, DaysPerWeek: 4, Sport: "soccer"}
	if b.workout != want {
		t.Errorf("request = %+v, want %+v", b.workout, want)
	}
	if b.userID != 7 {
		t.Errorf("userID = %d, want 7", b.userID)
	}

	res, _ = h.generateWorkoutPlan(ctx, callReq("generate_workout_plan", map[string]any{"goal": "fat_loss"}))
	if !res.IsError {
		t.Error("missing experience_level should be a tool error")
	}
}

func TestCalculateNutritionTool(t *testing.T) {
	b := &fakeBackend{}
	h := newHandlers(b)
	ctx := context.Background()

	// No arguments: everything comes from the stored profile.
	if _, err := h.calculateNutrition(ctx, callReq("calculate_nutrition", nil)); err != nil {
		t.Fatal(err)
	}
	if b.nutrition.Input != nil || b.nutrition.Health != nil {
		t.Errorf("empty call should leave input and health nil, got %+v", b.nutrition)
	}

	_, err := h.calculateNutrition(ctx, callReq("calculate_nutrition", map[string]any{
		"age_years":           float64(25),
		"sex":                 "male",
		"weight_kg":           float64(75),
		"height_cm":           float64(180),
		"activity_level":      "moderate",
		"fitness_goal":        "muscle_gain",
		"dietary_preferences": []any{"vegan"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if b.nutrition.Input == nil || b.nutrition.Input.WeightKg != 75 || b.nutrition.Input.AgeYears != 25 {
		t.Errorf("input = %+v", b.nutrition.Input)
	}
	if b.nutrition.Health == nil || !b.nutrition.Health.HasPreference("vegan") {
		t.Errorf("health = %+v, want vegan preference", b.nutrition.Health)
	}
}

func TestAssessInjuryRiskTool(t *testing.T) {
	b := &fakeBackend{}
	h := newHandlers(b)

	res, err := h.assessInjuryRisk(context.Background(), callReq("assess_injury_risk", nil))
	if err != nil {
		t.Fatal(err)
	}
	if b.planned != -1 {
		t.Errorf("planned = %d, want -1 (server default)", b.planned)
	}
	if !strings.Contains(resultText(t, res), `"risk_level":"low"`) {
		t.Errorf("result = %s, want risk_level low", resultText(t, res))
	}

	h.assessInjuryRisk(context.Background(), callReq("assess_injury_risk", map[string]any{"planned_frequency": float64(3)}))
	if b.planned != 3 {
		t.Errorf("planned = %d, want 3", b.planned)
	}
}

func TestLogMuscleUsageTool(t *testing.T) {
	b := &fakeBackend{}
	h := newHandlers(b)
	ctx := context.Background()

	res, err := h.logMuscleUsage(ctx, callReq("log_muscle_usage", map[string]any{
		"muscle_id": "chest",
		"intensity": float64(7),
		"worked_at": "2025-06-01T18:00:00Z",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if b.usage.MuscleID != "chest" || b.usage.Intensity != 7 {
		t.Errorf("entry = %+v", b.usage)
	}
	if !b.usage.WorkedAt.Equal(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("WorkedAt = %v", b.usage.WorkedAt)
	}

	res, _ = h.logMuscleUsage(ctx, callReq("log_muscle_usage", map[string]any{
		"muscle_id": "chest", "intensity": float64(7), "worked_at": "yesterday",
	}))
	if !res.IsError {
		t.Error("bad worked_at should be a tool error")
	}
}

func TestToolErrors(t *testing.T) {
	b := &fakeBackend{err: apperr.InvalidInput("days_per_week", "must be between 2 and 6, got 9")}
	h := newHandlers(b)

	res, err := h.generateWorkoutPlan(context.Background(), callReq("generate_workout_plan", map[string]any{
		"goal": "muscle_gain", "experience_level": "beginner", "days_per_week": float64(9),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("backend error should be a tool error")
	}
	if !strings.Contains(resultText(t, res), "days_per_week") {
		t.Errorf("error text = %q, want the offending field", resultText(t, res))
	}

	b.err = errors.New("connection refused")
	res, _ = h.listHealthRules(context.Background(), callReq("list_health_rules", nil))
	if !res.IsError || !strings.HasPrefix(resultText(t, res), "request failed") {
		t.Errorf("storage failure result = %+v", res)
	}

	b.err = apperr.Wrap(errors.New("pq: relation \"injury_reports\" does not exist"), apperr.CodeStorage, "saving injury report")
	res, _ = h.assessInjuryRisk(context.Background(), callReq("assess_injury_risk", nil))
	if text := resultText(t, res); !res.IsError || strings.Contains(text, "injury_reports") || strings.Contains(text, "saving") {
		t.Errorf("internal error leaked to the client: %q", text)
	}
}

func TestSportDescriptionListsTemplates(t *testing.T) {
	prop, ok := toolGenerateWorkoutPlan.InputSchema.Properties["sport"].(map[string]any)
	if !ok {
		t.Fatalf("sport property = %T", toolGenerateWorkoutPlan.InputSchema.Properties["sport"])
	}
	desc, _ := prop["description"].(string)
	for _, sport := range split.Sports() {
		if !strings.Contains(desc, sport) {
			t.Errorf("description %q does not mention %s", desc, sport)
		}
	}
	if strings.Contains(desc, "football") {
		t.Errorf("description %q names a sport without a template", desc)
	}
}

func TestCatalogResource(t *testing.T) {
	h := newHandlers(&fakeBackend{})
	var req mcp.ReadResourceRequest
	req.Params.URI = "fitcoach://catalog"

	contents, err := h.catalog(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T, want TextResourceContents", contents[0])
	}
	if !strings.Contains(text.Text, "knee_injury") {
		t.Errorf("catalog = %s, want knee_injury", text.Text)
	}
}

func TestNewRegistersTools(t *testing.T) {
	s := New(&fakeBackend{}, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	tools := s.ListTools()
	for _, name := range []string{"generate_workout_plan", "calculate_nutrition", "assess_injury_risk", "log_muscle_usage", "list_health_rules"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
}
