package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
	"github.com/claude/fitcoach/internal/split"
)

// --- Tool definitions ---

var toolGenerateWorkoutPlan = mcp.NewTool("generate_workout_plan",
	mcp.WithDescription("Generate a weekly training split for a goal, experience level and number of training days. "+
		"The plan is filtered against the user's stored health profile: contraindicated exercises are removed or substituted and warnings are attached."),
	mcp.WithString("goal", mcp.Required(), mcp.Description("Training goal"),
		mcp.Enum("muscle_gain", "fat_loss", "endurance", "sport_specific", "general_fitness")),
	mcp.WithString("experience_level", mcp.Required(), mcp.Description("Training experience"),
		mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithNumber("days_per_week", mcp.Required(), mcp.Description("Training days per week (2-6)")),
	mcp.WithString("sport", mcp.Description("Sport for sport_specific goals: "+
		strings.Join(split.Sports(), ", ")+". Other sports get a generic three-day plan.")),
)

var toolCalculateNutrition = mcp.NewTool("calculate_nutrition",
	mcp.WithDescription("Calculate daily calorie, macro, micronutrient and hydration targets. "+
		"Body measurements default to the stored profile; when any are given, all must be. Health ids default to the stored profile."),
	mcp.WithNumber("age_years", mcp.Description("Age in years")),
	mcp.WithString("sex", mcp.Description("Biological sex"), mcp.Enum("male", "female")),
	mcp.WithNumber("weight_kg", mcp.Description("Body weight in kg")),
	mcp.WithNumber("height_cm", mcp.Description("Height in cm")),
	mcp.WithString("activity_level", mcp.Description("Daily activity level"),
		mcp.Enum("sedentary", "light", "moderate", "active", "very_active")),
	mcp.WithString("fitness_goal", mcp.Description("Training goal"),
		mcp.Enum("muscle_gain", "fat_loss", "endurance", "sport_specific", "general_fitness")),
	mcp.WithArray("medical_conditions", mcp.WithStringItems(), mcp.Description("Condition ids from the catalog (e.g. 'diabetes_type_2')")),
	mcp.WithArray("dietary_preferences", mcp.WithStringItems(), mcp.Description("Diet ids from the catalog (e.g. 'vegan', 'keto')")),
)

var toolAssessInjuryRisk = mcp.NewTool("assess_injury_risk",
	mcp.WithDescription("Assess overtraining and injury risk from the user's logged muscle usage. Returns a risk level, flagged muscles, recommendations and a recovery plan."),
	mcp.WithNumber("planned_frequency", mcp.Description("Planned sessions per week (0-14). Defaults to the server setting.")),
)

var toolLogMuscleUsage = mcp.NewTool("log_muscle_usage",
	mcp.WithDescription("Record that a muscle was trained. Updates the muscle's weekly frequency and recovery window."),
	mcp.WithString("muscle_id", mcp.Required(), mcp.Description("Muscle id (e.g. 'chest', 'quadriceps')")),
	mcp.WithString("muscle_name", mcp.Description("Display name. Defaults to the id.")),
	mcp.WithNumber("intensity", mcp.Required(), mcp.Description("Session intensity from 1 to 10")),
	mcp.WithString("worked_at", mcp.Description("When the muscle was trained (ISO 8601). Defaults to now.")),
	mcp.WithNumber("recovery_hours", mcp.Description("Hours the muscle needs to recover. Defaults to 48.")),
)

var toolListHealthRules = mcp.NewTool("list_health_rules",
	mcp.WithDescription("List the physical limitation, medical condition and dietary preference ids the engine understands."),
)

// --- Tool handlers ---

func (h *handlers) generateWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goal, err := req.RequireString("goal")
	if err != nil {
		return mcp.NewToolResultError("goal parameter is required"), nil
	}
	level, err := req.RequireString("experience_level")
	if err != nil {
		return mcp.NewToolResultError("experience_level parameter is required"), nil
	}
	days, err := req.RequireInt("days_per_week")
	if err != nil {
		return mcp.NewToolResultError("days_per_week parameter is required"), nil
	}

	wr := models.WorkoutRequest{
		Goal:            models.FitnessGoal(goal),
		ExperienceLevel: models.ExperienceLevel(level),
		DaysPerWeek:     days,
		Sport:           req.GetString("sport", ""),
	}
	res, err := h.b.GenerateWorkout(ctx, UserIDFromContext(ctx), wr)
	if err != nil {
		return h.toolError("generate_workout_plan", err), nil
	}
	return jsonResult(res)
}

func (h *handlers) calculateNutrition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var nr service.NutritionRequest

	in := models.PhysiologicalInput{
		AgeYears:      req.GetInt("age_years", 0),
		Sex:           models.Sex(req.GetString("sex", "")),
		WeightKg:      req.GetFloat("weight_kg", 0),
		HeightCm:      req.GetFloat("height_cm", 0),
		ActivityLevel: models.ActivityLevel(req.GetString("activity_level", "")),
		FitnessGoal:   models.FitnessGoal(req.GetString("fitness_goal", "")),
	}
	if in != (models.PhysiologicalInput{}) {
		nr.Input = &in
	}

	conditions := req.GetStringSlice("medical_conditions", nil)
	diets := req.GetStringSlice("dietary_preferences", nil)
	if conditions != nil || diets != nil {
		nr.Health = &models.HealthProfile{MedicalConditions: conditions, DietaryPreferences: diets}
	}

	res, err := h.b.CalculateNutrition(ctx, UserIDFromContext(ctx), nr)
	if err != nil {
		return h.toolError("calculate_nutrition", err), nil
	}
	return jsonResult(res)
}

func (h *handlers) assessInjuryRisk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planned := req.GetInt("planned_frequency", -1)

	report, err := h.b.AssessInjuryRisk(ctx, UserIDFromContext(ctx), planned)
	if err != nil {
		return h.toolError("assess_injury_risk", err), nil
	}
	return jsonResult(report)
}

func (h *handlers) logMuscleUsage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	muscleID, err := req.RequireString("muscle_id")
	if err != nil {
		return mcp.NewToolResultError("muscle_id parameter is required"), nil
	}
	intensity, err := req.RequireInt("intensity")
	if err != nil {
		return mcp.NewToolResultError("intensity parameter is required"), nil
	}

	entry := models.MuscleUsageLog{
		MuscleID:              muscleID,
		MuscleName:            req.GetString("muscle_name", ""),
		Intensity:             intensity,
		RequiredRecoveryHours: req.GetInt("recovery_hours", 0),
	}
	if v := req.GetString("worked_at", ""); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return mcp.NewToolResultError("invalid worked_at: " + err.Error()), nil
		}
		entry.WorkedAt = t
	}

	rec, err := h.b.LogMuscleUsage(ctx, UserIDFromContext(ctx), entry)
	if err != nil {
		return h.toolError("log_muscle_usage", err), nil
	}
	return jsonResult(rec)
}

func (h *handlers) listHealthRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum, err := h.b.HealthRules(ctx)
	if err != nil {
		return h.toolError("list_health_rules", err), nil
	}
	return jsonResult(sum)
}

// toolError turns a backend error into a tool-level error result. Input
// problems are reported as-is so the model can correct its call.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrInvalidInput) || errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("request failed; try again later")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
