package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Backend is what the MCP tools call into. *service.Service (in-process) and
// HTTPClient (remote via REST API) both satisfy it.
type Backend interface {
	GenerateWorkout(ctx context.Context, userID int, req models.WorkoutRequest) (*service.WorkoutResult, error)
	CalculateNutrition(ctx context.Context, userID int, req service.NutritionRequest) (*service.NutritionResult, error)
	AssessInjuryRisk(ctx context.Context, userID, planned int) (*models.InjuryReport, error)
	LogMuscleUsage(ctx context.Context, userID int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error)
	HealthRules(ctx context.Context) (*healthrules.Summary, error)
}

// Compile-time check: *service.Service satisfies Backend.
var _ Backend = (*service.Service)(nil)

// New creates an MCP server with all tools and resources registered.
func New(b Backend, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fitcoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("fitcoach training server. Generates workout plans filtered against the user's health profile, "+
			"calculates nutrition targets, tracks muscle usage and assesses injury risk. All data is scoped to the authenticated user."),
	)

	h := &handlers{b: b, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGenerateWorkoutPlan, Handler: h.generateWorkoutPlan},
		server.ServerTool{Tool: toolCalculateNutrition, Handler: h.calculateNutrition},
		server.ServerTool{Tool: toolAssessInjuryRisk, Handler: h.assessInjuryRisk},
		server.ServerTool{Tool: toolLogMuscleUsage, Handler: h.logMuscleUsage},
		server.ServerTool{Tool: toolListHealthRules, Handler: h.listHealthRules},
	)

	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	b   Backend
	log *slog.Logger
}

var resCatalog = mcp.NewResource(
	"fitcoach://catalog",
	"Health Rule Catalog",
	mcp.WithResourceDescription("Physical limitations, medical conditions and dietary preferences the engine understands, with their ids"),
	mcp.WithMIMEType("application/json"),
)
