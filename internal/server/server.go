package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/fitcoach/internal/ingest/alpha"
	"github.com/claude/fitcoach/internal/mcp"
	"github.com/claude/fitcoach/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *service.Service
	alpha  *alpha.Provider
	log    *slog.Logger
	apiKey string
	router chi.Router

	// identity resolves the calling user; DevIdentity unless SetTailscale was called.
	identity func(http.Handler) http.Handler
	mcp      http.Handler
}

// New creates a new Server with all routes configured.
func New(svc *service.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:      svc,
		alpha:    alpha.NewProvider(svc, log),
		log:      log,
		apiKey:   apiKey,
		identity: DevIdentity,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetDevUser makes every request act as userID instead of user 1. The user
// must already exist.
func (s *Server) SetDevUser(userID int) {
	s.identity = devIdentity(userID)
	s.routes()
}

// SetTailscale switches user identity from the dev user to the tailnet peer
// making each request. Must be called before the server starts serving.
func (s *Server) SetTailscale(whois WhoIser, users UserResolver) {
	s.identity = TailscaleIdentity(whois, users, s.log)
	s.routes()
}

// SetMCP exposes m over the streamable HTTP transport at /mcp. Tool calls
// run as the request's user.
func (s *Server) SetMCP(m *mcpserver.MCPServer) {
	s.mcp = mcpserver.NewStreamableHTTPServer(m,
		mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return mcp.WithUserID(ctx, userIDFromContext(r))
		}),
	)
	s.routes()
}

func (s *Server) routes() {
	s.router = chi.NewRouter()
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Use(s.identity)

		r.Get("/me", s.handleMe)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)
		r.Get("/catalog", s.handleCatalog)

		r.Post("/workouts/generate", s.handleGenerateWorkout)
		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)

		r.Get("/nutrition", s.handleProfileNutrition)
		r.Post("/nutrition/calculate", s.handleCalculateNutrition)

		r.Post("/muscles/usage", s.handleLogUsage)
		r.Post("/muscles/import/alpha", s.handleAlphaImport)
		r.Get("/muscles/usage", s.handleListUsage)
		r.Post("/muscles/{muscleID}/recovered", s.handleMarkRecovered)

		r.Get("/injury-risk", s.handleInjuryRisk)
		r.Get("/injury-risk/reports", s.handleInjuryReports)
	})

	if s.mcp != nil {
		s.router.With(APIKeyAuth(s.apiKey), s.identity).Handle("/mcp", s.mcp)
	}
}
