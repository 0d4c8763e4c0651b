package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
)

// Request body limits. Training-log exports can span years of sessions.
const (
	maxBodyBytes   = 1 << 20
	maxImportBytes = 32 << 20
)

type profileRequest struct {
	Body   models.PhysiologicalInput `json:"body"`
	Health models.HealthProfile      `json:"health"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.svc.SaveProfile(r.Context(), userIDFromContext(r), req.Body, req.Health)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.HealthRules(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleGenerateWorkout(w http.ResponseWriter, r *http.Request) {
	var req models.WorkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := s.svc.GenerateWorkout(r.Context(), userIDFromContext(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	plans, err := s.svc.WorkoutPlans(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if plans == nil {
		plans = []models.StoredWorkoutPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	planID, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout plan ID"})
		return
	}

	plan, err := s.svc.WorkoutPlan(r.Context(), userIDFromContext(r), planID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// handleProfileNutrition calculates nutrition from the stored profile alone.
func (s *Server) handleProfileNutrition(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.CalculateNutrition(r.Context(), userIDFromContext(r), service.NutritionRequest{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCalculateNutrition takes body measurements inline. A health profile
// may be given too; without one the stored profile's is used.
func (s *Server) handleCalculateNutrition(w http.ResponseWriter, r *http.Request) {
	var req service.NutritionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Input == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "input is required", "code": string(apperr.CodeInvalidInput), "field": "input"})
		return
	}
	res, err := s.svc.CalculateNutrition(r.Context(), userIDFromContext(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLogUsage(w http.ResponseWriter, r *http.Request) {
	var entry models.MuscleUsageLog
	if !decodeBody(w, r, &entry) {
		return
	}
	rec, err := s.svc.LogMuscleUsage(r.Context(), userIDFromContext(r), entry)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleAlphaImport logs muscle usage from an Alpha Progression CSV export.
func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := s.alpha.Ingest(r.Context(), r.Body, userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := s.svc.MuscleUsage(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if usage == nil {
		usage = []models.MuscleUsageRecord{}
	}
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleMarkRecovered(w http.ResponseWriter, r *http.Request) {
	muscleID := chi.URLParam(r, "muscleID")
	if err := s.svc.MarkRecovered(r.Context(), userIDFromContext(r), muscleID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInjuryRisk(w http.ResponseWriter, r *http.Request) {
	planned := -1
	if v := r.URL.Query().Get("planned_frequency"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid planned_frequency"})
			return
		}
		planned = n
	}

	report, err := s.svc.AssessInjuryRisk(r.Context(), userIDFromContext(r), planned)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleInjuryReports(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	reports, err := s.svc.InjuryReports(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reports == nil {
		reports = []models.InjuryReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps apperr codes to HTTP statuses. Storage and internal errors
// are logged and reported without their cause.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Wrap(err, apperr.CodeInternal, "internal error")
	}

	body := map[string]string{"error": ae.Message, "code": string(ae.Code)}
	status := http.StatusInternalServerError
	switch ae.Code {
	case apperr.CodeInvalidInput:
		status = http.StatusBadRequest
		if ae.Field != "" {
			body["field"] = ae.Field
		}
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, body)
}

// decodeBody decodes a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return service.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return n, nil
}
