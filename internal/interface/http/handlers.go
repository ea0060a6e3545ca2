package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/application/command"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/application/query"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
	"github.com/polaris-hub/polaris-mentoring-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MENTORING HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// submitSurveyRequest is the JSON body for survey submission.
type submitSurveyRequest struct {
	UserID              string   `json:"user_id"`
	Fields              []string `json:"fields"`
	Frequency           string   `json:"frequency"`
	Goal                string   `json:"goal"`
	AvailableDays       []string `json:"available_days"`
	TimeSlots           []string `json:"time_slots"`
	Methods             []string `json:"methods"`
	CommunicationStyles []string `json:"communication_styles"`
	MentoringFocuses    []string `json:"mentoring_focuses"`
}

// handleSubmitSurvey processes POST /api/v1/mentoring/survey and
// PUT /api/v1/mentoring/survey/{userID}. A repeated submission for the
// same user is a retake: the new survey becomes the active one and
// cached recommendations are invalidated.
func (s *Server) handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	if s.deps.SubmitSurveyHandler == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service_unavailable", "Survey service is not available")
		return
	}

	var req submitSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	// The PUT route carries the user in the path.
	if userID := r.PathValue("userID"); userID != "" {
		req.UserID = userID
	}

	cmd := command.SubmitSurveyCommand{
		UserID:              req.UserID,
		Fields:              req.Fields,
		Frequency:           req.Frequency,
		Goal:                req.Goal,
		AvailableDays:       req.AvailableDays,
		TimeSlots:           req.TimeSlots,
		Methods:             req.Methods,
		CommunicationStyles: req.CommunicationStyles,
		MentoringFocuses:    req.MentoringFocuses,
		CorrelationID:       getRequestID(r.Context()),
	}

	result, err := s.deps.SubmitSurveyHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeHandlerError(w, r, "SubmitSurvey", err)
		return
	}

	status := http.StatusCreated
	if result.Retake {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// handleGetMySurvey processes GET /api/v1/mentoring/survey/{userID}.
// The query-parameter form (?user_id=) is accepted as well.
func (s *Server) handleGetMySurvey(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetMySurveyHandler == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service_unavailable", "Survey service is not available")
		return
	}

	userID := r.PathValue("userID")
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}

	q := query.GetMySurveyQuery{
		UserID: userID,
	}

	result, err := s.deps.GetMySurveyHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeHandlerError(w, r, "GetMySurvey", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetRecommendations processes GET /api/v1/mentoring/recommendations.
// Query parameters: user_id (required), limit (1..50, default 10), offset (>= 0).
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetRecommendationsHandler == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service_unavailable", "Recommendation service is not available")
		return
	}

	q := query.GetRecommendationsQuery{
		UserID: r.URL.Query().Get("user_id"),
		Limit:  getQueryParamInt(r, "limit", 0),
		Offset: getQueryParamInt(r, "offset", 0),
	}

	result, err := s.deps.GetRecommendationsHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeHandlerError(w, r, "GetRecommendations", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeHandlerError translates domain errors into HTTP responses.
func (s *Server) writeHandlerError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.logger.Error("request failed",
			logger.Operation(op),
			logger.Err(err),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type healthResponse struct {
	Status    string            `json:"status"`
	Uptime    string            `json:"uptime"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// handleHealth reports overall health including backing services.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	healthy := true

	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks["database"] = "healthy"
		}
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Ping(r.Context()); err != nil {
			// Recommendations degrade to direct reads when the cache is down.
			checks["cache"] = "degraded: " + err.Error()
		} else {
			checks["cache"] = "healthy"
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		Uptime:    s.Uptime().Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

// handleReady reports readiness: the database must answer.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "not_ready", "Database is not reachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive reports liveness: the process is serving requests.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// handleRoot serves basic service information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not_found", "Resource not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "polaris-mentoring-hub",
		"version": "1.0.0",
		"endpoints": []string{
			"POST /api/v1/mentoring/survey",
			"GET /api/v1/mentoring/survey",
			"GET /api/v1/mentoring/recommendations",
			"GET /health",
		},
	})
}

// handleAdminStats reports server statistics. API key protected.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uptime":     s.Uptime().Round(time.Second).String(),
		"running":    s.IsRunning(),
		"started_at": s.startedAt.UTC(),
	})
}
