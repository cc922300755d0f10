package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/importer"
	"college-trip-planner/internal/planner"
)

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB      database.DataStore
	Planner planner.TripPlanner
	Trips   *TripSessionStore
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// handleNotFound handles 404 errors
func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// handleValidationError handles 400 errors
func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
}

// handleConflict handles 409 errors
func (h *Handler) handleConflict(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusConflict, "CONFLICT", message, nil)
}

// handlePlanningError maps planner errors to 422 (too many colleges), 400 (invalid input) or 500
func (h *Handler) handlePlanningError(w http.ResponseWriter, err error) {
	var tooMany *planner.ErrTooManyColleges
	if errors.As(err, &tooMany) {
		h.writeError(w, http.StatusUnprocessableEntity, "PLANNING_FAILED", err.Error(), map[string]interface{}{
			"count": tooMany.Count,
			"max":   tooMany.Max,
		})
		return
	}
	if planner.IsInvalidInput(err) {
		h.handleValidationError(w, err.Error())
		return
	}
	h.handleInternalError(w, err)
}

// handleImportError handles CSV import failures
func (h *Handler) handleImportError(w http.ResponseWriter, err error) {
	var bad *importer.ErrBadRecord
	if errors.As(err, &bad) {
		h.writeError(w, http.StatusUnprocessableEntity, "IMPORT_FAILED", bad.Error(), map[string]interface{}{
			"line": bad.Line,
		})
		return
	}
	h.writeError(w, http.StatusUnprocessableEntity, "IMPORT_FAILED", err.Error(), nil)
}

// handleInternalError handles 500 errors
func (h *Handler) handleInternalError(w http.ResponseWriter, err error) {
	log.Printf("[ERROR] Internal error: %v", err)
	h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An error occurred. Please try again.", nil)
}

// checkNotFound checks if an error is a not found error
func (h *Handler) checkNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// pathParam returns an unescaped URL parameter; college names often contain spaces
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// HandleHealthCheck handles GET /api/v1/health
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		log.Printf("[HTTP] GET /api/v1/health: unhealthy err=%v", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
