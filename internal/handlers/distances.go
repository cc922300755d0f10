package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/models"
)

// HandleUpsertDistance handles PUT /api/v1/distances
func (h *Handler) HandleUpsertDistance(w http.ResponseWriter, r *http.Request) {
	var d models.Distance
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		log.Printf("[HTTP] PUT /api/v1/distances: invalid_json err=%v", err)
		h.handleValidationError(w, "Invalid request body")
		return
	}

	d.StartCollege = strings.TrimSpace(d.StartCollege)
	d.EndCollege = strings.TrimSpace(d.EndCollege)

	if d.StartCollege == "" || d.EndCollege == "" {
		h.handleValidationError(w, "Start and end college are required")
		return
	}
	if d.StartCollege == d.EndCollege {
		h.handleValidationError(w, "Start and end college must differ")
		return
	}
	if d.Miles < 0 {
		h.handleValidationError(w, "Distance must not be negative")
		return
	}

	if err := h.DB.Distances().Upsert(r.Context(), &d); err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] PUT /api/v1/distances: %s -> %s = %.1f", d.StartCollege, d.EndCollege, d.Miles)
	h.writeJSON(w, http.StatusOK, d)
}

// HandleDeleteDistance handles DELETE /api/v1/distances?start=&end=
func (h *Handler) HandleDeleteDistance(w http.ResponseWriter, r *http.Request) {
	start := strings.TrimSpace(r.URL.Query().Get("start"))
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if start == "" || end == "" {
		h.handleValidationError(w, "start and end query parameters are required")
		return
	}

	err := h.DB.Distances().Delete(r.Context(), start, end)
	if h.checkNotFound(err) {
		h.handleNotFound(w, "Distance not found")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
