package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

// CollegeDistancesResponse lists every known destination of one college
type CollegeDistancesResponse struct {
	College   string                   `json:"college"`
	Distances []models.DistanceListing `json:"distances"`
	Total     float64                  `json:"total"`
}

// RenameCollegeRequest is the body of PUT /api/v1/colleges/{name}
type RenameCollegeRequest struct {
	Name string `json:"name"`
}

// HandleListColleges handles GET /api/v1/colleges
func (h *Handler) HandleListColleges(w http.ResponseWriter, r *http.Request) {
	colleges, err := h.DB.Distances().Colleges(r.Context())
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	if colleges == nil {
		colleges = []string{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"colleges": colleges,
		"total":    len(colleges),
	})
}

// HandleListCollegeDistances handles GET /api/v1/colleges/{name}/distances.
// The list starts with the college itself at 0 and is sorted ascending.
func (h *Handler) HandleListCollegeDistances(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	distances, err := h.DB.Distances().ListFrom(r.Context(), name)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	if len(distances) == 0 {
		known, err := h.collegeExists(r, name)
		if err != nil {
			h.handleInternalError(w, err)
			return
		}
		if !known {
			h.handleNotFound(w, "College not found")
			return
		}
	}

	resp := CollegeDistancesResponse{
		College:   name,
		Distances: []models.DistanceListing{{College: name, Miles: 0}},
	}
	for _, d := range distances {
		resp.Distances = append(resp.Distances, models.DistanceListing{College: d.EndCollege, Miles: d.Miles})
		resp.Total += d.Miles
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleRenameCollege handles PUT /api/v1/colleges/{name}
func (h *Handler) HandleRenameCollege(w http.ResponseWriter, r *http.Request) {
	oldName := pathParam(r, "name")

	var req RenameCollegeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		h.handleValidationError(w, "Name is required")
		return
	}
	if newName == oldName {
		h.handleValidationError(w, "New name must differ from the current name")
		return
	}

	err := h.DB.Colleges().Rename(r.Context(), oldName, newName)
	if h.checkNotFound(err) {
		h.handleNotFound(w, "College not found")
		return
	}
	if errors.Is(err, database.ErrAlreadyExists) {
		h.handleConflict(w, "A college with that name already exists")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] PUT /api/v1/colleges: renamed %q -> %q", oldName, newName)
	h.writeJSON(w, http.StatusOK, map[string]string{"name": newName})
}

// HandleDeleteCollege handles DELETE /api/v1/colleges/{name}
func (h *Handler) HandleDeleteCollege(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	err := h.DB.Colleges().Delete(r.Context(), name)
	if h.checkNotFound(err) {
		h.handleNotFound(w, "College not found")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) collegeExists(r *http.Request, name string) (bool, error) {
	colleges, err := h.DB.Distances().Colleges(r.Context())
	if err != nil {
		return false, err
	}
	for _, c := range colleges {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}
