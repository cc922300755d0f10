package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

// SouvenirRequest is the body for adding or repricing a souvenir
type SouvenirRequest struct {
	Name  string   `json:"souvenir"`
	Price *float64 `json:"price"`
}

// HandleListSouvenirs handles GET /api/v1/colleges/{name}/souvenirs
func (h *Handler) HandleListSouvenirs(w http.ResponseWriter, r *http.Request) {
	college := pathParam(r, "name")

	souvenirs, err := h.DB.Souvenirs().List(r.Context(), college)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	if souvenirs == nil {
		souvenirs = []models.Souvenir{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"college":   college,
		"souvenirs": souvenirs,
	})
}

// HandleAddSouvenir handles POST /api/v1/colleges/{name}/souvenirs
func (h *Handler) HandleAddSouvenir(w http.ResponseWriter, r *http.Request) {
	college := pathParam(r, "name")

	var req SouvenirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.handleValidationError(w, "Souvenir name is required")
		return
	}
	if req.Price == nil || *req.Price < 0 {
		h.handleValidationError(w, "A non-negative price is required")
		return
	}

	s := &models.Souvenir{College: college, Name: name, Price: *req.Price}
	err := h.DB.Souvenirs().Add(r.Context(), s)
	if errors.Is(err, database.ErrAlreadyExists) {
		h.handleConflict(w, "Souvenir already exists for this college")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, s)
}

// HandleUpdateSouvenir handles PUT /api/v1/colleges/{name}/souvenirs/{souvenir}
func (h *Handler) HandleUpdateSouvenir(w http.ResponseWriter, r *http.Request) {
	college := pathParam(r, "name")
	name := pathParam(r, "souvenir")

	var req SouvenirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.Price == nil || *req.Price < 0 {
		h.handleValidationError(w, "A non-negative price is required")
		return
	}

	err := h.DB.Souvenirs().UpdatePrice(r.Context(), college, name, *req.Price)
	if h.checkNotFound(err) {
		h.handleNotFound(w, "Souvenir not found")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, models.Souvenir{College: college, Name: name, Price: *req.Price})
}

// HandleDeleteSouvenir handles DELETE /api/v1/colleges/{name}/souvenirs/{souvenir}
func (h *Handler) HandleDeleteSouvenir(w http.ResponseWriter, r *http.Request) {
	err := h.DB.Souvenirs().Delete(r.Context(), pathParam(r, "name"), pathParam(r, "souvenir"))
	if h.checkNotFound(err) {
		h.handleNotFound(w, "Souvenir not found")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
