package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/models"
	"college-trip-planner/internal/planner"
)

// PlanTripRequest is the body of POST /api/v1/trips.
// With All set, the trip starts at Start (or Colleges[0]) and visits every known college.
type PlanTripRequest struct {
	Colleges []string `json:"colleges"`
	Start    string   `json:"start,omitempty"`
	All      bool     `json:"all,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
}

// PurchaseRequest is the body of POST /api/v1/trips/{id}/purchases
type PurchaseRequest struct {
	College  string `json:"college"`
	Souvenir string `json:"souvenir"`
	Quantity int    `json:"quantity"`
}

// TripResponse is a planned trip with its purchases
type TripResponse struct {
	ID             string             `json:"id"`
	Trip           *models.TripResult `json:"trip"`
	Purchases      []models.Purchase  `json:"purchases"`
	SpentByCollege map[string]float64 `json:"spent_by_college"`
	TotalSpent     float64            `json:"total_spent"`
	ExpiresAt      time.Time          `json:"expires_at"`
}

func newTripResponse(s *TripSession) TripResponse {
	purchases := s.Purchases
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	return TripResponse{
		ID:             s.ID,
		Trip:           s.Trip,
		Purchases:      purchases,
		SpentByCollege: s.SpentByCollege(),
		TotalSpent:     s.TotalSpent(),
		ExpiresAt:      s.ExpiresAt,
	}
}

// HandlePlanTrip handles POST /api/v1/trips
func (h *Handler) HandlePlanTrip(w http.ResponseWriter, r *http.Request) {
	var req PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[HTTP] POST /api/v1/trips: invalid_json err=%v", err)
		h.handleValidationError(w, "Invalid request body")
		return
	}

	strategy, err := planner.ParseStrategy(req.Strategy)
	if err != nil {
		h.handleValidationError(w, err.Error())
		return
	}

	colleges := req.Colleges
	if req.All {
		colleges, err = h.allCollegesFrom(r, req)
		if err != nil {
			h.handlePlanningError(w, err)
			return
		}
	}

	log.Printf("[HTTP] POST /api/v1/trips: colleges=%d strategy=%s all=%v", len(colleges), strategy, req.All)

	result, err := h.Planner.PlanTrip(r.Context(), &planner.TripRequest{
		Colleges: colleges,
		Strategy: strategy,
	})
	if err != nil {
		log.Printf("[HTTP] POST /api/v1/trips: planning_failed err=%v", err)
		h.handlePlanningError(w, err)
		return
	}

	session := h.Trips.Create(result)
	h.writeJSON(w, http.StatusCreated, newTripResponse(session))
}

// allCollegesFrom orders every known college after the requested start
func (h *Handler) allCollegesFrom(r *http.Request, req PlanTripRequest) ([]string, error) {
	start := strings.TrimSpace(req.Start)
	if start == "" && len(req.Colleges) > 0 {
		start = req.Colleges[0]
	}
	if start == "" {
		return nil, planner.ErrNoColleges
	}

	known, err := h.DB.Distances().Colleges(r.Context())
	if err != nil {
		return nil, err
	}

	colleges := []string{start}
	for _, c := range known {
		if c != start {
			colleges = append(colleges, c)
		}
	}
	return colleges, nil
}

// HandleGetTrip handles GET /api/v1/trips/{id}
func (h *Handler) HandleGetTrip(w http.ResponseWriter, r *http.Request) {
	session := h.Trips.Get(pathParam(r, "id"))
	if session == nil {
		h.handleNotFound(w, "Trip not found or expired")
		return
	}
	h.writeJSON(w, http.StatusOK, newTripResponse(session))
}

// HandleDeleteTrip handles DELETE /api/v1/trips/{id}
func (h *Handler) HandleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if !h.Trips.Delete(pathParam(r, "id")) {
		h.handleNotFound(w, "Trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddPurchase handles POST /api/v1/trips/{id}/purchases
func (h *Handler) HandleAddPurchase(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	souvenir, err := h.DB.Souvenirs().Get(r.Context(), req.College, req.Souvenir)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	if souvenir == nil {
		h.handleNotFound(w, "Souvenir not found")
		return
	}

	var response TripResponse
	found, err := h.Trips.Update(id, func(s *TripSession) error {
		if err := s.AddPurchase(models.Purchase{
			College:  souvenir.College,
			Souvenir: souvenir.Name,
			Price:    souvenir.Price,
			Quantity: req.Quantity,
		}); err != nil {
			return err
		}
		response = newTripResponse(s)
		response.Purchases = append([]models.Purchase(nil), s.Purchases...)
		return nil
	})
	if !found {
		h.handleNotFound(w, "Trip not found or expired")
		return
	}
	if errors.Is(err, ErrCollegeNotOnTrip) || errors.Is(err, ErrQuantity) {
		h.handleValidationError(w, err.Error())
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] POST /api/v1/trips/%s/purchases: %s x%d at %s total=%.2f", id, souvenir.Name, req.Quantity, souvenir.College, response.TotalSpent)
	h.writeJSON(w, http.StatusOK, response)
}
