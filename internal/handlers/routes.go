package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /api/v1 route tree
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.HandleHealthCheck)

	r.Route("/colleges", func(r chi.Router) {
		r.Get("/", h.HandleListColleges)
		r.Route("/{name}", func(r chi.Router) {
			r.Put("/", h.HandleRenameCollege)
			r.Delete("/", h.HandleDeleteCollege)
			r.Get("/distances", h.HandleListCollegeDistances)
			r.Get("/souvenirs", h.HandleListSouvenirs)
			r.Post("/souvenirs", h.HandleAddSouvenir)
			r.Put("/souvenirs/{souvenir}", h.HandleUpdateSouvenir)
			r.Delete("/souvenirs/{souvenir}", h.HandleDeleteSouvenir)
		})
	})

	r.Put("/distances", h.HandleUpsertDistance)
	r.Delete("/distances", h.HandleDeleteDistance)

	r.Post("/import/distances", h.HandleImportDistances)
	r.Post("/import/souvenirs", h.HandleImportSouvenirs)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", h.HandlePlanTrip)
		r.Get("/{id}", h.HandleGetTrip)
		r.Delete("/{id}", h.HandleDeleteTrip)
		r.Post("/{id}/purchases", h.HandleAddPurchase)
	})

	return r
}
