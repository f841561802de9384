package company

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/company-settings", h.Get)
	r.Post("/company-settings", h.Save)
}
