package billing

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/devis", h.Create)
	r.Get("/devis", h.ListQuotes)
	r.Get("/devis/{id}", h.Get)
	r.Get("/devis/{id}/pdf", h.Download)
	r.Put("/devis/{id}/convert-to-facture", h.Convert)
	r.Get("/factures", h.ListInvoices)
}
