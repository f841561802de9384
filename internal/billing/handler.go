package billing

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/navette-vtc/navette/internal/company"
	"github.com/navette-vtc/navette/internal/observability"
	"github.com/navette-vtc/navette/internal/platform/db"
	"github.com/navette-vtc/navette/internal/platform/httpx"
)

// PrintableEncoder renders a document into a downloadable artifact. The
// handler has no opinion on the binary format.
type PrintableEncoder interface {
	EncodeDocument(doc *Document, profile company.Profile) (data []byte, filename string, err error)
}

type Handler struct {
	logger         *slog.Logger
	service        *Service
	companyService *company.Service
	encoder        PrintableEncoder
	metrics        *observability.Metrics
	validate       *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, companyService *company.Service, encoder PrintableEncoder, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		companyService: companyService,
		encoder:        encoder,
		metrics:        metrics,
		validate:       validator.New(),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.ValidatorProblem(w, err)
		return
	}

	// The current profile is fetched per call and passed in, so the frozen
	// tariff snapshot is taken here and nowhere else.
	profile, err := h.companyService.Get(r.Context())
	if err != nil {
		h.logger.Error("load company profile failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}

	doc, err := h.service.CreateQuote(r.Context(), req, Tariffs{
		TransferRatePerKm: profile.TransferRatePerKm,
		HourlyRate:        profile.HourlyRate,
	})
	if err != nil {
		h.logger.Warn("create quote rejected", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	h.metrics.DocumentCreated()
	httpx.JSON(w, http.StatusCreated, NewDocumentResponse(doc))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewDocumentResponse(doc))
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.service.ConvertToInvoice(r.Context(), id)
	if err != nil {
		h.logger.Warn("convert to invoice rejected", slog.String("id", id), slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	h.metrics.DocumentConverted()
	httpx.JSON(w, http.StatusOK, NewDocumentResponse(doc))
}

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListQuotes(r.Context())
	if err != nil {
		h.logger.Error("list quotes failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(docs))
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListInvoices(r.Context())
	if err != nil {
		h.logger.Error("list invoices failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(docs))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	profile, err := h.companyService.Get(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	data, filename, err := h.encoder.EncodeDocument(doc, profile)
	if err != nil {
		h.logger.Error("encode document failed", slog.String("id", doc.ID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.ValidationProblem(w, verr.Error(), verr.Fields)
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrAlreadyConverted):
		httpx.Problem(w, http.StatusConflict, "Already Converted", err.Error())
	case errors.Is(err, ErrInvalidServiceParameter), errors.Is(err, ErrInvalidTariff), errors.Is(err, company.ErrInvalidTariff):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, db.ErrUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Storage Unavailable", err.Error())
	default:
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func toResponses(docs []Document) []DocumentResponse {
	resp := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, NewDocumentResponse(&docs[i]))
	}
	return resp
}
