package company

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/navette-vtc/navette/internal/platform/db"
	"github.com/navette-vtc/navette/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("get company profile failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.ValidatorProblem(w, err)
		return
	}

	profile := req.Profile()
	if err := h.service.Save(r.Context(), profile); err != nil {
		h.logger.Error("save company profile failed", slog.Any("error", err))
		h.respondError(w, err)
		return
	}

	saved, err := h.service.Get(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTariff):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Tariff", err.Error())
	case errors.Is(err, db.ErrUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Storage Unavailable", err.Error())
	default:
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
