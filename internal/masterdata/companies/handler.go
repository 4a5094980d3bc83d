package companies

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	mdshared "github.com/cida-marmitas/marmitas/internal/masterdata/shared"
	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/options", h.Options)
	r.Post("/", h.Save)
	r.Patch("/status", h.SetStatus)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, companies)
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ListActive(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, options)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var in SaveInput
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	id, err := h.service.Save(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Salvo com sucesso.", ID: id})
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in mdshared.StatusRequest
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.SetActive(r.Context(), in.ID, *in.Active); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Status atualizado."})
}
