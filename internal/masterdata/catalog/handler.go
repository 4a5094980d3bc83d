package catalog

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

// MountSizes registers size routes.
func (h *Handler) MountSizes(r chi.Router) {
	r.Get("/", h.listSizes)
	r.Post("/", h.saveSize)
	r.Patch("/status", h.setSizeStatus)
}

// MountExtras registers extra routes.
func (h *Handler) MountExtras(r chi.Router) {
	r.Get("/", h.listExtras)
	r.Post("/", h.saveExtra)
	r.Patch("/status", h.setExtraStatus)
	r.Delete("/{id}", h.deleteExtra)
}

func (h *Handler) listSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.service.ListSizes(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sizes)
}

func (h *Handler) saveSize(w http.ResponseWriter, r *http.Request) {
	var in SizeInput
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	id, err := h.service.SaveSize(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Salvo com sucesso.", ID: id})
}

func (h *Handler) setSizeStatus(w http.ResponseWriter, r *http.Request) {
	var in mdshared.StatusRequest
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.SetSizeActive(r.Context(), in.ID, *in.Active); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Status atualizado."})
}

func (h *Handler) listExtras(w http.ResponseWriter, r *http.Request) {
	extras, err := h.service.ListExtras(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, extras)
}

func (h *Handler) saveExtra(w http.ResponseWriter, r *http.Request) {
	var in ExtraInput
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	id, err := h.service.SaveExtra(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Salvo com sucesso.", ID: id})
}

func (h *Handler) setExtraStatus(w http.ResponseWriter, r *http.Request) {
	var in mdshared.StatusRequest
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.SetExtraActive(r.Context(), in.ID, *in.Active); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Status atualizado."})
}

func (h *Handler) deleteExtra(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.DeleteExtra(r.Context(), id); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Opção excluída."})
}
