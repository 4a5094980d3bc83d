package employees

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cida-marmitas/marmitas/internal/masterdata/shared"
	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
	errs "github.com/cida-marmitas/marmitas/internal/shared"
)

type Handler struct {
	logger         *slog.Logger
	service        *Service
	validator      *validator.Validate
	maxImportBytes int64
}

func NewHandler(logger *slog.Logger, service *Service, maxImportBytes int64) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New(), maxImportBytes: maxImportBytes}
}

// MountRoutes registers employee routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Save)
	r.Patch("/status", h.SetStatus)
	r.Post("/import", h.Import)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := shared.FiltersFromRequest(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	list, err := h.service.List(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
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
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Salvo com sucesso!", ID: id})
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in shared.StatusRequest
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.SetActive(r.Context(), in.ID, *in.Active); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Status alterado."})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Funcionário excluído."})
}

// Import accepts a multipart upload in the "file" field.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.RespondError(w, r, h.logger, errs.Validation("Nenhum arquivo enviado."))
		return
	}
	defer file.Close()

	result, err := h.service.Import(r.Context(), file)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
