package menus

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers menu routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Recent)
	r.Post("/", h.Save)
	r.Get("/month", h.ByMonth)
	r.Get("/{date}", h.ByDate)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var in SaveInput
	if err := httpx.Bind(r, h.validator, &in); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	id, created, err := h.service.Save(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if created {
		httpx.JSON(w, http.StatusCreated, httpx.Message{Message: "Cardápio cadastrado!", ID: id})
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Cardápio atualizado com sucesso!", ID: id})
}

func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	menus, err := h.service.Recent(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, menus)
}

func (h *Handler) ByMonth(w http.ResponseWriter, r *http.Request) {
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	if errM != nil || errY != nil {
		httpx.RespondError(w, r, h.logger, shared.Validation("Informe mês e ano."))
		return
	}
	menus, err := h.service.ByMonth(r.Context(), year, time.Month(month))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, menus)
}

func (h *Handler) ByDate(w http.ResponseWriter, r *http.Request) {
	date, err := civil.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, shared.Validation("Data inválida."))
		return
	}
	menu, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, menu)
}
