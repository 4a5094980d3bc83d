package orders

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Handler exposes the ordering screen and the kitchen's order management over HTTP.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs an orders handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountEmployeeRoutes registers the ordering screen routes. The router must
// already be guarded by the EMPLOYEE role.
func (h *Handler) MountEmployeeRoutes(r chi.Router) {
	r.Get("/order-data", h.InitialData)
	r.Post("/orders", h.Submit)
}

// MountAdminRoutes registers the kitchen's order management routes under
// the admin router.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListDay)
		r.Post("/", h.CreateManual)
		r.Get("/{id}", h.Details)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	r.Get("/summary", h.Summary)
	r.Get("/order-data", h.Preview)
}

func (h *Handler) InitialData(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, h.logger, shared.ErrUnauthorized)
		return
	}
	data, err := h.service.EmployeeOrderData(r.Context(), p.ID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, h.logger, shared.ErrUnauthorized)
		return
	}
	var req SubmitRequest
	if err := httpx.Bind(r, h.validator, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	req.EmployeeID = p.ID
	result, err := h.service.SubmitOrder(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, httpx.Message{Message: result.Message, ID: result.OrderID})
}

func (h *Handler) ListDay(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateQuery(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	list, err := h.service.ListDayOrders(r.Context(), date)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateQuery(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	summary, err := h.service.ProductionSummary(r.Context(), date)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	order, err := h.service.GetOrderDetails(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	var req UpdateRequest
	if err := httpx.Bind(r, h.validator, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.UpdateOrder(r.Context(), id, req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Pedido atualizado com sucesso!", ID: id})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Pedido excluído com sucesso!"})
}

func (h *Handler) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req ManualRequest
	if err := httpx.Bind(r, h.validator, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	result, err := h.service.CreateManualOrder(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, httpx.Message{Message: result.Message, ID: result.OrderID})
}

type previewResponse struct {
	eligibility.Decision
	Data *InitialData `json:"data,omitempty"`
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	sectorID, err := httpx.OptionalInt64Query(r, "sectorId")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	if sectorID == nil {
		httpx.RespondError(w, r, h.logger, shared.Validation("Informe o setor."))
		return
	}
	decision, data, err := h.service.Preview(r.Context(), *sectorID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, previewResponse{Decision: decision, Data: data})
}

// dateQuery reads ?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) dateQuery(r *http.Request) (civil.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.service.Today(), nil
	}
	date, err := civil.ParseDate(raw)
	if err != nil {
		return civil.Date{}, shared.Validation("Data inválida.")
	}
	return date, nil
}
