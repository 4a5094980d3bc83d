package reports

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Handler serves the closing report tree and its exports.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a reports handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes. Callers must be authenticated.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Tree)
	r.Get("/xlsx", h.ExportXLSX)
	r.Get("/csv", h.ExportCSV)
}

func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	filters, scope, err := h.parse(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	tree, err := h.service.Tree(r.Context(), filters, scope)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tree)
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, FormatXLSX, ContentType, Filename)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, FormatCSV, "text/csv; charset=utf-8", strings.TrimSuffix(Filename, ".xlsx")+".csv")
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format, contentType, filename string) {
	filters, scope, err := h.parse(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf, format, filters, scope); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil && h.logger != nil {
		h.logger.Error("stream report", slog.String("format", format), slog.Any("error", err))
	}
}

func (h *Handler) parse(r *http.Request) (Filters, Scope, error) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return Filters{}, Scope{}, shared.ErrUnauthorized
	}
	scope, err := ScopeFor(p)
	if err != nil {
		return Filters{}, Scope{}, err
	}
	var f Filters
	if f.CompanyID, err = httpx.OptionalInt64Query(r, "companyId"); err != nil {
		return Filters{}, Scope{}, err
	}
	if f.SectorID, err = httpx.OptionalInt64Query(r, "sectorId"); err != nil {
		return Filters{}, Scope{}, err
	}
	if f.DateFrom, err = optionalDate(r, "dateFrom"); err != nil {
		return Filters{}, Scope{}, err
	}
	if f.DateTo, err = optionalDate(r, "dateTo"); err != nil {
		return Filters{}, Scope{}, err
	}
	return f, scope, nil
}

func optionalDate(r *http.Request, name string) (*civil.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return nil, shared.Validation("Parâmetro %s inválido.", name)
	}
	return &d, nil
}
