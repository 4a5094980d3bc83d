package orders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
)

func employeeRouter(svc *Service) http.Handler {
	h := NewHandler(nil, svc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := auth.Principal{ID: employeeID, Role: auth.RoleEmployee, SectorID: sectorID}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithPrincipal(r.Context(), p)))
		})
	})
	h.MountEmployeeRoutes(r)
	r.Route("/admin", h.MountAdminRoutes)
	return r
}

func TestOrderDataOutsideWindowRespondsBlocked(t *testing.T) {
	router := employeeRouter(newFixture().service(at(12, 0)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order-data", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.True(t, problem.Blocked)
	assert.Contains(t, problem.Detail, "08:00 às 10:00")
}

func TestSubmitThenDuplicateOverHTTP(t *testing.T) {
	router := employeeRouter(newFixture().service(at(9, 0)))

	post := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"sizeId":1,"extraIds":[10]}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	first := post()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	var msg httpx.Message
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &msg))
	assert.Equal(t, "Pedido realizado!", msg.Message)
	assert.Positive(t, msg.ID)

	second := post()
	assert.Equal(t, http.StatusConflict, second.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &problem))
	assert.True(t, problem.Blocked)
	assert.Contains(t, problem.Detail, "20/05/2025")
}

func TestOrderDataIgnoresSectorClaimAfterTransfer(t *testing.T) {
	f := newFixture()
	f.repo.sectors[employeeID] = 8
	router := employeeRouter(f.service(at(9, 0)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order-data", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.True(t, problem.Blocked)
	assert.Contains(t, problem.Detail, "não possui horários")
}

func TestSubmitRequiresSize(t *testing.T) {
	router := employeeRouter(newFixture().service(at(9, 0)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"note":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminPreviewRequiresSector(t *testing.T) {
	router := employeeRouter(newFixture().service(time.Date(2025, 5, 20, 9, 0, 0, 0, brt)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/order-data", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/order-data?sectorId=7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"allowed":true`)
}
