// Package shared holds request types reused across master data packages.
package shared

import (
	"net/http"
	"strings"

	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
)

// ListFilters represents the optional filters of list endpoints.
type ListFilters struct {
	CompanyID *int64
	SectorID  *int64
	Search    string
}

// FiltersFromRequest reads companyId, sectorId and search from the query string.
func FiltersFromRequest(r *http.Request) (ListFilters, error) {
	var f ListFilters
	var err error
	if f.CompanyID, err = httpx.OptionalInt64Query(r, "companyId"); err != nil {
		return f, err
	}
	if f.SectorID, err = httpx.OptionalInt64Query(r, "sectorId"); err != nil {
		return f, err
	}
	f.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	return f, nil
}

// StatusRequest toggles the active flag of a record.
type StatusRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Active *bool `json:"active" validate:"required"`
}
