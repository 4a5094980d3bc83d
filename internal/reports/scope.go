package reports

import (
	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Scope restricts which companies a caller may see. A nil CompanyID means
// every company.
type Scope struct {
	CompanyID *int64
}

// ScopeFor derives the report scope from the authenticated caller. Clients
// are pinned to their own company.
func ScopeFor(p auth.Principal) (Scope, error) {
	switch p.Role {
	case auth.RoleAdmin:
		return Scope{}, nil
	case auth.RoleClient:
		if p.CompanyID <= 0 {
			return Scope{}, shared.NewError(shared.ErrForbidden, "Usuário sem empresa vinculada.")
		}
		id := p.CompanyID
		return Scope{CompanyID: &id}, nil
	default:
		return Scope{}, shared.ErrForbidden
	}
}

// Apply returns the filters with the scope's company taking precedence over
// any requested company.
func (s Scope) Apply(f Filters) Filters {
	if s.CompanyID != nil {
		id := *s.CompanyID
		f.CompanyID = &id
	}
	return f
}
