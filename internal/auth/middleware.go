package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cida-marmitas/marmitas/internal/platform/httpx"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// Middleware guards routes with bearer tokens.
type Middleware struct {
	Tokens *TokenIssuer
	Logger *slog.Logger
}

// Authenticate requires a valid bearer token and stores its principal.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			httpx.RespondError(w, r, m.Logger, shared.NewError(shared.ErrUnauthorized, "Acesso negado. Token não fornecido."))
			return
		}
		p, err := m.Tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			httpx.RespondError(w, r, m.Logger, shared.NewError(shared.ErrUnauthorized, "Token inválido ou expirado."))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
	})
}

// RequireRoles ensures the authenticated principal has one of the roles.
func (m Middleware) RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, r, m.Logger, shared.ErrUnauthorized)
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.RespondError(w, r, m.Logger, shared.ErrForbidden)
		})
	}
}
