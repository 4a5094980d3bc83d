// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/cida-marmitas/marmitas/internal/shared"
)

const genericMessage = "Erro interno. Tente novamente em instantes."

type errorMapping struct {
	kind   error
	status int
	title  string
	detail string
}

// Ordered: the first matching kind wins.
var mappings = []errorMapping{
	{shared.ErrTimeWindowDenied, http.StatusForbidden, "Time Window Denied", "Fora do horário de pedidos."},
	{shared.ErrNoWindowsConfigured, http.StatusForbidden, "No Windows Configured", "Seu setor não possui horários cadastrados."},
	{shared.ErrWeekendClosed, http.StatusForbidden, "Closed", "Empresa fechada para pedidos no fim de semana."},
	{shared.ErrDuplicateOrder, http.StatusConflict, "Duplicate Order", "Você já fez um pedido para esta data."},
	{shared.ErrMenuNotFound, http.StatusNotFound, "Menu Not Found", "Nenhum cardápio cadastrado para a data."},
	{shared.ErrReferentialConflict, http.StatusConflict, "Referential Conflict", "Registro possui vínculos e não pode ser excluído."},
	{shared.ErrDuplicate, http.StatusConflict, "Duplicate", "Registro duplicado."},
	{shared.ErrValidation, http.StatusBadRequest, "Validation Failed", "Dados inválidos."},
	{shared.ErrNotFound, http.StatusNotFound, "Not Found", "Registro não encontrado."},
	{shared.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid Credentials", "Credenciais inválidas."},
	{shared.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized", "Acesso negado. Faça login novamente."},
	{shared.ErrForbidden, http.StatusForbidden, "Forbidden", "Você não tem permissão para esta operação."},
}

// RespondError maps domain errors to HTTP responses using RFC7807.
// Unknown errors are logged and reduced to a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, m := range mappings {
		if !errors.Is(err, m.kind) {
			continue
		}
		detail := shared.UserMessage(err)
		if detail == "" {
			detail = m.detail
		}
		JSON(w, m.status, ProblemDetail{
			Title:   m.title,
			Status:  m.status,
			Detail:  detail,
			Blocked: shared.Blocking(err),
		})
		return
	}
	if logger != nil {
		attrs := []any{slog.Any("error", err)}
		if r != nil {
			attrs = append(attrs,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}
		logger.Error("unhandled error", attrs...)
	}
	Problem(w, http.StatusInternalServerError, "Internal Error", genericMessage)
}
