package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenIssuer
	clock  civil.Clock
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenIssuer, clock civil.Clock) *Service {
	return &Service{repo: repo, tokens: tokens, clock: clock}
}

// LoginEmployee identifies an active employee by RA/CPF. Companies that do not
// work weekends block logins on Saturday and Sunday in the reference zone.
func (s *Service) LoginEmployee(ctx context.Context, raCpf string) (*Session, error) {
	raCpf = strings.TrimSpace(raCpf)
	if raCpf == "" {
		return nil, shared.Validation("Informe o RA ou CPF.")
	}
	emp, err := s.repo.FindActiveEmployee(ctx, raCpf)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewError(shared.ErrNotFound, "Funcionário não encontrado.")
		}
		return nil, fmt.Errorf("auth: find employee: %w", err)
	}
	if isWeekend(s.clock.Now()) && !emp.WorksWeekends {
		return nil, shared.NewError(shared.ErrWeekendClosed, "Empresa fechada para pedidos no fim de semana.")
	}
	token, expires, err := s.tokens.Issue(Principal{
		ID:        emp.ID,
		Name:      emp.Name,
		Role:      RoleEmployee,
		SectorID:  emp.SectorID,
		CompanyID: emp.CompanyID,
	})
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, Role: RoleEmployee, Name: emp.Name, Employee: emp}, nil
}

// LoginStaff validates login/password credentials of a system user.
func (s *Service) LoginStaff(ctx context.Context, login, password string) (*Session, error) {
	user, err := s.repo.FindUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewError(shared.ErrInvalidCredentials, "Login ou senha incorretos.")
		}
		return nil, fmt.Errorf("auth: find user: %w", err)
	}
	if !user.Active {
		return nil, shared.NewError(shared.ErrInvalidCredentials, "Login ou senha incorretos.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.NewError(shared.ErrInvalidCredentials, "Login ou senha incorretos.")
	}
	p := Principal{ID: user.ID, Name: user.Name, Role: user.Role}
	if user.Role == RoleClient {
		if user.CompanyID == nil {
			return nil, shared.NewError(shared.ErrForbidden, "Usuário cliente sem empresa vinculada.")
		}
		p.CompanyID = *user.CompanyID
	}
	token, expires, err := s.tokens.Issue(p)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, Role: user.Role, Name: user.Name, CompanyID: user.CompanyID}, nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
