package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cida-marmitas/marmitas/internal/auth"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
	cost int
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// Save validates and stores a user. ADMIN accounts never carry a company.
func (s *Service) Save(ctx context.Context, in SaveInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Login = strings.TrimSpace(in.Login)
	if in.Name == "" || in.Login == "" || in.Role == "" {
		return 0, shared.Validation("Preencha nome, login e perfil.")
	}
	switch in.Role {
	case auth.RoleAdmin:
		in.CompanyID = nil
	case auth.RoleClient:
		if in.CompanyID == nil || *in.CompanyID <= 0 {
			return 0, shared.Validation("Se o perfil for CLIENT, selecione uma empresa.")
		}
	default:
		return 0, shared.Validation("Perfil inválido.")
	}

	taken, err := s.repo.LoginTaken(ctx, in.Login, in.ID)
	if err != nil {
		return 0, fmt.Errorf("users: check login: %w", err)
	}
	if taken {
		return 0, shared.NewError(shared.ErrDuplicate, "Este login já está em uso.")
	}

	password := strings.TrimSpace(in.Password)
	if in.ID == 0 {
		if password == "" {
			return 0, shared.Validation("Senha é obrigatória para novos usuários.")
		}
		hash, err := s.hash(password)
		if err != nil {
			return 0, err
		}
		return s.repo.Create(ctx, in, hash)
	}

	var hash *string
	if password != "" {
		h, err := s.hash(password)
		if err != nil {
			return 0, err
		}
		hash = &h
	}
	return in.ID, s.repo.Update(ctx, in, hash)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) hash(password string) (string, error) {
	if len(password) < 6 {
		return "", shared.Validation("A senha deve ter pelo menos 6 caracteres.")
	}
	raw, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("users: hash password: %w", err)
	}
	return string(raw), nil
}
