package companies

import (
	"context"
	"strings"

	"github.com/cida-marmitas/marmitas/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Option, error) {
	return s.repo.ListActive(ctx)
}

// Save creates or updates a company and returns its id.
func (s *Service) Save(ctx context.Context, in SaveInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, shared.Validation("Nome da empresa é obrigatório.")
	}
	if in.ID == 0 {
		return s.repo.Create(ctx, in)
	}
	if in.ID < 0 {
		return 0, shared.Validation("ID inválido.")
	}
	return in.ID, s.repo.Update(ctx, in)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return shared.Validation("ID inválido.")
	}
	return s.repo.SetActive(ctx, id, active)
}
