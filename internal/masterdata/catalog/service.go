package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cida-marmitas/marmitas/internal/platform/cache"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Service manages sizes and extras. Active listings are read through the
// versioned cache and every write bumps its version.
type Service struct {
	repo   Repository
	cache  *cache.Versioned
	logger *slog.Logger
}

func NewService(repo Repository, c *cache.Versioned, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, logger: logger}
}

func (s *Service) ListSizes(ctx context.Context) ([]Size, error) {
	return s.repo.ListSizes(ctx, false)
}

// ActiveSizes returns sizes offered to employees.
func (s *Service) ActiveSizes(ctx context.Context) ([]Size, error) {
	var sizes []Size
	err := s.cache.FetchJSON(ctx, &sizes, func(ctx context.Context) (any, error) {
		return s.repo.ListSizes(ctx, true)
	}, "sizes", "active")
	if err != nil {
		return nil, fmt.Errorf("catalog: active sizes: %w", err)
	}
	return sizes, nil
}

func (s *Service) SaveSize(ctx context.Context, in SizeInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, shared.Validation("Nome do tamanho é obrigatório.")
	}
	if in.Price.IsNegative() {
		return 0, shared.Validation("Preço não pode ser negativo.")
	}
	in.Price = in.Price.Round(2)
	id := in.ID
	var err error
	if id == 0 {
		id, err = s.repo.CreateSize(ctx, in)
	} else {
		err = s.repo.UpdateSize(ctx, in)
	}
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *Service) SetSizeActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetSizeActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ListExtras(ctx context.Context) ([]Extra, error) {
	return s.repo.ListExtras(ctx, false)
}

// ActiveExtras returns active extras ordered by display order.
func (s *Service) ActiveExtras(ctx context.Context) ([]Extra, error) {
	var extras []Extra
	err := s.cache.FetchJSON(ctx, &extras, func(ctx context.Context) (any, error) {
		return s.repo.ListExtras(ctx, true)
	}, "extras", "active")
	if err != nil {
		return nil, fmt.Errorf("catalog: active extras: %w", err)
	}
	return extras, nil
}

func (s *Service) SaveExtra(ctx context.Context, in ExtraInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Kind = strings.TrimSpace(in.Kind)
	if in.Name == "" || in.Kind == "" {
		return 0, shared.Validation("Nome e tipo da opção são obrigatórios.")
	}
	id := in.ID
	var err error
	if id == 0 {
		id, err = s.repo.CreateExtra(ctx, in)
	} else {
		err = s.repo.UpdateExtra(ctx, in)
	}
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *Service) SetExtraActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetExtraActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteExtra(ctx context.Context, id int64) error {
	if err := s.repo.DeleteExtra(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate never fails the write; a stale entry expires with its TTL.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("catalog cache bump failed", slog.Any("error", err))
	}
}
