package menus

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

const recentLimit = 30

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save publishes the menu of a date, replacing an existing one.
func (s *Service) Save(ctx context.Context, in SaveInput) (id int64, created bool, err error) {
	in.MainDish = strings.TrimSpace(in.MainDish)
	in.SideDishes = strings.TrimSpace(in.SideDishes)
	if in.ServiceDate.IsZero() || in.MainDish == "" {
		return 0, false, shared.Validation("Data e prato principal são obrigatórios.")
	}
	return s.repo.Upsert(ctx, in)
}

// GetByDate returns the menu of a date or an ErrMenuNotFound naming it.
func (s *Service) GetByDate(ctx context.Context, date civil.Date) (Menu, error) {
	m, err := s.repo.GetByDate(ctx, date)
	if errors.Is(err, shared.ErrNotFound) {
		return Menu{}, shared.NewError(shared.ErrMenuNotFound,
			"Nenhum cardápio cadastrado para %s.", date.Localized())
	}
	return m, err
}

func (s *Service) Recent(ctx context.Context) ([]Menu, error) {
	return s.repo.Recent(ctx, recentLimit)
}

// ByMonth lists the menus of a calendar month.
func (s *Service) ByMonth(ctx context.Context, year int, month time.Month) ([]Menu, error) {
	if month < time.January || month > time.December || year < 2000 || year > 2100 {
		return nil, shared.Validation("Mês ou ano inválido.")
	}
	first := civil.Date{Year: year, Month: month, Day: 1}
	last := civil.DateOf(first.Time().AddDate(0, 1, -1))
	return s.repo.Between(ctx, first, last)
}
