package sectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Service manages sectors and their ordering windows. It also serves the
// sector configuration read by the ordering flow; nothing here is cached.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Sector, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListWithWindows(ctx context.Context) ([]WithWindows, error) {
	return s.repo.ListWithWindows(ctx)
}

// Save creates or updates a sector. The cutoff is stored canonicalized.
func (s *Service) Save(ctx context.Context, in SaveInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CompanyID <= 0 {
		return 0, shared.Validation("Nome e Empresa são obrigatórios.")
	}
	cutoff := civil.DefaultCutoff
	if raw := strings.TrimSpace(in.VisibilityCutoff); raw != "" {
		parsed, err := civil.ParseTimeOfDay(raw)
		if err != nil {
			return 0, shared.Validation("Horário de corte inválido: %s.", raw)
		}
		cutoff = parsed
	}
	sector := Sector{ID: in.ID, Name: name, CompanyID: in.CompanyID, VisibilityCutoff: cutoff}
	if in.ID == 0 {
		return s.repo.Create(ctx, sector)
	}
	return in.ID, s.repo.Update(ctx, sector)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddWindow canonicalizes both bounds and rejects inverted ranges.
func (s *Service) AddWindow(ctx context.Context, in WindowInput) (int64, error) {
	start, err := civil.ParseTimeOfDay(in.Start)
	if err != nil {
		return 0, shared.Validation("Horário inicial inválido.")
	}
	end, err := civil.ParseTimeOfDay(in.End)
	if err != nil {
		return 0, shared.Validation("Horário final inválido.")
	}
	if end.Before(start) {
		return 0, shared.Validation("O horário inicial deve ser anterior ao final.")
	}
	return s.repo.AddWindow(ctx, eligibility.Window{
		SectorID: in.SectorID,
		Start:    start,
		End:      end,
		Label:    strings.TrimSpace(in.Label),
	})
}

func (s *Service) RemoveWindow(ctx context.Context, id int64) error {
	return s.repo.RemoveWindow(ctx, id)
}

// Windows returns the sector's configured windows.
func (s *Service) Windows(ctx context.Context, sectorID int64) ([]eligibility.Window, error) {
	windows, err := s.repo.Windows(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("sectors: windows: %w", err)
	}
	return windows, nil
}

// Cutoff returns the sector's visibility cutoff, falling back to the default.
func (s *Service) Cutoff(ctx context.Context, sectorID int64) (civil.TimeOfDay, error) {
	cutoff, err := s.repo.Cutoff(ctx, sectorID)
	if err != nil {
		return "", fmt.Errorf("sectors: cutoff: %w", err)
	}
	if cutoff == "" {
		return civil.DefaultCutoff, nil
	}
	return cutoff, nil
}
