package employees

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cida-marmitas/marmitas/internal/masterdata/shared"
	errs "github.com/cida-marmitas/marmitas/internal/shared"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Employee, error) {
	return s.repo.List(ctx, filters)
}

// Save creates or updates an employee. RA/CPF must be unique.
func (s *Service) Save(ctx context.Context, in SaveInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.RaCpf = strings.TrimSpace(in.RaCpf)
	if in.Name == "" || in.RaCpf == "" || in.SectorID <= 0 {
		return 0, errs.Validation("Nome, RA/CPF e setor são obrigatórios.")
	}
	if in.ID == 0 {
		return s.repo.Create(ctx, in)
	}
	return in.ID, s.repo.Update(ctx, in)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Import loads a spreadsheet and upserts every employee by RA, creating
// missing companies and sectors. The whole file is one transaction.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	rows, skipped, err := ParseWorkbook(r)
	if err != nil {
		return ImportResult{}, err
	}
	batch := uuid.NewString()

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		companies := map[string]int64{}
		sectors := map[string]int64{}
		for _, row := range rows {
			companyID, ok := companies[row.Company]
			if !ok {
				if companyID, err = tx.FindOrCreateCompany(ctx, row.Company); err != nil {
					return fmt.Errorf("line %d: company: %w", row.Line, err)
				}
				companies[row.Company] = companyID
			}
			sectorKey := fmt.Sprintf("%d/%s", companyID, row.Sector)
			sectorID, ok := sectors[sectorKey]
			if !ok {
				if sectorID, err = tx.FindOrCreateSector(ctx, companyID, row.Sector); err != nil {
					return fmt.Errorf("line %d: sector: %w", row.Line, err)
				}
				sectors[sectorKey] = sectorID
			}
			if err := tx.UpsertByRA(ctx, row.Name, row.RaCpf, sectorID); err != nil {
				return fmt.Errorf("line %d: employee: %w", row.Line, err)
			}
		}
		return nil
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("employee import rolled back", slog.String("batch_id", batch), slog.Any("error", err))
		}
		return ImportResult{}, fmt.Errorf("employees: import: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("employee import finished",
			slog.String("batch_id", batch),
			slog.Int("processed", len(rows)),
			slog.Int("skipped", skipped))
	}
	return ImportResult{
		BatchID:   batch,
		Processed: len(rows),
		Skipped:   skipped,
		Message:   fmt.Sprintf("Processamento concluído! %d funcionários processados.", len(rows)),
	}, nil
}
