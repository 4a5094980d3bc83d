package reports

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Recorder counts report exports.
type Recorder interface {
	ObserveReportExport(format string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveReportExport(string) {}

// Service builds the closing report and its exports within a caller's scope.
type Service struct {
	repo    Repository
	metrics Recorder
	logger  *slog.Logger
}

// NewService constructs a reports service. metrics may be nil.
func NewService(repo Repository, metrics Recorder, logger *slog.Logger) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, metrics: metrics, logger: logger}
}

// Tree loads the rows visible to scope and builds the rollup.
func (s *Service) Tree(ctx context.Context, f Filters, scope Scope) ([]*CompanyNode, error) {
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return nil, shared.Validation("Data final anterior à data inicial.")
	}
	rows, err := s.repo.Rows(ctx, scope.Apply(f))
	if err != nil {
		return nil, fmt.Errorf("load report rows: %w", err)
	}
	return Build(rows), nil
}

// Export writes the rollup to w in the given format.
func (s *Service) Export(ctx context.Context, w io.Writer, format string, f Filters, scope Scope) error {
	tree, err := s.Tree(ctx, f, scope)
	if err != nil {
		return err
	}
	switch format {
	case FormatXLSX:
		err = WriteWorkbook(w, tree)
	case FormatCSV:
		err = WriteCSV(w, tree)
	default:
		return shared.Validation("Formato de exportação inválido.")
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	s.metrics.ObserveReportExport(format)
	s.logger.InfoContext(ctx, "report exported", slog.String("format", format), slog.Int("companies", len(tree)))
	return nil
}
