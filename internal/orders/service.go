package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
	"github.com/cida-marmitas/marmitas/internal/masterdata/catalog"
	"github.com/cida-marmitas/marmitas/internal/masterdata/menus"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// SectorConfig loads the ordering configuration of a sector.
type SectorConfig interface {
	Windows(ctx context.Context, sectorID int64) ([]eligibility.Window, error)
	Cutoff(ctx context.Context, sectorID int64) (civil.TimeOfDay, error)
}

// Menus resolves the menu published for a date.
type Menus interface {
	GetByDate(ctx context.Context, date civil.Date) (menus.Menu, error)
}

// Catalog lists what can be chosen on the ordering screen. The full lists,
// inactive entries included, back the staff edit of existing orders.
type Catalog interface {
	ActiveSizes(ctx context.Context) ([]catalog.Size, error)
	ActiveExtras(ctx context.Context) ([]catalog.Extra, error)
	ListSizes(ctx context.Context) ([]catalog.Size, error)
	ListExtras(ctx context.Context) ([]catalog.Extra, error)
}

// Recorder counts submission outcomes.
type Recorder interface {
	ObserveOrderSubmission(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOrderSubmission(string) {}

// Submission outcomes.
const (
	OutcomeCreated   = "created"
	OutcomeDuplicate = "duplicate"
	OutcomeDenied    = "denied"
	OutcomeNoMenu    = "menu_missing"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

const submittedMessage = "Pedido realizado!"

// Service implements the ordering flow and the kitchen's order management.
type Service struct {
	repo    Repository
	sectors SectorConfig
	menus   Menus
	catalog Catalog
	clock   civil.Clock
	metrics Recorder
	logger  *slog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wires the ordering service. clock must report time in the
// reference zone.
func NewService(repo Repository, sectors SectorConfig, menus Menus, cat Catalog, clock civil.Clock, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		sectors: sectors,
		menus:   menus,
		catalog: cat,
		clock:   clock,
		metrics: nopRecorder{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckWindowPermission evaluates the sector's windows against the current
// time of day.
func (s *Service) CheckWindowPermission(ctx context.Context, sectorID int64) (eligibility.Decision, error) {
	windows, err := s.sectors.Windows(ctx, sectorID)
	if err != nil {
		return eligibility.Decision{}, fmt.Errorf("load windows: %w", err)
	}
	return eligibility.CheckWindowPermission(windows, civil.TimeOfDayOf(s.clock.Now())), nil
}

// ResolveServiceDate returns the date the sector is ordering for right now.
func (s *Service) ResolveServiceDate(ctx context.Context, sectorID int64) (civil.Date, error) {
	cutoff, err := s.sectors.Cutoff(ctx, sectorID)
	if err != nil {
		return civil.Date{}, fmt.Errorf("load cutoff: %w", err)
	}
	return eligibility.ResolveServiceDate(cutoff, s.clock.Now()), nil
}

// CheckDuplicateOrder fails with ErrDuplicateOrder when the employee already
// ordered for date.
func (s *Service) CheckDuplicateOrder(ctx context.Context, employeeID int64, date civil.Date) error {
	_, found, err := s.repo.FindOrderForDate(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("find order: %w", err)
	}
	if found {
		return duplicateError(date)
	}
	return nil
}

// GetInitialOrderData runs the ordering pipeline up to the point of showing
// the form: window check, date resolution, duplicate check, then menu, sizes
// and extras. Each blocking step returns a DomainError and stops the
// pipeline. employeeID zero skips the duplicate check.
func (s *Service) GetInitialOrderData(ctx context.Context, sectorID, employeeID int64) (*InitialData, error) {
	if err := s.ensureWindowOpen(ctx, sectorID); err != nil {
		return nil, err
	}
	date, err := s.ResolveServiceDate(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	if employeeID > 0 {
		if err := s.CheckDuplicateOrder(ctx, employeeID, date); err != nil {
			return nil, err
		}
	}

	data := &InitialData{ServiceDate: date}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		menu, err := s.menuFor(gctx, date)
		data.Menu = menu
		return err
	})
	g.Go(func() error {
		sizes, err := s.catalog.ActiveSizes(gctx)
		data.Sizes = sizes
		return err
	})
	g.Go(func() error {
		extras, err := s.catalog.ActiveExtras(gctx)
		data.Extras = extras
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// EmployeeOrderData is GetInitialOrderData for the employee's current sector.
func (s *Service) EmployeeOrderData(ctx context.Context, employeeID int64) (*InitialData, error) {
	sectorID, err := s.sectorOf(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.GetInitialOrderData(ctx, sectorID, employeeID)
}

// SubmitOrder validates and persists an employee's order. The sector's
// window and the service date are evaluated again server-side, and the menu
// is resolved from that date rather than trusted from the client.
func (s *Service) SubmitOrder(ctx context.Context, req SubmitRequest) (result *SubmitResult, err error) {
	defer func() { s.metrics.ObserveOrderSubmission(outcomeOf(err)) }()

	if req.EmployeeID <= 0 || req.SizeID <= 0 {
		return nil, shared.Validation("Selecione um tamanho.")
	}
	sectorID, err := s.sectorOf(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureWindowOpen(ctx, sectorID); err != nil {
		return nil, err
	}
	date, err := s.ResolveServiceDate(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	menu, err := s.menuFor(ctx, date)
	if err != nil {
		return nil, err
	}
	if req.MenuID != 0 && req.MenuID != menu.ID {
		return nil, shared.Validation("O cardápio mudou desde que a página foi aberta. Recarregue e tente novamente.")
	}
	extras, err := s.checkSelection(ctx, req.SizeID, req.ExtraIDs, false)
	if err != nil {
		return nil, err
	}

	id, err := s.insert(ctx, Order{
		EmployeeID: req.EmployeeID,
		MenuID:     menu.ID,
		SizeID:     req.SizeID,
		Note:       req.Note,
		ExtraIDs:   extras,
	}, date)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "order submitted",
		slog.Int64("order_id", id),
		slog.Int64("employee_id", req.EmployeeID),
		slog.String("service_date", date.String()),
	)
	return &SubmitResult{OrderID: id, ServiceDate: date, Message: submittedMessage}, nil
}

// sectorOf reads the employee's sector from storage; a token's sector claim
// can lag behind a transfer.
func (s *Service) sectorOf(ctx context.Context, employeeID int64) (int64, error) {
	sectorID, err := s.repo.EmployeeSector(ctx, employeeID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, shared.NewError(shared.ErrUnauthorized, "Funcionário inativo ou inexistente.")
	}
	if err != nil {
		return 0, fmt.Errorf("load employee sector: %w", err)
	}
	return sectorID, nil
}

func (s *Service) ensureWindowOpen(ctx context.Context, sectorID int64) error {
	decision, err := s.CheckWindowPermission(ctx, sectorID)
	if err != nil {
		return err
	}
	if decision.Allowed {
		return nil
	}
	if decision.NoWindows {
		return shared.NewError(shared.ErrNoWindowsConfigured, "%s", decision.Reason)
	}
	return shared.NewError(shared.ErrTimeWindowDenied, "%s", decision.Reason)
}

func (s *Service) menuFor(ctx context.Context, date civil.Date) (menus.Menu, error) {
	menu, err := s.menus.GetByDate(ctx, date)
	if errors.Is(err, shared.ErrMenuNotFound) || errors.Is(err, shared.ErrNotFound) {
		return menus.Menu{}, shared.NewError(shared.ErrMenuNotFound,
			"Nenhum cardápio cadastrado para %s.", date.Localized())
	}
	if err != nil {
		return menus.Menu{}, fmt.Errorf("load menu: %w", err)
	}
	return menu, nil
}

// checkSelection verifies size and extras against the catalog and returns
// the extras without repetitions. Only active entries qualify unless
// includeInactive is set.
func (s *Service) checkSelection(ctx context.Context, sizeID int64, extraIDs []int64, includeInactive bool) ([]int64, error) {
	listSizes, listExtras := s.catalog.ActiveSizes, s.catalog.ActiveExtras
	if includeInactive {
		listSizes, listExtras = s.catalog.ListSizes, s.catalog.ListExtras
	}
	sizes, err := listSizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sizes: %w", err)
	}
	if !slices.ContainsFunc(sizes, func(sz catalog.Size) bool { return sz.ID == sizeID }) {
		return nil, shared.Validation("Tamanho indisponível.")
	}
	if len(extraIDs) == 0 {
		return nil, nil
	}
	available, err := listExtras(ctx)
	if err != nil {
		return nil, fmt.Errorf("load extras: %w", err)
	}
	out := make([]int64, 0, len(extraIDs))
	for _, id := range extraIDs {
		if slices.Contains(out, id) {
			continue
		}
		if !slices.ContainsFunc(available, func(x catalog.Extra) bool { return x.ID == id }) {
			return nil, shared.Validation("Opção indisponível.")
		}
		out = append(out, id)
	}
	return out, nil
}

// insert stores the order and its extras atomically. The duplicate check
// inside the transaction covers the common case; the unique constraint
// covers concurrent submissions.
func (s *Service) insert(ctx context.Context, o Order, date civil.Date) (int64, error) {
	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		_, found, err := tx.FindOrder(ctx, o.EmployeeID, o.MenuID)
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}
		if found {
			return shared.ErrDuplicateOrder
		}
		id, err = tx.InsertOrder(ctx, o)
		if err != nil {
			return err
		}
		return tx.InsertExtras(ctx, id, o.ExtraIDs)
	})
	if errors.Is(err, shared.ErrDuplicateOrder) {
		return 0, duplicateError(date)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func duplicateError(date civil.Date) error {
	return shared.NewError(shared.ErrDuplicateOrder,
		"Você já fez um pedido para %s. Para alterar, fale com o restaurante.", date.Localized())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, shared.ErrDuplicateOrder):
		return OutcomeDuplicate
	case errors.Is(err, shared.ErrTimeWindowDenied), errors.Is(err, shared.ErrNoWindowsConfigured):
		return OutcomeDenied
	case errors.Is(err, shared.ErrMenuNotFound):
		return OutcomeNoMenu
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrUnauthorized):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
