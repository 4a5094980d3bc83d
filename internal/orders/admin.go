package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// ListDayOrders returns every order for date, grouped by company, sector and
// employee name.
func (s *Service) ListDayOrders(ctx context.Context, date civil.Date) ([]DayOrder, error) {
	return s.repo.ListDay(ctx, date)
}

// GetOrderDetails returns one order with its extras.
func (s *Service) GetOrderDetails(ctx context.Context, id int64) (Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ProductionSummary counts sizes and extras ordered for date.
func (s *Service) ProductionSummary(ctx context.Context, date civil.Date) (ProductionSummary, error) {
	return s.repo.Summary(ctx, date)
}

// UpdateOrder replaces size, note and extras of an order. Entries deactivated
// after the order was placed remain valid choices.
func (s *Service) UpdateOrder(ctx context.Context, id int64, req UpdateRequest) error {
	extras, err := s.checkSelection(ctx, req.SizeID, req.ExtraIDs, true)
	if err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpdateOrder(ctx, id, req.SizeID, req.Note); err != nil {
			return err
		}
		if err := tx.DeleteExtras(ctx, id); err != nil {
			return err
		}
		return tx.InsertExtras(ctx, id, extras)
	})
}

// DeleteOrder removes an order and its extras.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeleteExtras(ctx, id); err != nil {
			return err
		}
		return tx.DeleteOrder(ctx, id)
	})
	if err == nil {
		s.logger.InfoContext(ctx, "order deleted", slog.Int64("order_id", id))
	}
	return err
}

// CreateManualOrder places an order on behalf of an employee. Ordering
// windows do not apply; the service date still follows the sector's cutoff.
func (s *Service) CreateManualOrder(ctx context.Context, req ManualRequest) (*SubmitResult, error) {
	sectorID, err := s.repo.EmployeeSector(ctx, req.EmployeeID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewError(shared.ErrNotFound, "Funcionário não encontrado.")
	}
	if err != nil {
		return nil, fmt.Errorf("load employee sector: %w", err)
	}
	date, err := s.ResolveServiceDate(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	menu, err := s.menuFor(ctx, date)
	if err != nil {
		return nil, err
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
	s.logger.InfoContext(ctx, "manual order created",
		slog.Int64("order_id", id),
		slog.Int64("employee_id", req.EmployeeID),
		slog.String("service_date", date.String()),
	)
	return &SubmitResult{OrderID: id, ServiceDate: date, Message: "Pedido criado com sucesso!"}, nil
}

// Preview shows staff what a sector's employees would see right now.
// Blocking conditions are reported in the decision instead of as errors.
func (s *Service) Preview(ctx context.Context, sectorID int64) (eligibility.Decision, *InitialData, error) {
	data, err := s.GetInitialOrderData(ctx, sectorID, 0)
	if shared.Blocking(err) || errors.Is(err, shared.ErrMenuNotFound) {
		return eligibility.Decision{Reason: shared.UserMessage(err)}, nil, nil
	}
	if err != nil {
		return eligibility.Decision{}, nil, err
	}
	return eligibility.Decision{Allowed: true}, data, nil
}

// Today is the current date in the reference zone.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.clock.Now())
}
