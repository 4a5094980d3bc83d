package orders

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Repository defines order persistence.
type Repository interface {
	// Read operations
	FindOrderForDate(ctx context.Context, employeeID int64, date civil.Date) (int64, bool, error)
	EmployeeSector(ctx context.Context, employeeID int64) (int64, error)
	ListDay(ctx context.Context, date civil.Date) ([]DayOrder, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	Summary(ctx context.Context, date civil.Date) (ProductionSummary, error)

	// Write operations (transactional)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes transactional write operations.
type TxRepository interface {
	FindOrder(ctx context.Context, employeeID, menuID int64) (int64, bool, error)
	// InsertOrder fails with shared.ErrDuplicateOrder when the employee
	// already has an order for the menu.
	InsertOrder(ctx context.Context, o Order) (int64, error)
	InsertExtras(ctx context.Context, orderID int64, extraIDs []int64) error
	UpdateOrder(ctx context.Context, id, sizeID int64, note string) error
	DeleteExtras(ctx context.Context, orderID int64) error
	DeleteOrder(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx wraps callback in a repeatable-read transaction.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (r *repository) FindOrderForDate(ctx context.Context, employeeID int64, date civil.Date) (int64, bool, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT o.id FROM orders o
JOIN service_menus m ON m.id = o.menu_id
WHERE o.employee_id = $1 AND m.service_date = $2`, employeeID, date.Time()).Scan(&id)
	if db.IsNoRows(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (r *repository) EmployeeSector(ctx context.Context, employeeID int64) (int64, error) {
	var sectorID int64
	err := r.pool.QueryRow(ctx, `SELECT sector_id FROM employees WHERE id = $1 AND active`, employeeID).Scan(&sectorID)
	if db.IsNoRows(err) {
		return 0, shared.ErrNotFound
	}
	return sectorID, err
}

func (r *repository) ListDay(ctx context.Context, date civil.Date) ([]DayOrder, error) {
	const query = `SELECT o.id, o.created_at, o.note, sz.name, e.name, s.name, c.id, c.name,
       COALESCE(EXTRACT(MONTH FROM e.birth_date) = EXTRACT(MONTH FROM m.service_date)
            AND EXTRACT(DAY FROM e.birth_date) = EXTRACT(DAY FROM m.service_date), FALSE),
       COALESCE((SELECT string_agg(x.name, ' + ' ORDER BY x.display_order, x.id)
                 FROM order_extras oe JOIN extras x ON x.id = oe.extra_id
                 WHERE oe.order_id = o.id), '')
FROM orders o
JOIN employees e ON e.id = o.employee_id
JOIN sectors s ON s.id = e.sector_id
JOIN companies c ON c.id = s.company_id
JOIN service_menus m ON m.id = o.menu_id
JOIN sizes sz ON sz.id = o.size_id
WHERE m.service_date = $1
ORDER BY c.name, s.name, e.name`
	rows, err := r.pool.Query(ctx, query, date.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DayOrder{}
	for rows.Next() {
		var d DayOrder
		if err := rows.Scan(&d.OrderID, &d.CreatedAt, &d.Note, &d.SizeName, &d.EmployeeName,
			&d.SectorName, &d.CompanyID, &d.CompanyName, &d.IsBirthday, &d.Extras); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repository) GetOrder(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx, `SELECT id, employee_id, menu_id, size_id, note, created_at
FROM orders WHERE id = $1`, id).Scan(&o.ID, &o.EmployeeID, &o.MenuID, &o.SizeID, &o.Note, &o.CreatedAt)
	if db.IsNoRows(err) {
		return Order{}, shared.NewError(shared.ErrNotFound, "Pedido não encontrado.")
	}
	if err != nil {
		return Order{}, err
	}
	rows, err := r.pool.Query(ctx, `SELECT extra_id FROM order_extras WHERE order_id = $1 ORDER BY extra_id`, id)
	if err != nil {
		return Order{}, err
	}
	o.ExtraIDs, err = pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *repository) Summary(ctx context.Context, date civil.Date) (ProductionSummary, error) {
	summary := ProductionSummary{Date: date}
	var err error
	summary.Sizes, err = r.countLines(ctx, `SELECT sz.name, COUNT(*)
FROM orders o
JOIN sizes sz ON sz.id = o.size_id
JOIN service_menus m ON m.id = o.menu_id
WHERE m.service_date = $1
GROUP BY sz.name ORDER BY sz.name`, date)
	if err != nil {
		return summary, err
	}
	summary.Extras, err = r.countLines(ctx, `SELECT x.name, COUNT(*)
FROM order_extras oe
JOIN orders o ON o.id = oe.order_id
JOIN service_menus m ON m.id = o.menu_id
JOIN extras x ON x.id = oe.extra_id
WHERE m.service_date = $1
GROUP BY x.name ORDER BY x.name`, date)
	return summary, err
}

func (r *repository) countLines(ctx context.Context, query string, date civil.Date) ([]SummaryLine, error) {
	rows, err := r.pool.Query(ctx, query, date.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SummaryLine{}
	for rows.Next() {
		var line SummaryLine
		if err := rows.Scan(&line.Name, &line.Quantity); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
