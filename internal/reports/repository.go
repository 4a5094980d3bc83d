package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

// Repository reads report rows.
type Repository interface {
	Rows(ctx context.Context, f Filters) ([]Row, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// The sort order is what Build relies on for ordered output.
const rowsQuery = `SELECT o.id, m.service_date, e.name, c.id, c.name, s.id, s.name, sz.name, sz.price,
       COALESCE((SELECT string_agg(x.name, ', ' ORDER BY x.display_order, x.id)
                 FROM order_extras oe JOIN extras x ON x.id = oe.extra_id
                 WHERE oe.order_id = o.id), '')
FROM orders o
JOIN employees e ON e.id = o.employee_id
JOIN sectors s ON s.id = e.sector_id
JOIN companies c ON c.id = s.company_id
JOIN sizes sz ON sz.id = o.size_id
JOIN service_menus m ON m.id = o.menu_id
WHERE ($1::bigint IS NULL OR c.id = $1)
  AND ($2::bigint IS NULL OR s.id = $2)
  AND ($3::date IS NULL OR m.service_date >= $3)
  AND ($4::date IS NULL OR m.service_date <= $4)
ORDER BY c.name, s.name, m.service_date, e.name, o.id`

func (r *repository) Rows(ctx context.Context, f Filters) ([]Row, error) {
	rows, err := r.pool.Query(ctx, rowsQuery, f.CompanyID, f.SectorID, dateParam(f.DateFrom), dateParam(f.DateTo))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var (
			row  Row
			date time.Time
		)
		if err := rows.Scan(&row.OrderID, &date, &row.EmployeeName, &row.CompanyID, &row.CompanyName,
			&row.SectorID, &row.SectorName, &row.SizeName, &row.Price, &row.Extras); err != nil {
			return nil, err
		}
		row.ServiceDate = civil.DateOf(date)
		out = append(out, row)
	}
	return out, rows.Err()
}

func dateParam(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
