package menus

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type Repository interface {
	// Upsert stores the menu of a date and reports whether it was created.
	Upsert(ctx context.Context, in SaveInput) (int64, bool, error)
	GetByDate(ctx context.Context, date civil.Date) (Menu, error)
	Recent(ctx context.Context, limit int) ([]Menu, error)
	Between(ctx context.Context, from, to civil.Date) ([]Menu, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const menuColumns = `id, service_date, main_dish, side_dishes, created_at`

func (r *repository) Upsert(ctx context.Context, in SaveInput) (int64, bool, error) {
	var (
		id       int64
		inserted bool
	)
	err := r.pool.QueryRow(ctx, `INSERT INTO service_menus (service_date, main_dish, side_dishes)
VALUES ($1, $2, $3)
ON CONFLICT (service_date) DO UPDATE SET main_dish = EXCLUDED.main_dish, side_dishes = EXCLUDED.side_dishes
RETURNING id, (xmax = 0)`, in.ServiceDate.Time(), in.MainDish, in.SideDishes).Scan(&id, &inserted)
	return id, inserted, err
}

func (r *repository) GetByDate(ctx context.Context, date civil.Date) (Menu, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+menuColumns+` FROM service_menus WHERE service_date = $1`, date.Time())
	m, err := scanMenu(row)
	if db.IsNoRows(err) {
		return Menu{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Recent(ctx context.Context, limit int) ([]Menu, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+menuColumns+` FROM service_menus ORDER BY service_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectMenus(rows)
}

func (r *repository) Between(ctx context.Context, from, to civil.Date) ([]Menu, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+menuColumns+` FROM service_menus
WHERE service_date BETWEEN $1 AND $2 ORDER BY service_date`, from.Time(), to.Time())
	if err != nil {
		return nil, err
	}
	return collectMenus(rows)
}

func scanMenu(row pgx.Row) (Menu, error) {
	var (
		m    Menu
		date time.Time
	)
	if err := row.Scan(&m.ID, &date, &m.MainDish, &m.SideDishes, &m.CreatedAt); err != nil {
		return Menu{}, err
	}
	m.ServiceDate = civil.DateOf(date)
	return m, nil
}

func collectMenus(rows pgx.Rows) ([]Menu, error) {
	defer rows.Close()
	out := []Menu{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
