package companies

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Company, error)
	ListActive(ctx context.Context) ([]Option, error)
	Create(ctx context.Context, in SaveInput) (int64, error)
	Update(ctx context.Context, in SaveInput) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, works_weekends, active, created_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.WorksWeekends, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) ListActive(ctx context.Context) ([]Option, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM companies WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, in SaveInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO companies (name, works_weekends) VALUES ($1, $2) RETURNING id`,
		in.Name, in.WorksWeekends).Scan(&id)
	if db.IsUniqueViolation(err, "") {
		return 0, shared.NewError(shared.ErrDuplicate, "Já existe uma empresa com este nome.")
	}
	return id, err
}

func (r *repository) Update(ctx context.Context, in SaveInput) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE companies SET name = $1, works_weekends = $2 WHERE id = $3`,
		in.Name, in.WorksWeekends, in.ID)
	if db.IsUniqueViolation(err, "") {
		return shared.NewError(shared.ErrDuplicate, "Já existe uma empresa com este nome.")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE companies SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
