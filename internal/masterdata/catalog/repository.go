package catalog

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type Repository interface {
	ListSizes(ctx context.Context, onlyActive bool) ([]Size, error)
	CreateSize(ctx context.Context, in SizeInput) (int64, error)
	UpdateSize(ctx context.Context, in SizeInput) error
	SetSizeActive(ctx context.Context, id int64, active bool) error
	ListExtras(ctx context.Context, onlyActive bool) ([]Extra, error)
	CreateExtra(ctx context.Context, in ExtraInput) (int64, error)
	UpdateExtra(ctx context.Context, in ExtraInput) error
	SetExtraActive(ctx context.Context, id int64, active bool) error
	DeleteExtra(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListSizes(ctx context.Context, onlyActive bool) ([]Size, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, price, active FROM sizes
WHERE NOT $1::boolean OR active ORDER BY name`, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Size{}
	for rows.Next() {
		var s Size
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Active); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) CreateSize(ctx context.Context, in SizeInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO sizes (name, price) VALUES ($1, $2) RETURNING id`,
		in.Name, in.Price).Scan(&id)
	return id, err
}

func (r *repository) UpdateSize(ctx context.Context, in SizeInput) error {
	return expectOne(r.pool.Exec(ctx, `UPDATE sizes SET name = $1, price = $2 WHERE id = $3`, in.Name, in.Price, in.ID))
}

func (r *repository) SetSizeActive(ctx context.Context, id int64, active bool) error {
	return expectOne(r.pool.Exec(ctx, `UPDATE sizes SET active = $1 WHERE id = $2`, active, id))
}

const (
	listExtrasSQL = `SELECT id, name, kind, display_order, active FROM extras
ORDER BY kind, display_order, id`
	listActiveExtrasSQL = `SELECT id, name, kind, display_order, active FROM extras
WHERE active ORDER BY display_order, id`
)

func (r *repository) ListExtras(ctx context.Context, onlyActive bool) ([]Extra, error) {
	query := listExtrasSQL
	if onlyActive {
		query = listActiveExtrasSQL
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Extra{}
	for rows.Next() {
		var e Extra
		if err := rows.Scan(&e.ID, &e.Name, &e.Kind, &e.DisplayOrder, &e.Active); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) CreateExtra(ctx context.Context, in ExtraInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO extras (name, kind, display_order) VALUES ($1, $2, $3) RETURNING id`,
		in.Name, strings.ToUpper(in.Kind), in.DisplayOrder).Scan(&id)
	return id, err
}

func (r *repository) UpdateExtra(ctx context.Context, in ExtraInput) error {
	return expectOne(r.pool.Exec(ctx,
		`UPDATE extras SET name = $1, kind = $2, display_order = $3 WHERE id = $4`,
		in.Name, strings.ToUpper(in.Kind), in.DisplayOrder, in.ID))
}

func (r *repository) SetExtraActive(ctx context.Context, id int64, active bool) error {
	return expectOne(r.pool.Exec(ctx, `UPDATE extras SET active = $1 WHERE id = $2`, active, id))
}

func (r *repository) DeleteExtra(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM extras WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return shared.NewError(shared.ErrReferentialConflict,
			"Não é possível excluir: esta opção já foi usada em pedidos. Apenas inative-a.")
	}
	return expectOne(tag, err)
}
