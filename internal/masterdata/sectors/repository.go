package sectors

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Sector, error)
	ListWithWindows(ctx context.Context) ([]WithWindows, error)
	Create(ctx context.Context, s Sector) (int64, error)
	Update(ctx context.Context, s Sector) error
	Delete(ctx context.Context, id int64) error
	AddWindow(ctx context.Context, w eligibility.Window) (int64, error)
	RemoveWindow(ctx context.Context, id int64) error
	Windows(ctx context.Context, sectorID int64) ([]eligibility.Window, error)
	Cutoff(ctx context.Context, sectorID int64) (civil.TimeOfDay, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Sector, error) {
	rows, err := r.pool.Query(ctx, `SELECT s.id, s.name, s.company_id, c.name, s.visibility_cutoff::text
FROM sectors s
JOIN companies c ON c.id = s.company_id
ORDER BY c.name, s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sector
	for rows.Next() {
		var s Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.CompanyID, &s.CompanyName, &s.VisibilityCutoff); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) ListWithWindows(ctx context.Context) ([]WithWindows, error) {
	rows, err := r.pool.Query(ctx, `SELECT s.id, s.name, s.company_id, c.name, s.visibility_cutoff::text,
       w.id, w.start_time::text, w.end_time::text, w.label
FROM sectors s
JOIN companies c ON c.id = s.company_id
LEFT JOIN order_windows w ON w.sector_id = s.id
ORDER BY c.name, s.name, w.start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []windowRow
	for rows.Next() {
		var row windowRow
		if err := rows.Scan(
			&row.Sector.ID, &row.Sector.Name, &row.Sector.CompanyID, &row.Sector.CompanyName, &row.Sector.VisibilityCutoff,
			&row.WindowID, &row.Start, &row.End, &row.Label,
		); err != nil {
			return nil, err
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupWindows(flat), nil
}

func (r *repository) Create(ctx context.Context, s Sector) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sectors (name, company_id, visibility_cutoff) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.CompanyID, string(s.VisibilityCutoff)).Scan(&id)
	return id, translateWriteError(err)
}

func (r *repository) Update(ctx context.Context, s Sector) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sectors SET name = $1, company_id = $2, visibility_cutoff = $3 WHERE id = $4`,
		s.Name, s.CompanyID, string(s.VisibilityCutoff), s.ID)
	if err != nil {
		return translateWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sectors WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return shared.NewError(shared.ErrReferentialConflict,
			"Não é possível excluir: existem funcionários ou horários vinculados a este setor.")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) AddWindow(ctx context.Context, w eligibility.Window) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO order_windows (sector_id, start_time, end_time, label) VALUES ($1, $2, $3, $4) RETURNING id`,
		w.SectorID, string(w.Start), string(w.End), w.Label).Scan(&id)
	if db.IsForeignKeyViolation(err) {
		return 0, shared.NewError(shared.ErrNotFound, "Setor não encontrado.")
	}
	return id, err
}

func (r *repository) RemoveWindow(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM order_windows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Windows(ctx context.Context, sectorID int64) ([]eligibility.Window, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, sector_id, start_time::text, end_time::text, label
FROM order_windows WHERE sector_id = $1 ORDER BY start_time`, sectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []eligibility.Window
	for rows.Next() {
		var w eligibility.Window
		if err := rows.Scan(&w.ID, &w.SectorID, &w.Start, &w.End, &w.Label); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *repository) Cutoff(ctx context.Context, sectorID int64) (civil.TimeOfDay, error) {
	var cutoff civil.TimeOfDay
	err := r.pool.QueryRow(ctx, `SELECT visibility_cutoff::text FROM sectors WHERE id = $1`, sectorID).Scan(&cutoff)
	if db.IsNoRows(err) {
		return "", shared.NewError(shared.ErrNotFound, "Setor não encontrado.")
	}
	return cutoff, err
}

func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err, ""):
		return shared.NewError(shared.ErrDuplicate, "Já existe um setor com este nome nesta empresa.")
	case db.IsForeignKeyViolation(err):
		return shared.NewError(shared.ErrValidation, "Empresa não encontrada.")
	}
	return err
}
