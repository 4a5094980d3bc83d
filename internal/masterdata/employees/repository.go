package employees

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/masterdata/shared"
	"github.com/cida-marmitas/marmitas/internal/platform/db"
	errs "github.com/cida-marmitas/marmitas/internal/shared"
)

// Repository defines employee persistence.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Employee, error)
	Create(ctx context.Context, in SaveInput) (int64, error)
	Update(ctx context.Context, in SaveInput) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error

	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the import writes that share one transaction.
type TxRepository interface {
	FindOrCreateCompany(ctx context.Context, name string) (int64, error)
	FindOrCreateSector(ctx context.Context, companyID int64, name string) (int64, error)
	UpsertByRA(ctx context.Context, name, raCpf string, sectorID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (r *repository) List(ctx context.Context, f shared.ListFilters) ([]Employee, error) {
	const query = `SELECT e.id, e.name, e.ra_cpf, e.active, e.birth_date,
       s.id, s.name, c.id, c.name
FROM employees e
JOIN sectors s ON s.id = e.sector_id
JOIN companies c ON c.id = s.company_id
WHERE ($1::bigint IS NULL OR c.id = $1)
  AND ($2::bigint IS NULL OR s.id = $2)
  AND ($3::text = '' OR e.name ILIKE '%' || $3 || '%' OR e.ra_cpf ILIKE '%' || $3 || '%')
ORDER BY e.name`
	rows, err := r.pool.Query(ctx, query, f.CompanyID, f.SectorID, f.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		var (
			e     Employee
			birth *time.Time
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.RaCpf, &e.Active, &birth,
			&e.SectorID, &e.SectorName, &e.CompanyID, &e.CompanyName); err != nil {
			return nil, err
		}
		if birth != nil {
			d := civil.DateOf(*birth)
			e.BirthDate = &d
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, in SaveInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO employees (name, ra_cpf, sector_id, birth_date)
VALUES ($1, $2, $3, $4) RETURNING id`, in.Name, in.RaCpf, in.SectorID, birthParam(in.BirthDate)).Scan(&id)
	return id, translateWriteError(err)
}

func (r *repository) Update(ctx context.Context, in SaveInput) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET name = $1, ra_cpf = $2, sector_id = $3, birth_date = $4
WHERE id = $5`, in.Name, in.RaCpf, in.SectorID, birthParam(in.BirthDate), in.ID)
	if err != nil {
		return translateWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return errs.NewError(errs.ErrReferentialConflict,
			"Não é possível excluir: este funcionário já tem pedidos registrados. Apenas inative-o.")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (t *txRepository) FindOrCreateCompany(ctx context.Context, name string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO companies (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`, name).Scan(&id)
	return id, err
}

func (t *txRepository) FindOrCreateSector(ctx context.Context, companyID int64, name string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO sectors (company_id, name) VALUES ($1, $2)
ON CONFLICT (company_id, name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`, companyID, name).Scan(&id)
	return id, err
}

func (t *txRepository) UpsertByRA(ctx context.Context, name, raCpf string, sectorID int64) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO employees (name, ra_cpf, sector_id, active)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (ra_cpf) DO UPDATE SET name = EXCLUDED.name, sector_id = EXCLUDED.sector_id`,
		name, raCpf, sectorID)
	return err
}

func birthParam(d *civil.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err, ""):
		return errs.NewError(errs.ErrDuplicate, "Já existe um funcionário com este RA/CPF.")
	case db.IsForeignKeyViolation(err):
		return errs.Validation("Setor não encontrado.")
	}
	return err
}
