package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindActiveEmployee(ctx context.Context, raCpf string) (*Employee, error)
	FindUserByLogin(ctx context.Context, login string) (*StaffUser, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindActiveEmployee loads an active employee with sector and company.
func (r *PGRepository) FindActiveEmployee(ctx context.Context, raCpf string) (*Employee, error) {
	const query = `SELECT e.id, e.name, e.ra_cpf, s.id, s.name, c.id, c.name, c.works_weekends
FROM employees e
JOIN sectors s ON s.id = e.sector_id
JOIN companies c ON c.id = s.company_id
WHERE e.ra_cpf = $1 AND e.active`
	var emp Employee
	err := r.pool.QueryRow(ctx, query, raCpf).Scan(
		&emp.ID, &emp.Name, &emp.RaCpf,
		&emp.SectorID, &emp.SectorName,
		&emp.CompanyID, &emp.CompanyName, &emp.WorksWeekends,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// FindUserByLogin fetches a system user by login.
func (r *PGRepository) FindUserByLogin(ctx context.Context, login string) (*StaffUser, error) {
	const query = `SELECT id, name, login, password_hash, role, company_id, active
FROM users WHERE login = $1`
	var u StaffUser
	err := r.pool.QueryRow(ctx, query, login).Scan(
		&u.ID, &u.Name, &u.Login, &u.PasswordHash, &u.Role, &u.CompanyID, &u.Active,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
