package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cida-marmitas/marmitas/internal/platform/db"
	"github.com/cida-marmitas/marmitas/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	LoginTaken(ctx context.Context, login string, excludeID int64) (bool, error)
	Create(ctx context.Context, in SaveInput, hash string) (int64, error)
	// Update keeps the stored hash when hash is nil.
	Update(ctx context.Context, in SaveInput, hash *string) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListUsers returns all users with their company name.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT u.id, u.name, u.login, u.role, u.company_id, c.name, u.active
FROM users u
LEFT JOIN companies c ON c.id = u.company_id
ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Login, &u.Role, &u.CompanyID, &u.CompanyName, &u.Active); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repository) LoginTaken(ctx context.Context, login string, excludeID int64) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1 AND id <> $2)`,
		login, excludeID).Scan(&taken)
	return taken, err
}

func (r *Repository) Create(ctx context.Context, in SaveInput, hash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO users (name, login, password_hash, role, company_id)
VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		in.Name, in.Login, hash, string(in.Role), in.CompanyID).Scan(&id)
	if db.IsUniqueViolation(err, "") {
		return 0, shared.NewError(shared.ErrDuplicate, "Este login já está em uso.")
	}
	return id, err
}

func (r *Repository) Update(ctx context.Context, in SaveInput, hash *string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users
SET name = $1, login = $2, role = $3, company_id = $4, password_hash = COALESCE($5, password_hash)
WHERE id = $6`,
		in.Name, in.Login, string(in.Role), in.CompanyID, hash, in.ID)
	if db.IsUniqueViolation(err, "") {
		return shared.NewError(shared.ErrDuplicate, "Este login já está em uso.")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
