package user

import (
	"context"
	"errors"
	"io"
	"log"

	"boomstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, name, password_hash, role)
VALUES ($1, NULLIF($2, ''), $3, $4)
RETURNING id::text, created_at
`
	role := u.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	err := r.pool.QueryRow(ctx, q, u.Email, u.Name, u.PasswordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	u.Role = role
	r.logger.Printf("user repo: created id=%s email=%s", u.ID, u.Email)
	return &u, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `
SELECT id::text, email, COALESCE(name, ''), password_hash, role, created_at
FROM users
WHERE email = $1
`, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `
SELECT id::text, email, COALESCE(name, ''), password_hash, role, created_at
FROM users
WHERE id = $1
`, id)
}

func (r *postgresRepo) getOne(ctx context.Context, query, arg string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get error=%v", err)
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT u.id::text, u.email, COALESCE(u.name, ''), u.role, u.created_at, count(o.id)
FROM users u
LEFT JOIN orders o ON o.user_id = u.id
GROUP BY u.id
ORDER BY u.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("user repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.OrderCount); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	const q = `
UPDATE users
SET role = $2
WHERE id = $1
RETURNING id::text, email, COALESCE(name, ''), role, created_at,
          (SELECT count(*) FROM orders WHERE user_id = users.id)
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, id, role).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.OrderCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: update role id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("user repo: role updated id=%s role=%s", u.ID, u.Role)
	return &u, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
