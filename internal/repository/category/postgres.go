package category

import (
	"context"
	"errors"

	"boomstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT c.id::text, c.name, c.slug, COALESCE(c.description, ''), c.created_at,
       count(p.id) FILTER (WHERE p.is_active)
FROM categories c
LEFT JOIN products p ON p.category_id = c.id
GROUP BY c.id
ORDER BY c.name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.ProductCount); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.getOne(ctx, `
SELECT id::text, name, slug, COALESCE(description, ''), created_at
FROM categories
WHERE slug = $1
`, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getOne(ctx, `
SELECT id::text, name, slug, COALESCE(description, ''), created_at
FROM categories
WHERE id = $1
`, id)
}

func (r *postgresRepo) getOne(ctx context.Context, query, arg string) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
