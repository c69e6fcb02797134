package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

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

// sortColumns whitelists the sortable fields exposed by the listing API.
var sortColumns = map[string]string{
	"name":      "p.name",
	"price":     "p.price_cents",
	"createdAt": "p.created_at",
}

const productColumns = `p.id::text, p.name, p.slug, COALESCE(p.description, ''), p.sku, COALESCE(p.brand, ''),
	p.price_cents, p.compare_price_cents, p.stock, p.min_stock, p.is_active, p.is_featured,
	COALESCE(p.warranty, ''), p.category_id::text, p.created_at, c.name, c.slug`

func (r *postgresRepo) List(ctx context.Context, q ListQuery) ([]domain.Product, int, error) {
	where := []string{"p.is_active"}
	var args []interface{}

	if q.CategorySlug != "" {
		args = append(args, q.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d OR p.brand ILIKE $%d)", n, n, n))
	}
	if q.FeaturedOnly {
		where = append(where, "p.is_featured")
	}

	cond := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`
SELECT count(*)
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE %s
`, cond)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "p.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	args = append(args, q.Limit, q.Offset())
	listQuery := fmt.Sprintf(`
SELECT %s
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE %s
ORDER BY %s %s
LIMIT $%d OFFSET $%d
`, productColumns, cond, column, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, 0, err
	}

	if err := r.attachPrimaryImages(ctx, products); err != nil {
		return nil, 0, err
	}
	r.logger.Printf("product repo: list page=%d limit=%d total=%d", q.Page, q.Limit, total)
	return products, total, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM products p
JOIN categories c ON c.id = p.category_id
ORDER BY p.created_at DESC
`, productColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Printf("product repo: list all error=%v", err)
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if err := r.attachRelations(ctx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.slug = $1 AND p.is_active
`, productColumns)
	return r.getOne(ctx, query, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`, productColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.sku = $1
`, productColumns)
	return r.getOne(ctx, query, sku)
}

func (r *postgresRepo) getOne(ctx context.Context, query, arg string) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		r.logger.Printf("product repo: get error=%v", err)
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrNotFound
	}
	p := products[0]
	if err := r.attachRelations(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, slug, description, sku, brand, price_cents, compare_price_cents, stock, min_stock, is_active, is_featured, warranty, category_id)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13)
RETURNING id::text, created_at
`
	err := r.pool.QueryRow(ctx, q,
		p.Name, p.Slug, p.Description, p.SKU, p.Brand,
		p.PriceCents, p.ComparePriceCents, p.Stock, p.MinStock,
		p.IsActive, p.IsFeatured, p.Warranty, p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create sku=%s error=%v", p.SKU, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s sku=%s", p.ID, p.SKU)
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    slug = $3,
    description = NULLIF($4, ''),
    sku = $5,
    brand = NULLIF($6, ''),
    price_cents = $7,
    compare_price_cents = $8,
    stock = $9,
    min_stock = $10,
    is_active = $11,
    is_featured = $12,
    warranty = NULLIF($13, ''),
    category_id = $14
WHERE id = $1
RETURNING id::text
`
	var id string
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Slug, p.Description, p.SKU, p.Brand,
		p.PriceCents, p.ComparePriceCents, p.Stock, p.MinStock,
		p.IsActive, p.IsFeatured, p.Warranty, p.CategoryID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

// ReplaceImages swaps the product gallery for the given set, keeping
// the incoming order as the display order.
func (r *postgresRepo) ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		r.logger.Printf("product repo: replace images id=%s error=%v", productID, err)
		return err
	}
	const q = `
INSERT INTO product_images (product_id, url, alt, is_primary, position)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
`
	for i, img := range images {
		if _, err := tx.Exec(ctx, q, productID, img.URL, img.Alt, i == 0, i); err != nil {
			r.logger.Printf("product repo: replace images id=%s error=%v", productID, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReferenceCount counts order lines pointing at the product. A product
// with references may not be deleted.
func (r *postgresRepo) ReferenceCount(ctx context.Context, id string) (int, error) {
	const q = `SELECT count(*) FROM order_items WHERE product_id = $1`
	var n int
	if err := r.pool.QueryRow(ctx, q, id).Scan(&n); err != nil {
		r.logger.Printf("product repo: reference count id=%s error=%v", id, err)
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE is_active`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		var cat domain.Category
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.SKU, &p.Brand,
			&p.PriceCents, &p.ComparePriceCents, &p.Stock, &p.MinStock,
			&p.IsActive, &p.IsFeatured, &p.Warranty, &p.CategoryID, &p.CreatedAt,
			&cat.Name, &cat.Slug,
		); err != nil {
			return nil, err
		}
		cat.ID = p.CategoryID
		p.Category = &cat
		result = append(result, p)
	}
	return result, rows.Err()
}

// attachPrimaryImages loads one image per product: the primary one, or
// the first by position when none is flagged.
func (r *postgresRepo) attachPrimaryImages(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]*domain.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = &products[i]
	}

	const q = `
SELECT DISTINCT ON (product_id) product_id::text, id::text, url, COALESCE(alt, ''), is_primary, position
FROM product_images
WHERE product_id = ANY($1)
ORDER BY product_id, is_primary DESC, position
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: primary images error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var img domain.ProductImage
		if err := rows.Scan(&productID, &img.ID, &img.URL, &img.Alt, &img.IsPrimary, &img.Position); err != nil {
			return err
		}
		if p, ok := index[productID]; ok {
			p.Images = []domain.ProductImage{img}
		}
	}
	return rows.Err()
}

func (r *postgresRepo) attachRelations(ctx context.Context, p *domain.Product) error {
	const imgQuery = `
SELECT id::text, url, COALESCE(alt, ''), is_primary, position
FROM product_images
WHERE product_id = $1
ORDER BY position
`
	rows, err := r.pool.Query(ctx, imgQuery, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Alt, &img.IsPrimary, &img.Position); err != nil {
			return err
		}
		p.Images = append(p.Images, img)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const varQuery = `
SELECT id::text, name, value, price_cents, stock
FROM product_variants
WHERE product_id = $1
ORDER BY name, value
`
	vrows, err := r.pool.Query(ctx, varQuery, p.ID)
	if err != nil {
		return err
	}
	defer vrows.Close()
	for vrows.Next() {
		var v domain.ProductVariant
		if err := vrows.Scan(&v.ID, &v.Name, &v.Value, &v.PriceCents, &v.Stock); err != nil {
			return err
		}
		p.Variants = append(p.Variants, v)
	}
	return vrows.Err()
}
