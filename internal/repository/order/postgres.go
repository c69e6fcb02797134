package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

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

const orderColumns = `o.id::text, o.user_id::text, o.status, o.total_cents, o.created_at,
	u.email, COALESCE(u.name, '')`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN users u ON u.id = o.user_id
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.id = $1
`
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}
	o := orders[0]
	if err := r.attachItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $2
WHERE id = $1
RETURNING id::text
`
	var orderID string
	if err := r.pool.QueryRow(ctx, q, id, status).Scan(&orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("order repo: status updated id=%s status=%s", orderID, status)
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) RevenueSince(ctx context.Context, since time.Time) (int64, int, error) {
	const q = `
SELECT COALESCE(SUM(total_cents), 0), count(*)
FROM orders
WHERE created_at >= $1
`
	var revenue int64
	var count int
	if err := r.pool.QueryRow(ctx, q, since).Scan(&revenue, &count); err != nil {
		r.logger.Printf("order repo: revenue since=%s error=%v", since, err)
		return 0, 0, err
	}
	return revenue, count, nil
}

func (r *postgresRepo) RevenueByMonth(ctx context.Context, since time.Time) ([]MonthlyRevenue, error) {
	const q = `
SELECT date_trunc('month', created_at) AS month,
       COALESCE(SUM(total_cents), 0),
       count(*)
FROM orders
WHERE created_at >= $1
GROUP BY date_trunc('month', created_at)
ORDER BY month DESC
LIMIT 12
`
	rows, err := r.pool.Query(ctx, q, since)
	if err != nil {
		r.logger.Printf("order repo: revenue by month error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenueCents, &m.Orders); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *postgresRepo) CountByStatus(ctx context.Context, since time.Time) ([]StatusCount, error) {
	const q = `
SELECT status, count(*)
FROM orders
WHERE created_at >= $1
GROUP BY status
ORDER BY status
`
	rows, err := r.pool.Query(ctx, q, since)
	if err != nil {
		r.logger.Printf("order repo: count by status error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]ProductSales, error) {
	const q = `
SELECT p.name,
       COALESCE(SUM(oi.quantity), 0) AS sold,
       COALESCE(SUM(oi.total_cents), 0) AS revenue
FROM products p
LEFT JOIN order_items oi ON oi.product_id = p.id
LEFT JOIN orders o ON o.id = oi.order_id AND o.created_at >= $1
GROUP BY p.id, p.name
HAVING COALESCE(SUM(oi.quantity), 0) > 0
ORDER BY sold DESC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, since, limit)
	if err != nil {
		r.logger.Printf("order repo: top products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.Name, &p.Sold, &p.RevenueCents); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN users u ON u.id = o.user_id
ORDER BY o.created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("order repo: recent error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *postgresRepo) attachItems(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT id::text, order_id::text, product_id::text, name, quantity, unit_price_cents, total_cents
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPriceCents, &item.TotalCents); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var u domain.User
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalCents, &o.CreatedAt, &u.Email, &u.Name); err != nil {
			return nil, err
		}
		u.ID = o.UserID
		o.User = &u
		result = append(result, o)
	}
	return result, rows.Err()
}
