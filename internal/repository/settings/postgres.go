package settings

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

const settingsColumns = `name, COALESCE(description, ''), email, COALESCE(phone, ''), COALESCE(address, ''),
	currency, tax_rate, shipping_enabled, maintenance_mode, allow_guest_checkout, updated_at`

func (r *postgresRepo) Get(ctx context.Context) (*domain.Settings, error) {
	const q = `SELECT ` + settingsColumns + ` FROM settings WHERE id`
	return scanSettings(r.pool.QueryRow(ctx, q))
}

// Update rewrites the settings row inside a transaction so concurrent
// admin writes cannot interleave partial updates.
func (r *postgresRepo) Update(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO settings (id, name, description, email, phone, address, currency, tax_rate, shipping_enabled, maintenance_mode, allow_guest_checkout, updated_at)
VALUES (TRUE, $1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, now())
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    address = EXCLUDED.address,
    currency = EXCLUDED.currency,
    tax_rate = EXCLUDED.tax_rate,
    shipping_enabled = EXCLUDED.shipping_enabled,
    maintenance_mode = EXCLUDED.maintenance_mode,
    allow_guest_checkout = EXCLUDED.allow_guest_checkout,
    updated_at = now()
RETURNING ` + settingsColumns + `
`
	out, err := scanSettings(tx.QueryRow(ctx, q,
		s.Name, s.Description, s.Email, s.Phone, s.Address,
		s.Currency, s.TaxRate, s.ShippingEnabled, s.MaintenanceMode, s.AllowGuestCheckout,
	))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(
		&s.Name, &s.Description, &s.Email, &s.Phone, &s.Address,
		&s.Currency, &s.TaxRate, &s.ShippingEnabled, &s.MaintenanceMode, &s.AllowGuestCheckout,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
