package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"boomstore/internal/service/auth"
)

type categorySeed struct {
	Name        string
	Slug        string
	Description string
}

type productSeed struct {
	Name         string
	Slug         string
	Description  string
	SKU          string
	Brand        string
	PriceCents   int64
	ComparePrice int64
	Stock        int
	MinStock     int
	IsFeatured   bool
	Warranty     string
	CategorySlug string
	ImageURL     string
	ImageAlt     string
}

// Apply inserts a demo hardware catalog, an admin account and the default
// store settings. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Laptops", Slug: "laptops", Description: "Portable computers for work and play"},
		{Name: "Desktops", Slug: "desktops", Description: "Workstations and gaming towers"},
		{Name: "Components", Slug: "components", Description: "CPUs, GPUs, memory and storage"},
		{Name: "Peripherals", Slug: "peripherals", Description: "Keyboards, mice, monitors and audio"},
		{Name: "Software", Slug: "software", Description: "Operating systems and productivity licenses"},
	}

	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = id
	}

	products := []productSeed{
		{
			Name:         "ProBook Ultra 14",
			Slug:         "probook-ultra-14",
			Description:  "14-inch ultrabook with 32GB RAM and a 1TB NVMe drive",
			SKU:          "LAP-PBU14-001",
			Brand:        "ProBook",
			PriceCents:   129900,
			ComparePrice: 149900,
			Stock:        25,
			MinStock:     5,
			IsFeatured:   true,
			Warranty:     "2 years",
			CategorySlug: "laptops",
			ImageURL:     "https://images.boomstore.example/probook-ultra-14.jpg",
			ImageAlt:     "ProBook Ultra 14 laptop",
		},
		{
			Name:         "GameStation Titan X",
			Slug:         "gamestation-titan-x",
			Description:  "Flagship gaming tower with liquid cooling and RGB chassis",
			SKU:          "DES-GSTX-001",
			Brand:        "GameStation",
			PriceCents:   249900,
			Stock:        10,
			MinStock:     2,
			IsFeatured:   true,
			Warranty:     "3 years",
			CategorySlug: "desktops",
			ImageURL:     "https://images.boomstore.example/gamestation-titan-x.jpg",
			ImageAlt:     "GameStation Titan X tower",
		},
		{
			Name:         "Vortex RTX 5080 16GB",
			Slug:         "vortex-rtx-5080-16gb",
			Description:  "High-end graphics card with triple-fan cooling",
			SKU:          "CMP-V5080-001",
			Brand:        "Vortex",
			PriceCents:   119900,
			ComparePrice: 129900,
			Stock:        15,
			MinStock:     3,
			IsFeatured:   true,
			Warranty:     "3 years",
			CategorySlug: "components",
			ImageURL:     "https://images.boomstore.example/vortex-rtx-5080.jpg",
			ImageAlt:     "Vortex RTX 5080 graphics card",
		},
		{
			Name:         "SwiftRAM DDR5 64GB Kit",
			Slug:         "swiftram-ddr5-64gb-kit",
			Description:  "2x32GB DDR5-6000 memory kit",
			SKU:          "CMP-SR64-001",
			Brand:        "SwiftRAM",
			PriceCents:   24900,
			Stock:        40,
			MinStock:     10,
			CategorySlug: "components",
			ImageURL:     "https://images.boomstore.example/swiftram-ddr5-64gb.jpg",
			ImageAlt:     "SwiftRAM DDR5 memory kit",
		},
		{
			Name:         "ClickMaster Pro Mouse",
			Slug:         "clickmaster-pro-mouse",
			Description:  "Wireless ergonomic mouse with 8 programmable buttons",
			SKU:          "PER-CMPM-001",
			Brand:        "ClickMaster",
			PriceCents:   7900,
			Stock:        60,
			MinStock:     15,
			CategorySlug: "peripherals",
			ImageURL:     "https://images.boomstore.example/clickmaster-pro.jpg",
			ImageAlt:     "ClickMaster Pro wireless mouse",
		},
		{
			Name:         "TypeForge Mechanical Keyboard",
			Slug:         "typeforge-mechanical-keyboard",
			Description:  "Hot-swappable mechanical keyboard with tactile switches",
			SKU:          "PER-TFMK-001",
			Brand:        "TypeForge",
			PriceCents:   13900,
			ComparePrice: 15900,
			Stock:        35,
			MinStock:     8,
			IsFeatured:   true,
			Warranty:     "1 year",
			CategorySlug: "peripherals",
			ImageURL:     "https://images.boomstore.example/typeforge-keyboard.jpg",
			ImageAlt:     "TypeForge mechanical keyboard",
		},
		{
			Name:         "UltraView 27 4K Monitor",
			Slug:         "ultraview-27-4k-monitor",
			Description:  "27-inch 4K IPS display with USB-C docking",
			SKU:          "PER-UV27-001",
			Brand:        "UltraView",
			PriceCents:   54900,
			Stock:        20,
			MinStock:     4,
			Warranty:     "3 years",
			CategorySlug: "peripherals",
			ImageURL:     "https://images.boomstore.example/ultraview-27.jpg",
			ImageAlt:     "UltraView 27-inch 4K monitor",
		},
		{
			Name:         "OfficeSuite Pro License",
			Slug:         "officesuite-pro-license",
			Description:  "Lifetime license for the full productivity suite",
			SKU:          "SOF-OSP-001",
			Brand:        "OfficeSuite",
			PriceCents:   19900,
			Stock:        500,
			MinStock:     50,
			CategorySlug: "software",
			ImageURL:     "https://images.boomstore.example/officesuite-pro.jpg",
			ImageAlt:     "OfficeSuite Pro box art",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.CategorySlug], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	if err := ensureAdmin(ctx, pool, "admin@boomstore.local", "Admin", "admin123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if err := ensureSettings(ctx, pool); err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) (string, error) {
	const q = `
INSERT INTO categories (name, slug, description)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.Name, c.Slug, c.Description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	const q = `
INSERT INTO products (name, slug, description, sku, brand, price_cents, compare_price_cents,
                      stock, min_stock, is_featured, warranty, category_id)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), $8, $9, $10, NULLIF($11, ''), $12)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    sku = EXCLUDED.sku,
    brand = EXCLUDED.brand,
    price_cents = EXCLUDED.price_cents,
    compare_price_cents = EXCLUDED.compare_price_cents,
    stock = EXCLUDED.stock,
    min_stock = EXCLUDED.min_stock,
    is_featured = EXCLUDED.is_featured,
    warranty = EXCLUDED.warranty,
    category_id = EXCLUDED.category_id
RETURNING id::text
`
	var productID string
	err := pool.QueryRow(ctx, q,
		p.Name, p.Slug, p.Description, p.SKU, p.Brand, p.PriceCents, p.ComparePrice,
		p.Stock, p.MinStock, p.IsFeatured, p.Warranty, categoryID,
	).Scan(&productID)
	if err != nil {
		return err
	}

	if p.ImageURL == "" {
		return nil
	}

	const imgQ = `
INSERT INTO product_images (product_id, url, alt, is_primary, position)
SELECT $1, $2, $3, TRUE, 0
WHERE NOT EXISTS (
    SELECT 1 FROM product_images WHERE product_id = $1 AND url = $2
)
`
	_, err = pool.Exec(ctx, imgQ, productID, p.ImageURL, p.ImageAlt)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, name, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, name, password_hash, role)
VALUES ($1, $2, $3, 'admin')
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, name, hash)
	return err
}

func ensureSettings(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO settings (id, name, description, email, phone, address, currency, tax_rate)
VALUES (TRUE, 'Boom Informatique', 'Votre partenaire informatique de confiance',
        'contact@boom-informatique.fr', '', '', 'EUR', 20)
ON CONFLICT (id) DO NOTHING
`
	_, err := pool.Exec(ctx, q)
	return err
}
