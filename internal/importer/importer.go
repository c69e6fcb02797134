package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boomstore/internal/domain"
	"boomstore/internal/service/admin"
)

type ProductWriter interface {
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error
}

type CategoryResolver interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products,
// matching existing rows by SKU.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryResolver
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryResolver) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

type csvRow struct {
	SKU          string
	Name         string
	Slug         string
	Desc         string
	Brand        string
	Cents        int64
	CompareCents int64
	Stock        int
	MinStock     int
	Featured     bool
	Warranty     string
	Category     string
	ImageURLs    []string
}

// Run parses CSV rows and upserts products. Rows carrying only an
// image URL extend the gallery of the preceding product row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.SKU != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.ImageURLs) > 0 {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.SKU == "" || row.Name == "" || row.Cents <= 0 || row.Category == "" {
		return fmt.Errorf("invalid product row (missing required fields) for sku %q", row.SKU)
	}

	category, err := i.categories.GetBySlug(ctx, row.Category)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unknown category %q for sku %q", row.Category, row.SKU)
		}
		return fmt.Errorf("resolve category %q: %w", row.Category, err)
	}

	slug := row.Slug
	if slug == "" {
		slug = admin.Slugify(row.Name)
	}

	p := domain.Product{
		SKU:         row.SKU,
		Name:        row.Name,
		Slug:        slug,
		Description: row.Desc,
		Brand:       row.Brand,
		PriceCents:  row.Cents,
		Stock:       row.Stock,
		MinStock:    row.MinStock,
		IsActive:    true,
		IsFeatured:  row.Featured,
		Warranty:    row.Warranty,
		CategoryID:  category.ID,
	}
	if row.CompareCents > 0 {
		p.ComparePriceCents = &row.CompareCents
	}

	existing, err := i.products.GetBySKU(ctx, row.SKU)
	switch {
	case err == nil:
		p.ID = existing.ID
		if _, err := i.products.Update(ctx, p); err != nil {
			return fmt.Errorf("update product %q: %w", row.SKU, err)
		}
	case errors.Is(err, domain.ErrNotFound):
		created, err := i.products.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("create product %q: %w", row.SKU, err)
		}
		p.ID = created.ID
	default:
		return fmt.Errorf("lookup product %q: %w", row.SKU, err)
	}

	if len(row.ImageURLs) == 0 {
		return nil
	}
	images := make([]domain.ProductImage, 0, len(row.ImageURLs))
	for _, url := range row.ImageURLs {
		images = append(images, domain.ProductImage{URL: url, Alt: row.Name})
	}
	if err := i.products.ReplaceImages(ctx, p.ID, images); err != nil {
		return fmt.Errorf("replace images for %q: %w", row.SKU, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	sku := pick(record, index, "sku")
	imageURL := pick(record, index, "image_url")

	if sku == "" && imageURL == "" {
		return nil
	}

	row := &csvRow{
		SKU:          sku,
		Name:         pick(record, index, "name"),
		Slug:         pick(record, index, "slug"),
		Desc:         pick(record, index, "description"),
		Brand:        pick(record, index, "brand"),
		Cents:        pickInt64(record, index, "price_cents"),
		CompareCents: pickInt64(record, index, "compare_price_cents"),
		Stock:        int(pickInt64(record, index, "stock")),
		MinStock:     int(pickInt64(record, index, "min_stock")),
		Featured:     strings.EqualFold(pick(record, index, "featured"), "true"),
		Warranty:     pick(record, index, "warranty"),
		Category:     pick(record, index, "category"),
	}
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func pickInt64(record []string, index map[string]int, key string) int64 {
	v, _ := strconv.ParseInt(pick(record, index, key), 10, 64)
	return v
}
