package admin

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"boomstore/internal/domain"
)

// ProductInput carries the fields accepted by product create/update.
type ProductInput struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	SKU               string `json:"sku"`
	Brand             string `json:"brand"`
	PriceCents        int64  `json:"priceCents"`
	ComparePriceCents *int64 `json:"comparePriceCents"`
	Stock             int    `json:"stock"`
	MinStock          int    `json:"minStock"`
	CategoryID        string `json:"categoryId"`
	IsActive          *bool  `json:"isActive"`
	IsFeatured        bool   `json:"isFeatured"`
	Warranty          string `json:"warranty"`
}

// ListProducts returns every product with category and images, newest
// first, for the back-office table.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

// CreateProduct validates the payload, enforces SKU uniqueness, derives
// the slug from the name, and returns the stored product with its
// relations.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" ||
		in.PriceCents <= 0 || in.Stock <= 0 || strings.TrimSpace(in.CategoryID) == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if _, err := s.products.GetBySKU(ctx, in.SKU); err == nil {
		return nil, ErrSKUExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return s.products.Create(ctx, domain.Product{
		Name:              in.Name,
		Slug:              Slugify(in.Name),
		Description:       in.Description,
		SKU:               in.SKU,
		Brand:             in.Brand,
		PriceCents:        in.PriceCents,
		ComparePriceCents: in.ComparePriceCents,
		Stock:             in.Stock,
		MinStock:          in.MinStock,
		IsActive:          active,
		IsFeatured:        in.IsFeatured,
		Warranty:          in.Warranty,
		CategoryID:        in.CategoryID,
	})
}

// UpdateProduct rewrites an existing product. The SKU may change only
// to a value no other product holds; a missing category id keeps the
// current one.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" ||
		in.PriceCents <= 0 || in.Stock <= 0 {
		return nil, ErrMissingFields
	}

	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != existing.SKU {
		if _, err := s.products.GetBySKU(ctx, in.SKU); err == nil {
			return nil, ErrSKUExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	categoryID := in.CategoryID
	if strings.TrimSpace(categoryID) == "" {
		categoryID = existing.CategoryID
	}
	active := existing.IsActive
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return s.products.Update(ctx, domain.Product{
		ID:                id,
		Name:              in.Name,
		Slug:              Slugify(in.Name),
		Description:       in.Description,
		SKU:               in.SKU,
		Brand:             in.Brand,
		PriceCents:        in.PriceCents,
		ComparePriceCents: in.ComparePriceCents,
		Stock:             in.Stock,
		MinStock:          in.MinStock,
		IsActive:          active,
		IsFeatured:        in.IsFeatured,
		Warranty:          in.Warranty,
		CategoryID:        categoryID,
	})
}

// DeleteProduct removes a product unless order lines still reference
// it. Images and variants cascade in the store.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}
	refs, err := s.products.ReferenceCount(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductReferenced
	}
	return s.products.Delete(ctx, id)
}

var slugScrub = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a product name.
func Slugify(name string) string {
	slug := slugScrub.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
