package product

import (
	"context"

	"boomstore/internal/domain"
)

// ListQuery carries the validated catalog listing parameters.
type ListQuery struct {
	Page         int
	Limit        int
	CategorySlug string
	Search       string
	SortBy       string
	SortOrder    string
	FeaturedOnly bool
}

// Offset derives the row offset for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]domain.Product, int, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ReplaceImages(ctx context.Context, productID string, images []domain.ProductImage) error
	ReferenceCount(ctx context.Context, id string) (int, error)
	CountActive(ctx context.Context) (int, error)
}
