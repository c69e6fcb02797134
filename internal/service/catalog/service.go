package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"boomstore/internal/domain"
	productrepo "boomstore/internal/repository/product"
)

const (
	defaultLimit     = 12
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"
)

// Params holds the raw query-string values of a listing request.
type Params struct {
	Page      string
	Limit     string
	Category  string
	Search    string
	SortBy    string
	SortOrder string
	Featured  string
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ValidationError reports which query parameters were rejected.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query parameters: %s", strings.Join(e.Fields, ", "))
}

type Service struct {
	products   productrepo.Repository
	categories categoryRepo
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

func New(products productrepo.Repository, categories categoryRepo) *Service {
	return &Service{products: products, categories: categories}
}

// List validates the raw parameters, applies defaults, and returns the
// matching page of active products with pagination metadata.
func (s *Service) List(ctx context.Context, p Params) ([]domain.Product, Pagination, error) {
	query, err := parseParams(p)
	if err != nil {
		return nil, Pagination{}, err
	}

	products, total, err := s.products.List(ctx, query)
	if err != nil {
		return nil, Pagination{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	totalPages := (total + query.Limit - 1) / query.Limit
	return products, Pagination{
		Page:       query.Page,
		Limit:      query.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    query.Page < totalPages,
		HasPrev:    query.Page > 1,
	}, nil
}

// GetBySlug returns one active product with its category, images and
// variants.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

// Categories lists every category with its active product count.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func parseParams(p Params) (productrepo.ListQuery, error) {
	var invalid []string

	page := 1
	if p.Page != "" {
		n, err := strconv.Atoi(p.Page)
		if err != nil || n < 1 {
			invalid = append(invalid, "page")
		} else {
			page = n
		}
	}

	limit := defaultLimit
	if p.Limit != "" {
		n, err := strconv.Atoi(p.Limit)
		if err != nil || n < 1 {
			invalid = append(invalid, "limit")
		} else {
			limit = n
		}
	}

	sortBy := defaultSortBy
	if p.SortBy != "" {
		switch p.SortBy {
		case "name", "price", "createdAt":
			sortBy = p.SortBy
		default:
			invalid = append(invalid, "sortBy")
		}
	}

	sortOrder := defaultSortOrder
	if p.SortOrder != "" {
		switch p.SortOrder {
		case "asc", "desc":
			sortOrder = p.SortOrder
		default:
			invalid = append(invalid, "sortOrder")
		}
	}

	if len(invalid) > 0 {
		return productrepo.ListQuery{}, &ValidationError{Fields: invalid}
	}

	return productrepo.ListQuery{
		Page:         page,
		Limit:        limit,
		CategorySlug: strings.TrimSpace(p.Category),
		Search:       strings.TrimSpace(p.Search),
		SortBy:       sortBy,
		SortOrder:    sortOrder,
		FeaturedOnly: p.Featured == "true",
	}, nil
}
