package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"boomstore/internal/domain"
	productrepo "boomstore/internal/repository/product"
)

type stubProductRepo struct {
	products []domain.Product
	total    int
	lastQ    productrepo.ListQuery
	err      error
}

func (s *stubProductRepo) List(_ context.Context, q productrepo.ListQuery) ([]domain.Product, int, error) {
	s.lastQ = q
	return s.products, s.total, s.err
}

func (s *stubProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) GetBySKU(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProductRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubProductRepo) ReplaceImages(_ context.Context, _ string, _ []domain.ProductImage) error {
	return nil
}

func (s *stubProductRepo) ReferenceCount(_ context.Context, _ string) (int, error) { return 0, nil }

func (s *stubProductRepo) CountActive(_ context.Context) (int, error) {
	return len(s.products), nil
}

type stubCategoryList struct {
	categories []domain.Category
}

func (s *stubCategoryList) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func TestList_Defaults(t *testing.T) {
	repo := &stubProductRepo{total: 1, products: []domain.Product{{ID: "p1", Slug: "one"}}}
	svc := New(repo, &stubCategoryList{})

	_, page, err := svc.List(context.Background(), Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if repo.lastQ.Page != 1 || repo.lastQ.Limit != 12 {
		t.Fatalf("expected defaults page=1 limit=12, got %+v", repo.lastQ)
	}
	if repo.lastQ.SortBy != "createdAt" || repo.lastQ.SortOrder != "desc" {
		t.Fatalf("expected default sort createdAt desc, got %+v", repo.lastQ)
	}
	if page.Page != 1 || page.Total != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
}

func TestList_InvalidParamsNameFields(t *testing.T) {
	svc := New(&stubProductRepo{}, &stubCategoryList{})

	_, _, err := svc.List(context.Background(), Params{
		Page:      "zero",
		Limit:     "-3",
		SortBy:    "stock",
		SortOrder: "sideways",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(vErr.Fields) != 4 {
		t.Fatalf("expected 4 invalid fields, got %v", vErr.Fields)
	}
	for _, f := range []string{"page", "limit", "sortBy", "sortOrder"} {
		if !strings.Contains(err.Error(), f) {
			t.Fatalf("expected %q in error, got %q", f, err.Error())
		}
	}
}

func TestList_PaginationMath(t *testing.T) {
	repo := &stubProductRepo{total: 25, products: make([]domain.Product, 12)}
	svc := New(repo, &stubCategoryList{})

	_, page, err := svc.List(context.Background(), Params{Page: "2", Limit: "12"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 items, got %d", page.TotalPages)
	}
	if !page.HasNext || !page.HasPrev {
		t.Fatalf("expected hasNext and hasPrev on middle page: %+v", page)
	}
	if repo.lastQ.Offset() != 12 {
		t.Fatalf("expected offset 12, got %d", repo.lastQ.Offset())
	}
}

func TestList_EmptyResult(t *testing.T) {
	repo := &stubProductRepo{total: 0, products: nil}
	svc := New(repo, &stubCategoryList{})

	products, page, err := svc.List(context.Background(), Params{Search: "nothing"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if products == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(products) != 0 || page.Total != 0 || page.TotalPages != 0 {
		t.Fatalf("unexpected empty response: %+v %+v", products, page)
	}
	if page.HasNext || page.HasPrev {
		t.Fatalf("expected no page links on empty result: %+v", page)
	}
}

func TestList_FiltersPassedThrough(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo, &stubCategoryList{})

	_, _, err := svc.List(context.Background(), Params{
		Category: "laptops",
		Search:   " gaming ",
		Featured: "true",
		SortBy:   "price",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastQ.CategorySlug != "laptops" {
		t.Fatalf("expected category slug, got %q", repo.lastQ.CategorySlug)
	}
	if repo.lastQ.Search != "gaming" {
		t.Fatalf("expected trimmed search, got %q", repo.lastQ.Search)
	}
	if !repo.lastQ.FeaturedOnly {
		t.Fatalf("expected featured filter")
	}
	if repo.lastQ.SortBy != "price" {
		t.Fatalf("expected price sort, got %q", repo.lastQ.SortBy)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := New(&stubProductRepo{}, &stubCategoryList{})

	_, err := svc.GetBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	svc := New(&stubProductRepo{}, &stubCategoryList{categories: []domain.Category{
		{ID: "c1", Name: "Laptops", Slug: "laptops", ProductCount: 4},
	}})

	cats, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 1 || cats[0].ProductCount != 4 {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}
