package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boomstore/internal/domain"
	"boomstore/internal/service/catalog"
)

func TestListProductsHandler(t *testing.T) {
	svc := &stubCatalogService{
		products: []domain.Product{
			{ID: "p1", Name: "Laptop", Slug: "laptop", PriceCents: 99900},
		},
		pagination: catalog.Pagination{Page: 1, Limit: 12, Total: 1, TotalPages: 1},
	}
	router := newTestRouter(t, Deps{Catalog: svc})

	req := httptest.NewRequest(http.MethodGet, "/products?sortBy=price&sortOrder=asc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Products   []domain.Product   `json:"products"`
		Pagination catalog.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Products) != 1 || body.Products[0].Slug != "laptop" {
		t.Fatalf("unexpected products: %+v", body.Products)
	}
	if body.Pagination.Total != 1 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestListProductsHandler_InvalidParams(t *testing.T) {
	svc := &stubCatalogService{
		listErr: &catalog.ValidationError{Fields: []string{"sortBy"}},
	}
	router := newTestRouter(t, Deps{Catalog: svc})

	req := httptest.NewRequest(http.MethodGet, "/products?sortBy=stock", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sortBy") {
		t.Fatalf("expected offending field in body: %s", rec.Body.String())
	}
}

func TestGetProductHandler(t *testing.T) {
	svc := &stubCatalogService{
		products: []domain.Product{{ID: "p1", Name: "Laptop", Slug: "laptop"}},
	}
	router := newTestRouter(t, Deps{Catalog: svc})

	req := httptest.NewRequest(http.MethodGet, "/products/laptop", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"slug":"laptop"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetProductHandler_NotFound(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "product not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListCategoriesHandler_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"categories":[]`) {
		t.Fatalf("expected empty categories array, got %s", rec.Body.String())
	}
}
