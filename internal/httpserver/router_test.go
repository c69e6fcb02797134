package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boomstore/internal/cartstore"
	"boomstore/internal/domain"
	"boomstore/internal/service/admin"
	authsvc "boomstore/internal/service/auth"
	"boomstore/internal/service/catalog"
)

type stubCatalogService struct {
	products   []domain.Product
	pagination catalog.Pagination
	categories []domain.Category
	listErr    error
}

func (s *stubCatalogService) List(_ context.Context, _ catalog.Params) ([]domain.Product, catalog.Pagination, error) {
	return s.products, s.pagination, s.listErr
}

func (s *stubCatalogService) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalogService) Categories(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

type stubAuthService struct {
	user     *domain.User
	token    string
	loginErr error
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, s.token, nil
}

func (s *stubAuthService) UserFromToken(_ context.Context, token string) (*domain.User, error) {
	if s.user == nil || token != s.token {
		return nil, authsvc.ErrInvalidToken
	}
	return s.user, nil
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

type stubAdminService struct {
	products    []domain.Product
	orders      []domain.Order
	users       []domain.User
	settings    *domain.Settings
	analytics   *admin.Analytics
	updatedUser *domain.User
	err         error
}

func (s *stubAdminService) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubAdminService) CreateProduct(_ context.Context, _ admin.ProductInput) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: "new-id"}, nil
}

func (s *stubAdminService) UpdateProduct(_ context.Context, id string, _ admin.ProductInput) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: id}, nil
}

func (s *stubAdminService) DeleteProduct(_ context.Context, _ string) error { return s.err }

func (s *stubAdminService) ListOrders(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubAdminService) UpdateOrderStatus(_ context.Context, id, status string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{ID: id, Status: status}, nil
}

func (s *stubAdminService) ListUsers(_ context.Context) ([]domain.User, error) {
	return s.users, s.err
}

func (s *stubAdminService) UpdateUserRole(_ context.Context, _, targetID, role string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updatedUser = &domain.User{ID: targetID, Role: role}
	return s.updatedUser, nil
}

func (s *stubAdminService) GetSettings(_ context.Context) (*domain.Settings, error) {
	return s.settings, s.err
}

func (s *stubAdminService) UpdateSettings(_ context.Context, in domain.Settings) (*domain.Settings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &in, nil
}

func (s *stubAdminService) GetAnalytics(_ context.Context, _ string) (*admin.Analytics, error) {
	return s.analytics, s.err
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	if deps.Catalog == nil {
		deps.Catalog = &stubCatalogService{}
	}
	if deps.Auth == nil {
		deps.Auth = &stubAuthService{}
	}
	if deps.Admin == nil {
		deps.Admin = &stubAdminService{}
	}
	if deps.Carts == nil {
		deps.Carts = cartstore.NewMemoryStorage()
	}
	router, err := buildRouter(logDiscard(), nil, deps, "*")
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func adminAuth() *stubAuthService {
	return &stubAuthService{
		user:  &domain.User{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin},
		token: "admin-token",
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBuildRouter_MissingDeps(t *testing.T) {
	if _, err := buildRouter(logDiscard(), nil, Deps{}, "*"); err == nil {
		t.Fatalf("expected error for missing dependencies")
	}
}

func TestAdminRoutes_RejectWithoutToken(t *testing.T) {
	router := newTestRouter(t, Deps{Auth: adminAuth()})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/products"},
		{http.MethodPost, "/admin/products"},
		{http.MethodDelete, "/admin/products/p1"},
		{http.MethodGet, "/admin/orders"},
		{http.MethodGet, "/admin/users"},
		{http.MethodGet, "/admin/settings"},
		{http.MethodGet, "/admin/analytics"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	auth := &stubAuthService{
		user:  &domain.User{ID: "u1", Role: domain.RoleCustomer},
		token: "customer-token",
	}
	router := newTestRouter(t, Deps{Auth: auth})

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for customer role, got %d", rec.Code)
	}
}

func TestAdminListProducts_Authorized(t *testing.T) {
	router := newTestRouter(t, Deps{Auth: adminAuth(), Admin: &stubAdminService{}})

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array body, got %s", rec.Body.String())
	}
}

func TestAdminUpdateUser_ServiceErrorsMapTo400(t *testing.T) {
	router := newTestRouter(t, Deps{
		Auth:  adminAuth(),
		Admin: &stubAdminService{err: admin.ErrSelfDemotion},
	})

	req := httptest.NewRequest(http.MethodPut, "/admin/users/admin-1", strings.NewReader(`{"role":"customer"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "cannot change your own admin role" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestAdminDeleteProduct_Referenced(t *testing.T) {
	router := newTestRouter(t, Deps{
		Auth:  adminAuth(),
		Admin: &stubAdminService{err: admin.ErrProductReferenced},
	})

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/p1", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler(t *testing.T) {
	auth := adminAuth()
	router := newTestRouter(t, Deps{Auth: auth})

	body := `{"email":"admin@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token":"admin-token"`) {
		t.Fatalf("expected token in body: %s", rec.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router := newTestRouter(t, Deps{Auth: &stubAuthService{loginErr: authsvc.ErrInvalidCredentials}})

	body := `{"email":"admin@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"x@y.z"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMeHandler_Unauthorized(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
