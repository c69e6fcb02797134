package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boomstore/internal/cartstore"
)

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartView {
	t.Helper()
	var view cartView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode cart: %v body=%s", err, rec.Body.String())
	}
	return view
}

func addItem(t *testing.T, router http.Handler, session, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(cartSessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	return rec
}

func TestGetCart_MintsSession(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(cartSessionHeader) == "" {
		t.Fatalf("expected a session id in the response header")
	}
	view := decodeCart(t, rec)
	if len(view.Items) != 0 || view.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestAddCartItem(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	rec := addItem(t, router, "", `{"productId":"p1","name":"Laptop","priceCents":99900,"stock":5}`)
	session := rec.Header().Get(cartSessionHeader)
	if session == "" {
		t.Fatalf("expected session header")
	}

	view := decodeCart(t, rec)
	if len(view.Items) != 1 || view.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart: %+v", view)
	}
	if view.TotalPriceCents != 99900 {
		t.Fatalf("expected total 99900, got %d", view.TotalPriceCents)
	}
	if !view.IsOpen {
		t.Fatalf("expected drawer open after add")
	}
	if view.Items[0].MaxQuantity != 5 {
		t.Fatalf("expected max quantity defaulted to stock, got %d", view.Items[0].MaxQuantity)
	}
}

func TestAddCartItem_MergesAndCaps(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	payload := `{"productId":"p1","name":"Laptop","priceCents":1000,"stock":2}`
	rec := addItem(t, router, "", payload)
	session := rec.Header().Get(cartSessionHeader)

	for i := 0; i < 3; i++ {
		rec = addItem(t, router, session, payload)
	}

	view := decodeCart(t, rec)
	if len(view.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity capped at stock 2, got %d", view.Items[0].Quantity)
	}
}

func TestAddCartItem_MissingFields(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"name":"Laptop"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateCartItem(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	rec := addItem(t, router, "", `{"productId":"p1","name":"Laptop","priceCents":1000,"stock":10}`)
	session := rec.Header().Get(cartSessionHeader)

	req := httptest.NewRequest(http.MethodPut, "/cart/items/p1", strings.NewReader(`{"quantity":4}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	view := decodeCart(t, rec)
	if view.Items[0].Quantity != 4 || view.TotalItems != 4 {
		t.Fatalf("unexpected cart: %+v", view)
	}
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	rec := addItem(t, router, "", `{"productId":"p1","name":"Laptop","priceCents":1000,"stock":10}`)
	session := rec.Header().Get(cartSessionHeader)

	req := httptest.NewRequest(http.MethodPut, "/cart/items/p1", strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	view := decodeCart(t, rec)
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %+v", view.Items)
	}
}

func TestRemoveCartItem_Idempotent(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	rec := addItem(t, router, "", `{"productId":"p1","name":"Laptop","priceCents":1000,"stock":10}`)
	session := rec.Header().Get(cartSessionHeader)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/cart/items/p1", nil)
		req.Header.Set(cartSessionHeader, session)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("remove #%d: expected 200, got %d", i, rec.Code)
		}
	}
	view := decodeCart(t, rec)
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", view.Items)
	}
}

func TestClearCart(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	rec := addItem(t, router, "", `{"productId":"p1","name":"Laptop","priceCents":1000,"stock":10}`)
	session := rec.Header().Get(cartSessionHeader)
	addItem(t, router, session, `{"productId":"p2","name":"Mouse","priceCents":500,"stock":10}`)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	req.Header.Set(cartSessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	view := decodeCart(t, rec)
	if view.TotalItems != 0 || view.TotalPriceCents != 0 {
		t.Fatalf("expected cleared cart, got %+v", view)
	}
}

func TestCart_PersistsAcrossRequests(t *testing.T) {
	storage := cartstore.NewMemoryStorage()
	router := newTestRouter(t, Deps{Carts: storage})

	rec := addItem(t, router, "", `{"productId":"p1","name":"Laptop","priceCents":1000,"stock":10}`)
	session := rec.Header().Get(cartSessionHeader)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(cartSessionHeader, session)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	view := decodeCart(t, rec)
	if len(view.Items) != 1 || view.Items[0].ProductID != "p1" {
		t.Fatalf("expected persisted item, got %+v", view.Items)
	}
	// The drawer flag is transient; a fresh request starts closed.
	if view.IsOpen {
		t.Fatalf("expected drawer closed on reload")
	}
}
