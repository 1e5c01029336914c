package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/quickmart/storefront-backend/internal/cart"
	"github.com/quickmart/storefront-backend/pkg/db/models"
)

func testCart(t *testing.T) cart.Service {
	t.Helper()
	svc, err := cart.NewService(testLogger(), cart.Options{})
	if err != nil {
		t.Fatalf("create cart service: %v", err)
	}
	return svc
}

func TestCartAddItemResolvesPriceFromCatalog(t *testing.T) {
	cartSvc := testCart(t)
	catalogSvc := testCatalog(t)
	logg := testLogger()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":"1","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CartAddItem(cartSvc, catalogSvc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Items     []models.CartItem `json:"items"`
		ItemCount int               `json:"itemCount"`
		Subtotal  decimal.Decimal   `json:"subtotal"`
	}
	decodeData(t, rec.Body, &view)
	if len(view.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(view.Items))
	}
	if view.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", view.ItemCount)
	}

	product, err := catalogSvc.GetByID(req.Context(), "1")
	if err != nil {
		t.Fatalf("load product: %v", err)
	}
	if !view.Items[0].UnitPrice.Equal(product.Price) {
		t.Fatalf("expected catalog price %s frozen on line, got %s", product.Price, view.Items[0].UnitPrice)
	}
	if !view.Subtotal.Equal(product.Price.Mul(decimal.NewFromInt(2))) {
		t.Fatalf("unexpected subtotal %s", view.Subtotal)
	}
}

func TestCartAddItemRejectsUnknownProduct(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":"999","quantity":1}`))
	rec := httptest.NewRecorder()
	CartAddItem(testCart(t), testCatalog(t), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCartAddItemRejectsInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing product", `{"quantity":1}`},
		{"zero quantity", `{"productId":"1","quantity":0}`},
		{"unknown field", `{"productId":"1","quantity":1,"color":"red"}`},
		{"malformed json", `{"productId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			CartAddItem(testCart(t), testCatalog(t), testLogger()).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
		})
	}
}

func TestCartUpdateItemRemovesOnZeroQuantity(t *testing.T) {
	cartSvc := testCart(t)
	catalogSvc := testCatalog(t)
	logg := testLogger()

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":"1","quantity":3}`))
	CartAddItem(cartSvc, catalogSvc, logg).ServeHTTP(httptest.NewRecorder(), add)

	update := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/1", strings.NewReader(`{"quantity":0}`))
	rc := chi.NewRouteContext()
	rc.URLParams.Add("productId", "1")
	update = update.WithContext(context.WithValue(update.Context(), chi.RouteCtxKey, rc))
	rec := httptest.NewRecorder()
	CartUpdateItem(cartSvc, logg).ServeHTTP(rec, update)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var view struct {
		Items []models.CartItem `json:"items"`
	}
	decodeData(t, rec.Body, &view)
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart after zero-quantity update, got %d items", len(view.Items))
	}
}

func TestCartClear(t *testing.T) {
	cartSvc := testCart(t)
	catalogSvc := testCatalog(t)
	logg := testLogger()

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":"2","quantity":1}`))
	CartAddItem(cartSvc, catalogSvc, logg).ServeHTTP(httptest.NewRecorder(), add)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartClear(cartSvc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var view struct {
		Items     []models.CartItem `json:"items"`
		ItemCount int               `json:"itemCount"`
	}
	decodeData(t, rec.Body, &view)
	if view.ItemCount != 0 || len(view.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", view)
	}
}
