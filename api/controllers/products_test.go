package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quickmart/storefront-backend/internal/catalog"
	"github.com/quickmart/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func testCatalog(t *testing.T) catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(catalog.Options{})
	if err != nil {
		t.Fatalf("create catalog service: %v", err)
	}
	return svc
}

func requestWithURLParam(method, url, key, value string) *http.Request {
	req := httptest.NewRequest(method, url, nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func decodeData(t *testing.T, body io.Reader, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestProductListFiltersByQuery(t *testing.T) {
	svc := testCatalog(t)
	logg := testLogger()

	t.Run("search short-circuits filters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=headphones", nil)
		rec := httptest.NewRecorder()
		ProductList(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		var products []catalog.Product
		decodeData(t, rec.Body, &products)
		if len(products) == 0 {
			t.Fatalf("expected search hits for headphones")
		}
	})

	t.Run("category and stock filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Electronics&inStock=true", nil)
		rec := httptest.NewRecorder()
		ProductList(svc, logg).ServeHTTP(rec, req)

		var products []catalog.Product
		decodeData(t, rec.Body, &products)
		for _, p := range products {
			if p.Category != "Electronics" {
				t.Fatalf("unexpected category %s", p.Category)
			}
			if p.Stock <= 0 {
				t.Fatalf("expected in-stock products only, got stock %d for %s", p.Stock, p.ID)
			}
		}
	})

	t.Run("price sort ascending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price-asc", nil)
		rec := httptest.NewRecorder()
		ProductList(svc, logg).ServeHTTP(rec, req)

		var products []catalog.Product
		decodeData(t, rec.Body, &products)
		for i := 1; i < len(products); i++ {
			if products[i].Price.LessThan(products[i-1].Price) {
				t.Fatalf("products not sorted ascending at index %d", i)
			}
		}
	})

	t.Run("invalid minPrice", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?minPrice=abc", nil)
		rec := httptest.NewRecorder()
		ProductList(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 got %d", rec.Code)
		}
	})
}

func TestProductDetail(t *testing.T) {
	svc := testCatalog(t)
	logg := testLogger()

	t.Run("found", func(t *testing.T) {
		req := requestWithURLParam(http.MethodGet, "/api/v1/products/1", "productId", "1")
		rec := httptest.NewRecorder()
		ProductDetail(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		var product catalog.Product
		decodeData(t, rec.Body, &product)
		if product.ID != "1" {
			t.Fatalf("expected product 1 got %s", product.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := requestWithURLParam(http.MethodGet, "/api/v1/products/999", "productId", "999")
		rec := httptest.NewRecorder()
		ProductDetail(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 got %d", rec.Code)
		}
	})
}

func TestCategoryList(t *testing.T) {
	svc := testCatalog(t)
	logg := testLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	CategoryList(svc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var names []string
	decodeData(t, rec.Body, &names)
	if len(names) == 0 {
		t.Fatalf("expected category names")
	}
}

func TestCategoryTree(t *testing.T) {
	svc := testCatalog(t)
	logg := testLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/tree", nil)
	rec := httptest.NewRecorder()
	CategoryTree(svc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var nodes []catalog.CategoryNode
	decodeData(t, rec.Body, &nodes)
	if len(nodes) == 0 {
		t.Fatalf("expected category nodes")
	}
	for _, node := range nodes {
		if node.Count <= 0 {
			t.Fatalf("category %s has no products", node.Name)
		}
	}
}

func TestProductFeaturedReturnsOnlyFlagged(t *testing.T) {
	svc := testCatalog(t)
	logg := testLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/featured", nil)
	rec := httptest.NewRecorder()
	ProductFeatured(svc, logg).ServeHTTP(rec, req)

	var products []catalog.Product
	decodeData(t, rec.Body, &products)
	if len(products) == 0 {
		t.Fatalf("expected featured products")
	}
	for _, p := range products {
		if !p.Featured {
			t.Fatalf("product %s is not featured", p.ID)
		}
	}
}
