package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/quickmart/storefront-backend/api/responses"
	"github.com/quickmart/storefront-backend/internal/catalog"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/logger"
)

// ProductList serves the catalog listing. Query parameters narrow the
// result: search, category (repeatable), minPrice, maxPrice, minRating,
// inStock, and sort (price-asc / price-desc).
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query := r.URL.Query()
		if query.Get("featured") == "true" {
			products, err := svc.Featured(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, products)
			return
		}
		if search := strings.TrimSpace(query.Get("search")); search != "" {
			products, err := svc.Search(r.Context(), search)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, products)
			return
		}

		params, err := filterParamsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.Filter(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		switch query.Get("sort") {
		case "price-asc":
			catalog.SortByPrice(products, true)
		case "price-desc":
			catalog.SortByPrice(products, false)
		}
		responses.WriteSuccess(w, products)
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		product, err := svc.GetByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func ProductPriceRange(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		priceRange, err := svc.GetPriceRange(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, priceRange)
	}
}

func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryTree serves categories with slugs and product counts for the
// storefront sidebar.
func CategoryTree(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := svc.CategoryTree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tree)
	}
}

func CategoryProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(chi.URLParam(r, "category"))
		if category == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category is required"))
			return
		}
		products, err := svc.GetByCategory(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func filterParamsFromQuery(r *http.Request) (catalog.FilterParams, error) {
	query := r.URL.Query()
	var params catalog.FilterParams

	if raw := strings.TrimSpace(query.Get("minPrice")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return params, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be a number")
		}
		params.PriceMin = &value
	}
	if raw := strings.TrimSpace(query.Get("maxPrice")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return params, pkgerrors.New(pkgerrors.CodeValidation, "maxPrice must be a number")
		}
		params.PriceMax = &value
	}
	if raw := strings.TrimSpace(query.Get("minRating")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, pkgerrors.New(pkgerrors.CodeValidation, "minRating must be a number")
		}
		params.MinRating = value
	}
	params.Categories = query["category"]
	params.InStockOnly = query.Get("inStock") == "true"
	return params, nil
}
