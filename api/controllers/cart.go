package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quickmart/storefront-backend/api/middleware"
	"github.com/quickmart/storefront-backend/api/responses"
	"github.com/quickmart/storefront-backend/api/validators"
	"github.com/quickmart/storefront-backend/internal/cart"
	"github.com/quickmart/storefront-backend/internal/catalog"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/pricing"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// cartView is the response shape for every cart endpoint: the line items
// plus the derived pricing block the storefront renders alongside them.
type cartView struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	pricing.Quote
}

func newCartView(items []models.CartItem) cartView {
	lines := make([]pricing.Line, 0, len(items))
	count := 0
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
		count += item.Quantity
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return cartView{Items: items, ItemCount: count, Quote: pricing.QuoteFor(lines)}
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Get(r.Context(), middleware.ClientIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

// CartAddItem merges a product into the cart. The unit price is resolved
// from the catalog at add time and frozen on the line item.
func CartAddItem(svc cart.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.GetByID(r.Context(), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.AddItem(r.Context(), middleware.ClientIDFromContext(r.Context()), product.ID, req.Quantity, product.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

// CartUpdateItem sets a line's quantity. Zero or negative removes the line.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var req updateItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.UpdateQuantity(r.Context(), middleware.ClientIDFromContext(r.Context()), productID, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		items, err := svc.RemoveItem(r.Context(), middleware.ClientIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Clear(r.Context(), middleware.ClientIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}
