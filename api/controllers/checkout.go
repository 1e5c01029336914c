package controllers

import (
	"net/http"

	"github.com/quickmart/storefront-backend/api/middleware"
	"github.com/quickmart/storefront-backend/api/responses"
	"github.com/quickmart/storefront-backend/api/validators"
	"github.com/quickmart/storefront-backend/internal/checkout"
	"github.com/quickmart/storefront-backend/pkg/enums"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/types"
)

type checkoutRequest struct {
	ShippingAddress types.Address          `json:"shippingAddress"`
	Payment         checkoutPaymentRequest `json:"payment"`
	Email           string                 `json:"email" validate:"omitempty,email"`
}

type checkoutPaymentRequest struct {
	Method     string `json:"method" validate:"required"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	CardName   string `json:"cardName"`
}

// Checkout places an order from the current cart. Validation failures
// carry the same messages the checkout form shows inline.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), checkout.PlaceOrderParams{
			ClientID:        middleware.ClientIDFromContext(r.Context()),
			ShippingAddress: req.ShippingAddress,
			Payment: checkout.PaymentInfo{
				Method:     enums.PaymentMethod(req.Payment.Method),
				CardNumber: req.Payment.CardNumber,
				ExpiryDate: req.Payment.ExpiryDate,
				CVV:        req.Payment.CVV,
				CardName:   req.Payment.CardName,
			},
			Email: req.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
