package checkout

import (
	"context"

	"github.com/quickmart/storefront-backend/internal/catalog"
	"github.com/quickmart/storefront-backend/internal/orders"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
	"github.com/quickmart/storefront-backend/pkg/logger"
	"github.com/quickmart/storefront-backend/pkg/pricing"
	"github.com/quickmart/storefront-backend/pkg/types"
)

// cartReader is the slice of the cart service checkout needs.
type cartReader interface {
	Get(ctx context.Context, clientID string) ([]models.CartItem, error)
	Clear(ctx context.Context, clientID string) ([]models.CartItem, error)
}

// orderCreator is the slice of the order service checkout needs.
type orderCreator interface {
	Create(ctx context.Context, params orders.CreateParams) (*models.Order, error)
}

// stockDecrementer reserves catalog stock for purchased items. Best
// effort; a failed decrement never unwinds a placed order.
type stockDecrementer interface {
	DecrementStock(ctx context.Context, id string, qty int) (*catalog.Product, error)
}

// PlaceOrderParams is the full checkout submission.
type PlaceOrderParams struct {
	ClientID        string
	ShippingAddress types.Address
	Payment         PaymentInfo
	Email           string
}

// Service turns a cart plus checkout form state into a placed order.
type Service interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*models.Order, error)
	Quote(ctx context.Context, clientID string) (*pricing.Quote, error)
}

type service struct {
	cart    cartReader
	orders  orderCreator
	catalog stockDecrementer
	logg    *logger.Logger
}

func NewService(cart cartReader, orderSvc orderCreator, catalog stockDecrementer, logg *logger.Logger) (Service, error) {
	if cart == nil || orderSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout service requires cart and order services")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout service requires a logger")
	}
	return &service{cart: cart, orders: orderSvc, catalog: catalog, logg: logg}, nil
}

func (s *service) Quote(ctx context.Context, clientID string) (*pricing.Quote, error) {
	items, err := s.cart.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	quote := pricing.QuoteFor(pricingLines(items))
	return &quote, nil
}

func (s *service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*models.Order, error) {
	items, err := s.cart.Get(ctx, params.ClientID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := ValidateShipping(params.ShippingAddress); err != nil {
		return nil, err
	}
	if err := ValidatePayment(params.Payment); err != nil {
		return nil, err
	}

	quote := pricing.QuoteFor(pricingLines(items))
	snapshot := make(models.OrderItems, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			AddedAt:   item.AddedAt,
		})
	}

	order, err := s.orders.Create(ctx, orders.CreateParams{
		ClientID:        params.ClientID,
		Items:           snapshot,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
		ShippingAddress: params.ShippingAddress.Normalized(),
		PaymentMethod:   PaymentSummary(params.Payment),
		Email:           params.Email,
	})
	if err != nil {
		return nil, err
	}

	s.reserveStock(ctx, order, snapshot)

	if _, err := s.cart.Clear(ctx, params.ClientID); err != nil {
		// The order exists; a stuck cart is logged, not fatal.
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID), "clearing cart after checkout", err)
	}
	return order, nil
}

func (s *service) reserveStock(ctx context.Context, order *models.Order, items models.OrderItems) {
	if s.catalog == nil {
		return
	}
	for _, item := range items {
		if _, err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logg.Error(s.logg.WithFields(ctx, map[string]any{
				"order_id":   order.ID,
				"product_id": item.ProductID,
			}), "decrementing stock", err)
		}
	}
}

func pricingLines(items []models.CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
