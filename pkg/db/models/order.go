package models

import (
	"time"

	"github.com/quickmart/storefront-backend/pkg/enums"
	"github.com/quickmart/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// OrderItem is the immutable line-item snapshot copied from the cart when the
// order was placed. Later cart mutations never reach it.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	AddedAt   time.Time       `json:"addedAt"`
}

// OrderItems is stored as a JSON document alongside the order row.
type OrderItems []OrderItem

// Order is one record in the append-only order history.
type Order struct {
	ID                string            `gorm:"column:id;primaryKey" json:"id"`
	ClientID          string            `gorm:"column:client_id;not null;index:idx_orders_client" json:"-"`
	Items             OrderItems        `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	Subtotal          decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Tax               decimal.Decimal   `gorm:"column:tax;type:numeric(12,2);not null" json:"tax"`
	Shipping          decimal.Decimal   `gorm:"column:shipping;type:numeric(12,2);not null" json:"shipping"`
	Total             decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	ShippingAddress   types.Address     `gorm:"column:shipping_address;type:jsonb;serializer:json" json:"shippingAddress"`
	PaymentMethod     string            `gorm:"column:payment_method;not null" json:"paymentMethod"`
	Email             string            `gorm:"column:email" json:"email,omitempty"`
	Status            enums.OrderStatus `gorm:"column:status;not null" json:"status"`
	EstimatedDelivery time.Time         `gorm:"column:estimated_delivery;not null" json:"estimatedDelivery"`
	Timeline          types.Timeline    `gorm:"column:timeline;type:jsonb;serializer:json" json:"timeline"`
	CreatedAt         time.Time         `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
