package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one persisted line of a client's active cart. At most one row
// exists per (client, product); adding the same product again increments
// Quantity instead of inserting.
type CartItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"-"`
	ClientID  string          `gorm:"column:client_id;not null;index:idx_cart_items_client" json:"-"`
	ProductID string          `gorm:"column:product_id;not null" json:"productId"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"price"`
	Position  int             `gorm:"column:position;not null" json:"-"`
	AddedAt   time.Time       `gorm:"column:added_at;not null" json:"addedAt"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
