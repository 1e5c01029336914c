package types

import (
	"time"

	"github.com/quickmart/storefront-backend/pkg/enums"
)

// TimelineEntry is one append-only audit record of an order status change.
type TimelineEntry struct {
	Status      enums.OrderStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Description string            `json:"description"`
}

// Timeline is the ordered sequence of status transitions for an order.
type Timeline []TimelineEntry
