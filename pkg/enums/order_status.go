package enums

import "fmt"

// OrderStatus tracks the lifecycle of a storefront order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

var orderStatusDescriptions = map[OrderStatus]string{
	OrderStatusPending:    "Order received and being processed",
	OrderStatusProcessing: "Order is being prepared for shipment",
	OrderStatusShipped:    "Order has been shipped and is on the way",
	OrderStatusDelivered:  "Order has been delivered successfully",
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// Description returns the fixed customer-facing text for the status.
func (o OrderStatus) Description() string {
	if text, ok := orderStatusDescriptions[o]; ok {
		return text
	}
	return "Order status updated"
}

// Next returns the forward neighbour in the lifecycle, or the status itself
// when it is terminal.
func (o OrderStatus) Next() OrderStatus {
	switch o {
	case OrderStatusPending:
		return OrderStatusProcessing
	case OrderStatusProcessing:
		return OrderStatusShipped
	case OrderStatusShipped:
		return OrderStatusDelivered
	default:
		return o
	}
}

// IsTerminal reports whether no further progression is defined.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusDelivered
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
