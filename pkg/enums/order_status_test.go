package enums

import "testing"

func TestOrderStatusProgression(t *testing.T) {
	t.Parallel()

	if next := OrderStatusPending.Next(); next != OrderStatusProcessing {
		t.Fatalf("pending should advance to processing, got %s", next)
	}
	if next := OrderStatusShipped.Next(); next != OrderStatusDelivered {
		t.Fatalf("shipped should advance to delivered, got %s", next)
	}
	if next := OrderStatusDelivered.Next(); next != OrderStatusDelivered {
		t.Fatalf("delivered is terminal, got %s", next)
	}
	if !OrderStatusDelivered.IsTerminal() {
		t.Fatal("delivered should be terminal")
	}
	if OrderStatusPending.IsTerminal() {
		t.Fatal("pending should not be terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("processing")
	if err != nil || status != OrderStatusProcessing {
		t.Fatalf("unexpected parse result %s %v", status, err)
	}
	if _, err := ParseOrderStatus("cancelled"); err == nil {
		t.Fatal("unknown status should not parse")
	}
}

func TestOrderStatusDescriptions(t *testing.T) {
	t.Parallel()

	if got := OrderStatusPending.Description(); got != "Order received and being processed" {
		t.Fatalf("unexpected pending description %q", got)
	}
	if got := OrderStatusDelivered.Description(); got != "Order has been delivered successfully" {
		t.Fatalf("unexpected delivered description %q", got)
	}
	if got := OrderStatus("unknown").Description(); got != "Order status updated" {
		t.Fatalf("unexpected fallback description %q", got)
	}
}
