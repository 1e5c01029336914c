package pricing

import "github.com/shopspring/decimal"

// The storefront pricing policy. Applied identically everywhere a price is
// shown so cart, checkout and order confirmation never disagree.
var (
	taxRate               = decimal.NewFromFloat(0.08)
	freeShippingThreshold = decimal.NewFromInt(50)
	flatShippingFee       = decimal.NewFromFloat(9.99)
)

// Line is the minimal shape needed to price a line item.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Quote bundles the derived price components for a subtotal.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal sums unit price times quantity across the lines.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Tax applies the flat 8% rate, rounded to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}

// Shipping is free strictly above the threshold; a subtotal of exactly 50
// still pays the flat fee.
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// Total is subtotal plus tax plus shipping.
func Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(Tax(subtotal)).Add(Shipping(subtotal))
}

// QuoteFor derives every price component from the given lines.
func QuoteFor(lines []Line) Quote {
	subtotal := Subtotal(lines)
	return Quote{
		Subtotal: subtotal,
		Tax:      Tax(subtotal),
		Shipping: Shipping(subtotal),
		Total:    Total(subtotal),
	}
}
