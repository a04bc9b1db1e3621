package domain

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(500)
	shippingFee           = decimal.NewFromInt(50)
)

// Summary is the price breakdown of a cart.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// FreeShipping reports whether the shipping fee was waived.
func (s Summary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

// Summarize computes shipping and total for a subtotal. Shipping is free only
// when the subtotal is strictly greater than the threshold.
func Summarize(subtotal decimal.Decimal) Summary {
	shipping := shippingFee
	if subtotal.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
