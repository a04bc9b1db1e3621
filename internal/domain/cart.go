package domain

import "github.com/shopspring/decimal"

// LineKey identifies a cart line item.
type LineKey struct {
	ProductID int
	Size      string
	Color     string
}

// LineItem is one cart entry. It holds a copy of the product taken when the
// item was first added, not a reference into the catalog.
type LineItem struct {
	Product
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Key returns the identity of the line item.
func (li *LineItem) Key() LineKey {
	return LineKey{ProductID: li.ID, Size: li.Size, Color: li.Color}
}

// LineTotal returns price times quantity.
func (li *LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartSnapshot is a point-in-time view of a cart with its price breakdown.
type CartSnapshot struct {
	Items   []LineItem `json:"items"`
	Count   int        `json:"count"`
	Summary Summary    `json:"summary"`
}

// Empty reports whether the snapshot has no line items.
func (s *CartSnapshot) Empty() bool {
	return len(s.Items) == 0
}
