// Package cart holds the line items of one shopping session.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
)

// Store is a session-owned cart. Each session creates its own Store and passes
// it to whatever needs it.
//
// A Store is not safe for concurrent use; it has exactly one writer.
type Store struct {
	items []domain.LineItem
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) find(key domain.LineKey) int {
	return slices.IndexFunc(s.items, func(li domain.LineItem) bool {
		return li.Key() == key
	})
}

// AddItem adds one unit of product in the given size and color. An existing
// line item for the same identity has its quantity incremented; otherwise a
// new line item is created from a copy of product.
func (s *Store) AddItem(product domain.Product, size, color string) {
	key := domain.LineKey{ProductID: product.ID, Size: size, Color: color}
	if i := s.find(key); i >= 0 {
		s.items[i].Quantity++
		return
	}
	s.items = append(s.items, domain.LineItem{
		Product:  product.Clone(),
		Size:     size,
		Color:    color,
		Quantity: 1,
	})
}

// RemoveItem deletes the matching line item. Unknown identities are ignored.
func (s *Store) RemoveItem(productID int, size, color string) {
	key := domain.LineKey{ProductID: productID, Size: size, Color: color}
	if i := s.find(key); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
}

// UpdateQuantity replaces the quantity of the matching line item. Quantities
// below 1 are ignored, as are unknown identities. It reports whether the cart
// changed.
func (s *Store) UpdateQuantity(productID int, size, color string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	key := domain.LineKey{ProductID: productID, Size: size, Color: color}
	i := s.find(key)
	if i < 0 {
		return false
	}
	s.items[i].Quantity = quantity
	return true
}

// Clear removes every line item.
func (s *Store) Clear() {
	s.items = nil
}

// Total returns the subtotal: the sum of price times quantity. Shipping is
// not included.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range s.items {
		total = total.Add(s.items[i].LineTotal())
	}
	return total
}

// Count returns the sum of quantities across all line items.
func (s *Store) Count() int {
	var count int
	for _, li := range s.items {
		count += li.Quantity
	}
	return count
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the line items in the order they were added.
func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	for i, li := range s.items {
		li.Product = li.Product.Clone()
		out[i] = li
	}
	return out
}

// Snapshot returns the current items with their price breakdown. It is
// recomputed on every call.
func (s *Store) Snapshot() domain.CartSnapshot {
	return domain.CartSnapshot{
		Items:   s.Items(),
		Count:   s.Count(),
		Summary: domain.Summarize(s.Total()),
	}
}
