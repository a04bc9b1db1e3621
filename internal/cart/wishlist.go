package cart

import "slices"

// Wishlist is a session-owned set of product ids. Like Store it has a single
// writer and no locking.
type Wishlist struct {
	ids []int
}

// NewWishlist creates an empty wishlist.
func NewWishlist() *Wishlist {
	return &Wishlist{}
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is in the wishlist afterwards.
func (w *Wishlist) Toggle(id int) bool {
	if i := slices.Index(w.ids, id); i >= 0 {
		w.ids = slices.Delete(w.ids, i, i+1)
		return false
	}
	w.ids = append(w.ids, id)
	return true
}

// Contains reports whether id is in the wishlist.
func (w *Wishlist) Contains(id int) bool {
	return slices.Contains(w.ids, id)
}

// IDs returns the wishlisted ids in the order they were added.
func (w *Wishlist) IDs() []int {
	return slices.Clone(w.ids)
}
