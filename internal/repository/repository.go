package repository

import (
	"context"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
)

// ProductFilter defines exact-match filter criteria for listing products.
// A nil field matches every product.
type ProductFilter struct {
	Category *string
	Type     *string
	Brand    *string
}

// Matches reports whether p satisfies every set field of the filter.
func (f ProductFilter) Matches(p *domain.Product) bool {
	return matches(f.Category, p.Category) && matches(f.Type, p.Type) && matches(f.Brand, p.Brand)
}

func matches(want *string, got string) bool {
	return want == nil || *want == got
}

// ProductRepository defines read-only access to the product catalog.
type ProductRepository interface {
	// List returns products matching the filter in catalog order.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id int) (*domain.Product, error)

	// Count returns the number of products in the catalog.
	Count(ctx context.Context) (int, error)
}
