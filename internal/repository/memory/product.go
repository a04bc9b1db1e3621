package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/repository"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
)

// ErrDuplicateID is returned when two seed products share an id.
var ErrDuplicateID = errors.New("duplicate product id")

// ProductRepository implements repository.ProductRepository over a product
// list fixed at construction. It is safe for concurrent readers because it is
// never written after NewProductRepository returns.
type ProductRepository struct {
	products []domain.Product
	byID     map[int]int
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository validates products and builds the id index. The slice
// is copied; later changes by the caller are not observed.
func NewProductRepository(products []domain.Product) (*ProductRepository, error) {
	r := &ProductRepository{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for i := range products {
		p := &products[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed product: %w", err)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p.Clone())
	}
	return r, nil
}

// List returns copies of the products matching filter in a single pass.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	for i := range r.products {
		if filter.Matches(&r.products[i]) {
			out = append(out, r.products[i].Clone())
		}
	}
	return out, nil
}

// GetByID returns a copy of the product with the given id.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", strconv.Itoa(id))
	}
	p := r.products[idx].Clone()
	return &p, nil
}

// Count returns the number of products held.
func (r *ProductRepository) Count(context.Context) (int, error) {
	return len(r.products), nil
}
