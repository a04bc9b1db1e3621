package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/repository"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Air", Price: decimal.NewFromInt(100), Brand: "Nike", Category: "men", Type: "رياضي", Sizes: []domain.Size{"42"}},
		{ID: 2, Name: "Boot", Price: decimal.NewFromInt(300), Brand: "Clarks", Category: "men", Type: "كاجوال"},
		{ID: 3, Name: "Pink", Price: decimal.NewFromInt(200), Brand: "Nike", Category: "women", Type: "رياضي"},
		{ID: 4, Name: "Mini", Price: decimal.NewFromInt(150), Brand: "Puma", Category: "kids", Type: "رياضي"},
	}
}

func newTestRepo(t *testing.T) *ProductRepository {
	t.Helper()
	repo, err := NewProductRepository(testProducts())
	require.NoError(t, err)
	return repo
}

func ids(products []domain.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestNewProductRepository_RejectsDuplicateIDs(t *testing.T) {
	products := testProducts()
	products[2].ID = 1

	_, err := NewProductRepository(products)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNewProductRepository_RejectsInvalidProduct(t *testing.T) {
	products := testProducts()
	products[1].Price = decimal.NewFromInt(-5)

	_, err := NewProductRepository(products)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed product")
}

func TestNewProductRepository_CopiesInput(t *testing.T) {
	products := testProducts()
	repo, err := NewProductRepository(products)
	require.NoError(t, err)

	products[0].Name = "changed"
	products[0].Sizes[0] = "1"

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Air", got.Name)
	assert.Equal(t, []domain.Size{"42"}, got.Sizes)
}

func ptr(s string) *string { return &s }

func TestList_Filters(t *testing.T) {
	repo := newTestRepo(t)

	tests := []struct {
		name   string
		filter repository.ProductFilter
		want   []int
	}{
		{name: "no filter keeps order", filter: repository.ProductFilter{}, want: []int{1, 2, 3, 4}},
		{name: "category", filter: repository.ProductFilter{Category: ptr("men")}, want: []int{1, 2}},
		{name: "category and type", filter: repository.ProductFilter{Category: ptr("men"), Type: ptr("رياضي")}, want: []int{1}},
		{name: "type only", filter: repository.ProductFilter{Type: ptr("رياضي")}, want: []int{1, 3, 4}},
		{name: "brand", filter: repository.ProductFilter{Brand: ptr("Nike")}, want: []int{1, 3}},
		{name: "case sensitive", filter: repository.ProductFilter{Brand: ptr("nike")}, want: []int{}},
		{name: "empty value is exact", filter: repository.ProductFilter{Category: ptr("")}, want: []int{}},
		{name: "unknown category", filter: repository.ProductFilter{Category: ptr("unisex")}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.NotNil(t, got, "empty results are an empty slice")
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestList_ReturnsCopies(t *testing.T) {
	repo := newTestRepo(t)

	first, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	first[0].Name = "mutated"
	first[0].Sizes[0] = "0"

	second, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Air", second[0].Name)
	assert.Equal(t, domain.Size("42"), second[0].Sizes[0])
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)

	for _, p := range testProducts() {
		got, err := repo.GetByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
	}

	_, err := repo.GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRepository_CancelledContext(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, repository.ProductFilter{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCount(t *testing.T) {
	repo := newTestRepo(t)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
