package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/repository"
)

// CatalogService implements the read-only product queries.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListAll returns every product in catalog order.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListByCategory returns the products whose category equals category.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, repository.ProductFilter{Category: &category})
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

// ListByBrand returns the products whose brand equals brand.
func (s *CatalogService) ListByBrand(ctx context.Context, brand string) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, repository.ProductFilter{Brand: &brand})
	if err != nil {
		return nil, fmt.Errorf("list products by brand: %w", err)
	}
	return products, nil
}

// List returns the products matching the listing page filter. Empty or "all"
// fields are wildcards.
func (s *CatalogService) List(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	var pf repository.ProductFilter
	if !domain.Wildcard(filter.Category) {
		pf.Category = &filter.Category
	}
	if !domain.Wildcard(filter.Type) {
		pf.Type = &filter.Type
	}
	if pf.Category == nil && pf.Type == nil {
		return s.ListAll(ctx)
	}

	products, err := s.repo.List(ctx, pf)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product by its id.
func (s *CatalogService) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// GetDetail retrieves a product with its product page defaults applied.
func (s *CatalogService) GetDetail(ctx context.Context, id int) (*domain.ProductDetail, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := domain.NewProductDetail(*product)
	return &detail, nil
}

// Ready reports an error when the catalog holds no products.
func (s *CatalogService) Ready(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n == 0 {
		return errors.New("catalog is empty")
	}
	return nil
}
