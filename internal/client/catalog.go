// Package client talks to the catalog service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httpclient"
)

const serviceName = "catalog"

// Catalog is a typed client for the catalog service.
type Catalog struct {
	baseURL string
	http    httpclient.Requester
}

// NewCatalog creates a client for the catalog at baseURL using requester.
func NewCatalog(baseURL string, requester httpclient.Requester) *Catalog {
	return &Catalog{baseURL: baseURL, http: requester}
}

// NewCatalogWithBreaker creates a client with retries on GET and a circuit
// breaker in front of the catalog.
func NewCatalogWithBreaker(baseURL string, cfg httpclient.Config, logger *slog.Logger) *Catalog {
	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig(serviceName),
		logger,
	)
	return NewCatalog(baseURL, breaker.WithFallback(unavailable))
}

// unavailable answers for the catalog while its breaker is open.
func unavailable(context.Context, error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable("catalog is temporarily unavailable")
}

// ListAll returns every product in catalog order.
func (c *Catalog) ListAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// List returns the products matching f. Empty and "all" values match any.
func (c *Catalog) List(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	q := url.Values{}
	if !domain.Wildcard(f.Category) {
		q.Set("category", f.Category)
	}
	if !domain.Wildcard(f.Type) {
		q.Set("type", f.Type)
	}
	if len(q) == 0 {
		return c.ListAll(ctx)
	}

	var out []domain.Product
	if err := c.get(ctx, "/products?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// GetByID returns one product. An unknown id yields an error matching
// apperrors.ErrNotFound.
func (c *Catalog) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	var out domain.Product
	if err := c.get(ctx, "/products/"+strconv.Itoa(id), &out); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &out, nil
}

// Detail returns the product with its page defaults filled in.
func (c *Catalog) Detail(ctx context.Context, id int) (*domain.ProductDetail, error) {
	var out domain.ProductDetail
	if err := c.get(ctx, "/products/"+strconv.Itoa(id)+"/detail", &out); err != nil {
		return nil, fmt.Errorf("get product detail %d: %w", id, err)
	}
	return &out, nil
}

// ListByCategory returns the products whose category equals category.
func (c *Catalog) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products/category/"+url.PathEscape(category), &out); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return out, nil
}

// ListByBrand returns the products whose brand equals brand.
func (c *Catalog) ListByBrand(ctx context.Context, brand string) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products/brand/"+url.PathEscape(brand), &out); err != nil {
		return nil, fmt.Errorf("list products by brand: %w", err)
	}
	return out, nil
}

func (c *Catalog) get(ctx context.Context, path string, v any) error {
	resp, err := c.http.Get(ctx, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("call %s: %w", serviceName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", serviceName, err)
	}
	return nil
}
