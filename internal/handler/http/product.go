package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/domain"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/service"
	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httputil"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /products
// Optional category and type query parameters filter the listing; "all" or an
// empty value matches everything.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domain.Filter{
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// GetProductDetail handles GET /products/{id}/detail
func (h *ProductHandler) GetProductDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, detail)
}

// ListByCategory handles GET /products/category/{category}
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByCategory(r.Context(), pathParam(r, "category"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// ListByBrand handles GET /products/brand/{brand}
func (h *ProductHandler) ListByBrand(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByBrand(r.Context(), pathParam(r, "brand"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// productID parses the {id} path parameter. Ids that are not integers cannot
// name a product, so they are answered with 404 like unknown ids.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		httputil.WriteError(w, r, apperrors.NotFound("product", raw), h.logger)
		return 0, false
	}
	return id, true
}

// pathParam returns a decoded path parameter. chi matches on the raw path when
// the request carried a non-canonical encoding.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
