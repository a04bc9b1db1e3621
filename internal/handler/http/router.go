package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/service"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/health"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httputil"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/middleware"
)

const serviceName = "catalog"

// RouterConfig holds the HTTP surface settings of the catalog service.
type RouterConfig struct {
	CORS           middleware.CORSConfig
	CacheMaxAge    int
	RateLimitRPS   float64
	RateLimitBurst int
	PprofCIDRs     []string

	// TrustProxy keys the rate limit on X-Forwarded-For and X-Real-IP.
	TrustProxy bool

	// Metrics records request metrics. Nil registers them with the default
	// Prometheus registerer.
	Metrics *middleware.HTTPMetrics

	// MetricsHandler serves /metrics. Nil uses promhttp.Handler().
	MetricsHandler http.Handler
}

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = middleware.NewHTTPMetrics(nil)
	}
	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(metrics.Middleware(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "route not found"},
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: "the catalog is read-only"},
		})
	})

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	// Catalog API endpoints
	productHandler := NewProductHandler(catalogService, logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy, logger))
		r.Use(middleware.CacheControl(cfg.CacheMaxAge))

		r.Get("/", productHandler.ListProducts)
		r.Get("/category/{category}", productHandler.ListByCategory)
		r.Get("/brand/{brand}", productHandler.ListByBrand)
		r.Get("/{id}", productHandler.GetProduct)
		r.Get("/{id}/detail", productHandler.GetProductDetail)
	})

	return r
}
