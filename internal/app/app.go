package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/config"
	handler "github.com/Mohahamed99-by/shoe-store-morocco/internal/handler/http"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/repository/memory"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/repository/seed"
	"github.com/Mohahamed99-by/shoe-store-morocco/internal/service"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/health"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/middleware"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/tracing"
)

// ErrPortInUse is returned by Run when the HTTP port is already bound.
var ErrPortInUse = errors.New("port already in use")

var productsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "catalog_products_loaded",
	Help: "Number of products loaded from the catalog seed",
})

// Options override the collaborators NewApp creates by default.
type Options struct {
	// Registerer receives the HTTP metrics. Nil uses the default registerer.
	Registerer prometheus.Registerer
}

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Catalog
	logger         *slog.Logger
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Catalog, logger *slog.Logger) (*App, error) {
	return NewAppWithOptions(cfg, logger, Options{})
}

// NewAppWithOptions is NewApp with explicit collaborator overrides.
func NewAppWithOptions(cfg *config.Catalog, logger *slog.Logger, opts Options) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Load the product seed once; the catalog is immutable afterwards.
	products, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}
	repo, err := memory.NewProductRepository(products)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	productsLoaded.Set(float64(len(products)))

	source := cfg.SeedFile
	if source == "" {
		source = "embedded"
	}
	logger.Info("catalog loaded",
		slog.Int("products", len(products)),
		slog.String("source", source),
	)

	// Initialize tracing.
	tracerCfg := tracing.DefaultConfig("catalog")
	tracerCfg.Environment = cfg.Environment
	tracerCfg.Enabled = cfg.OTELEnabled
	tracerCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracerCfg.SampleRate = cfg.OTELSampleRate
	tracerShutdown, err := tracing.InitTracer(ctx, tracerCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	catalogService := service.NewCatalogService(repo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.SetTimeout(time.Duration(cfg.ReadinessTimeoutSeconds) * time.Second)
	healthHandler.RegisterCritical("catalog", catalogService.Ready)

	// HTTP router.
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	cors.Environment = cfg.Environment

	router := handler.NewRouter(catalogService, healthHandler, handler.RouterConfig{
		CORS:           cors,
		CacheMaxAge:    cfg.CacheMaxAge,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustProxy:     cfg.TrustProxy,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		Metrics:        middleware.NewHTTPMetrics(opts.Registerer),
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Handler returns the HTTP handler served by the application.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("%w: port %d is taken, set PORT to a free port or stop the process using it", ErrPortInUse, a.cfg.HTTPPort)
		}
		return fmt.Errorf("listen on %s: %w", a.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", ln.Addr().String()),
		)
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
