package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"pouch-dashboard/internal/config"
	"pouch-dashboard/internal/handlers"
	"pouch-dashboard/internal/middleware"
	"pouch-dashboard/internal/models"
	"pouch-dashboard/internal/observability"
	"pouch-dashboard/internal/server"
	"pouch-dashboard/internal/services"
	"pouch-dashboard/internal/ui/templates"
)

const (
	renderTimeout = 10 * time.Second
	cacheMaxAge   = "private, max-age=60"
)

// dashboardHandler renders the page shell with the configured slider defaults.
func dashboardHandler(defaults models.ForecastParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", cacheMaxAge)
		if err := templates.Dashboard(defaults).Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func sourcesFromConfig(cfg config.SourcesConfig) services.Sources {
	return services.Sources{
		ShopifyOrders: cfg.ShopifyOrdersCSV,
		TikTokOrders:  cfg.TikTokOrdersCSV,
		Subscriptions: cfg.SubscriptionsCSV,
		PL:            cfg.PLCSV,
	}
}

func newHandler(cfg *config.Config, analytics *services.Analytics, logger *slog.Logger) http.Handler {
	defaults := cfg.ForecastDefaults()
	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardHandler(defaults),
	}

	srv := server.NewServer(analytics, logger, templateHandlers, handlers.Options{
		Sources:          sourcesFromConfig(cfg.Sources),
		ForecastDefaults: defaults,
		LoadTimeout:      cfg.Server.LoadTimeout,
	})

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"log_level", cfg.Logger.Level,
	)

	analytics := services.NewAnalytics(
		services.WithLogger(logger),
		services.WithForecastTTL(cfg.Forecast.CacheTTL),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.LoadTimeout)
	start := time.Now()
	err = analytics.Load(ctx, sourcesFromConfig(cfg.Sources))
	cancel()
	if err != nil {
		logger.Error("failed to load data", "error", err)
		os.Exit(1)
	}
	if !analytics.HasData() {
		logger.Warn("no data loaded, dashboard will show empty panels")
	}
	logger.Info("data loaded", "duration", time.Since(start))

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, analytics, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down analytics service", "stats", analytics.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
