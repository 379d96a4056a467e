package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"pouch-dashboard/internal/classify"
	"pouch-dashboard/internal/ingest"
	"pouch-dashboard/internal/metrics"
	"pouch-dashboard/internal/models"
	"pouch-dashboard/internal/observability"
)

const (
	DefaultForecastTTL     = 10 * time.Minute
	forecastCleanupFactor  = 2
	forecastCacheKeyFormat = "forecast|%s|%s"
)

// Sources holds CSV paths. An empty path means the export was not supplied.
type Sources struct {
	ShopifyOrders string
	TikTokOrders  string
	Subscriptions string
	PL            string
}

// SourceTables is the parsed form of Sources.
type SourceTables struct {
	ShopifyOrders models.Table
	TikTokOrders  models.Table
	Subscriptions models.Table
	PL            models.Table
}

// Dataset is the normalised, classified input every aggregator reads. It is
// never modified after it is built.
type Dataset struct {
	Orders        []models.NormalizedOrder
	Subscriptions []models.SubscriptionRecord
	Statement     models.PLStatement
	Categories    map[string]models.FinancialCategory
}

type Analytics struct {
	mu               sync.RWMutex
	dataset          Dataset
	dashboard        models.Dashboard
	forecasts        *cache.Cache
	now              func() time.Time
	recordsProcessed atomic.Int64
	logger           *slog.Logger
}

type Option func(*Analytics)

// WithClock fixes "now" for lifespan and forecast windows.
func WithClock(now func() time.Time) Option {
	return func(a *Analytics) { a.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analytics) { a.logger = logger }
}

func WithForecastTTL(ttl time.Duration) Option {
	return func(a *Analytics) {
		a.forecasts = cache.New(ttl, ttl*forecastCleanupFactor)
	}
}

func NewAnalytics(opts ...Option) *Analytics {
	a := &Analytics{
		forecasts: cache.New(DefaultForecastTTL, DefaultForecastTTL*forecastCleanupFactor),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.dashboard = emptyDashboard()
	return a
}

// Load reads every configured export, rebuilds the dataset and recomputes the
// dashboard. Exports that are not configured or do not exist are treated as
// absent; an export that exists but cannot be parsed fails the load.
func (a *Analytics) Load(ctx context.Context, sources Sources) error {
	start := time.Now()

	var tables SourceTables
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range []struct {
		name  string
		path  string
		table *models.Table
	}{
		{"shopify_orders", sources.ShopifyOrders, &tables.ShopifyOrders},
		{"tiktok_orders", sources.TikTokOrders, &tables.TikTokOrders},
		{"subscriptions", sources.Subscriptions, &tables.Subscriptions},
		{"pnl", sources.PL, &tables.PL},
	} {
		g.Go(func() error {
			table, err := a.readSource(gctx, src.name, src.path)
			if err != nil {
				return fmt.Errorf("load %s: %w", src.name, err)
			}
			*src.table = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	dataset, err := BuildDataset(tables)
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}
	if err := a.SetDataset(ctx, dataset); err != nil {
		return err
	}

	a.logger.Info("dataset loaded",
		"orders", len(dataset.Orders),
		"subscriptions", len(dataset.Subscriptions),
		"pnl_rows", len(dataset.Statement.Rows),
		"duration", time.Since(start),
	)
	return nil
}

func (a *Analytics) readSource(ctx context.Context, name, path string) (models.Table, error) {
	if path == "" {
		a.logger.Warn("source not configured", "source", name)
		return models.Table{}, nil
	}
	if err := ctx.Err(); err != nil {
		return models.Table{}, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("source file missing", "source", name, "path", path)
		return models.Table{}, nil
	}

	table, err := ingest.ReadCSVFile(path)
	if err != nil {
		return models.Table{}, err
	}
	a.logger.Debug("source parsed", "source", name, "rows", len(table.Rows))
	return table, nil
}

// BuildDataset normalises orders, parses subscriptions and classifies the
// P&L. Bad cells degrade to defaults, so the only failure is a programming
// error such as an unknown platform.
func BuildDataset(t SourceTables) (Dataset, error) {
	shopify, err := ingest.NormalizeOrders(models.PlatformShopify, t.ShopifyOrders.Rows)
	if err != nil {
		return Dataset{}, err
	}
	tiktok, err := ingest.NormalizeOrders(models.PlatformTikTok, t.TikTokOrders.Rows)
	if err != nil {
		return Dataset{}, err
	}

	classifier := classify.NewClassifier()
	statement := classify.BuildStatement(t.PL, classifier)

	return Dataset{
		Orders:        append(shopify, tiktok...),
		Subscriptions: classify.AnnotateCancellations(ingest.ParseSubscriptions(t.Subscriptions.Rows)),
		Statement:     statement,
		Categories:    classifier.Mapping(),
	}, nil
}

// SetDataset swaps in a new dataset and recomputes every aggregate.
func (a *Analytics) SetDataset(ctx context.Context, ds Dataset) error {
	dashboard, err := a.compute(ctx, ds)
	if err != nil {
		return fmt.Errorf("compute dashboard: %w", err)
	}

	a.mu.Lock()
	a.dataset = ds
	a.dashboard = dashboard
	a.mu.Unlock()

	a.forecasts.Flush()
	a.recordsProcessed.Store(int64(len(ds.Orders) + len(ds.Subscriptions) + len(ds.Statement.Rows)))
	return nil
}

// compute runs the independent aggregators in parallel. Each goroutine writes
// only its own field of the result and reads the dataset without mutating it.
func (a *Analytics) compute(ctx context.Context, ds Dataset) (models.Dashboard, error) {
	now := a.now()
	d := emptyDashboard()
	d.DatasetVersion = uuid.NewString()
	d.ComputedAt = now

	g, ctx := errgroup.WithContext(ctx)
	run := func(name string, fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, span := observability.StartSpan(ctx, "aggregate."+name)
			fn()
			span.Finish()
			a.logger.Debug("aggregate computed", "span", span)
			return nil
		})
	}

	run("orders", func() { d.Orders = metrics.SummarizeOrders(ds.Orders) })
	run("subscriptions", func() { d.Subscriptions = metrics.SummarizeSubscriptions(ds.Subscriptions) })
	run("cohorts", func() { d.Cohorts = metrics.CohortRetention(ds.Subscriptions) })
	run("repeat_purchase", func() { d.RepeatPurchase = metrics.RepeatPurchase(ds.Orders) })
	run("pnl", func() {
		d.PL = metrics.RollupPL(ds.Statement)
		d.CustomerValue = metrics.CustomerValue(ds.Subscriptions, ds.Orders, d.PL, now)
	})

	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}
	return d, nil
}

// Forecast runs the inventory forecast for params, memoised per dataset.
func (a *Analytics) Forecast(params models.ForecastParams) (models.InventoryForecast, error) {
	if err := params.Validate(); err != nil {
		return models.InventoryForecast{}, err
	}

	a.mu.RLock()
	orders := a.dataset.Orders
	version := a.dashboard.DatasetVersion
	a.mu.RUnlock()

	key := fmt.Sprintf(forecastCacheKeyFormat, version, params.Key())
	if cached, ok := a.forecasts.Get(key); ok {
		return cached.(models.InventoryForecast), nil
	}

	params.CurrentInventoryPacks = maps.Clone(params.CurrentInventoryPacks)
	forecast := metrics.ForecastInventory(orders, params, a.now())
	a.forecasts.Set(key, forecast, cache.DefaultExpiration)
	return forecast, nil
}

func (a *Analytics) Dashboard() models.Dashboard {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard
}

func (a *Analytics) PL() models.PLSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard.PL
}

func (a *Analytics) Cohorts() []models.CohortRetention {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard.Cohorts
}

func (a *Analytics) CustomerValue() models.CustomerValue {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard.CustomerValue
}

func (a *Analytics) RepeatPurchase() models.RepeatPurchaseSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard.RepeatPurchase
}

func (a *Analytics) Orders() models.OrderSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard.Orders
}

func (a *Analytics) Subscriptions() models.SubscriptionSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dashboard.Subscriptions
}

// HasData reports whether any export contributed rows.
func (a *Analytics) HasData() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.dataset.Orders) > 0 || len(a.dataset.Subscriptions) > 0 || !a.dataset.Statement.Empty()
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"dataset_version":   a.dashboard.DatasetVersion,
		"computed_at":       a.dashboard.ComputedAt,
		"records_processed": a.recordsProcessed.Load(),
		"orders":            len(a.dataset.Orders),
		"subscriptions":     len(a.dataset.Subscriptions),
		"pnl_rows":          len(a.dataset.Statement.Rows),
		"classified_labels": len(a.dataset.Categories),
		"cached_forecasts":  a.forecasts.ItemCount(),
	}
}

func emptyDashboard() models.Dashboard {
	return models.Dashboard{
		Orders:         metrics.SummarizeOrders(nil),
		Subscriptions:  metrics.SummarizeSubscriptions(nil),
		PL:             metrics.RollupPL(models.PLStatement{}),
		Cohorts:        []models.CohortRetention{},
		RepeatPurchase: metrics.RepeatPurchase(nil),
	}
}
