package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pouch-dashboard/internal/errors"
	"pouch-dashboard/internal/models"
	"pouch-dashboard/internal/services"
)

const (
	cacheControl       = "private, max-age=60"
	defaultLoadTimeout = 30 * time.Second
)

// Options carries what the handlers need beyond the analytics service.
type Options struct {
	Sources          services.Sources
	ForecastDefaults models.ForecastParams
	LoadTimeout      time.Duration
}

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	opts      Options
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger, opts Options) *APIHandlers {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = defaultLoadTimeout
	}
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
		opts:      opts,
	}
}

func (h *APIHandlers) writeCached(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.Dashboard())
}

func (h *APIHandlers) HandlePL(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.PL())
}

func (h *APIHandlers) HandleCohorts(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.Cohorts())
}

func (h *APIHandlers) HandleCustomerValue(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.CustomerValue())
}

func (h *APIHandlers) HandleRepeatPurchase(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.RepeatPurchase())
}

func (h *APIHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.Orders())
}

func (h *APIHandlers) HandleSubscriptions(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, h.analytics.Subscriptions())
}

// HandleForecast accepts buffer, growth and inventory[<product>] query
// parameters; anything omitted falls back to the configured defaults.
func (h *APIHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	params, err := parseForecastQuery(r.URL.Query(), h.opts.ForecastDefaults)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequest(err.Error()))
		return
	}

	forecast, err := h.analytics.Forecast(params)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.ValidationWrap(err, "invalid forecast parameters"))
		return
	}

	errors.WriteSuccess(w, forecast)
}

func parseForecastQuery(q url.Values, defaults models.ForecastParams) (models.ForecastParams, error) {
	params := models.ForecastParams{
		SafetyBufferPercent:   defaults.SafetyBufferPercent,
		GrowthRatePercent:     defaults.GrowthRatePercent,
		CurrentInventoryPacks: map[string]int{},
	}

	if v := q.Get("buffer"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("buffer must be a number, got %q", v)
		}
		params.SafetyBufferPercent = f
	}
	if v := q.Get("growth"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("growth must be a number, got %q", v)
		}
		params.GrowthRatePercent = f
	}

	for key, values := range q {
		product, ok := strings.CutPrefix(key, "inventory[")
		if !ok || !strings.HasSuffix(product, "]") || len(values) == 0 {
			continue
		}
		product = strings.TrimSuffix(product, "]")
		packs, err := strconv.Atoi(values[0])
		if err != nil {
			return params, fmt.Errorf("inventory for %q must be a whole number, got %q", product, values[0])
		}
		params.CurrentInventoryPacks[product] = packs
	}
	return params, nil
}

// HandleReload re-reads the configured exports and recomputes everything.
func (h *APIHandlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.LoadTimeout)
	defer cancel()

	if err := h.analytics.Load(ctx, h.opts.Sources); err != nil {
		errors.WriteError(w, r, h.logger, errors.ServiceUnavailableWrap(err, "failed to reload data"))
		return
	}

	errors.WriteSuccess(w, h.analytics.Stats())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"has_data":  h.analytics.HasData(),
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
