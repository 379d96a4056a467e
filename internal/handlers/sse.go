package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/starfederation/datastar-go/datastar"

	"pouch-dashboard/internal/models"
	"pouch-dashboard/internal/services"
)

var tableFuncs = template.FuncMap{
	"money": formatMoney,
	"slug":  productSlug,
}

var plTableTemplate = template.Must(template.New("plTable").Funcs(tableFuncs).Parse(`
<div id="pnl-content">
{{if .Available}}<table class="modern-table">
<thead><tr><th>Month</th><th>Revenue</th><th>COGS + Shipping</th><th>Gross Profit</th><th>Expenses</th><th>Net Income</th></tr></thead>
<tbody>
{{range .Monthly}}<tr>
<td>{{.Month}}</td>
<td>{{money .Revenue}}</td>
<td>{{money .COGSWithShipping}}</td>
<td>{{money .GrossProfit}}</td>
<td>{{money .Expenses}}</td>
<td><strong>{{money .NetIncome}}</strong></td>
</tr>{{end}}
<tr class="total-row">
<td>YTD</td>
<td>{{money .TotalGrossRevenue}}</td>
<td>{{money .COGSWithShipping}}</td>
<td>{{money .GrossProfit}}</td>
<td>{{money .TotalExpenses}}</td>
<td><strong>{{money .NetIncome}}</strong></td>
</tr>
</tbody>
</table>{{else}}<p class="empty">N/A: no P&amp;L data loaded</p>{{end}}
</div>`))

var cohortTableTemplate = template.Must(template.New("cohortTable").Parse(`
<div id="cohorts-content">
{{if .}}<table class="modern-table">
<thead><tr><th>Cohort</th><th>Subscribers</th><th>30 days</th><th>60 days</th><th>90 days</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Cohort}}</td>
<td>{{.Size}}</td>
<td>{{printf "%.1f" .Retention30}}%</td>
<td>{{printf "%.1f" .Retention60}}%</td>
<td>{{printf "%.1f" .Retention90}}%</td>
</tr>{{end}}
</tbody>
</table>{{else}}<p class="empty">N/A: no subscription data loaded</p>{{end}}
</div>`))

var forecastTableTemplate = template.Must(template.New("forecastTable").Funcs(tableFuncs).Parse(`
<div id="forecast-content">
{{if .Products}}<table class="modern-table">
<thead><tr><th>Product</th><th>Last 3 months</th><th>Avg / month</th><th>Base need</th><th>Safety stock</th><th>Forecast packs</th><th>Forecast pouches</th><th>On hand (packs)</th><th>Net pouches to order</th></tr></thead>
<tbody>
{{range .Products}}<tr>
<td>{{.ProductName}}</td>
<td>{{.Past3MonthUnits}}</td>
<td>{{printf "%.2f" .AvgMonthlyConsumption}}</td>
<td>{{.BaseNeed}}</td>
<td>{{.SafetyStock}}</td>
<td>{{.ForecastUnits}}</td>
<td>{{.ForecastPouches}}</td>
<td><input type="number" min="0" step="1" data-bind="inventory.{{slug .ProductName}}" data-on:change="@get('/sse/forecast')"></td>
<td><strong>{{.NetOrderRequired}}</strong></td>
</tr>{{end}}
</tbody>
</table>{{else}}<p class="empty">No orders in the last three months</p>{{end}}
</div>`))

var repeatStatusTemplate = template.Must(template.New("repeatStatus").Parse(
	`<div id="repeat-content">Repeat purchase chart data loaded</div>`))

// forecastSignals mirrors the slider and inventory inputs on the page.
// Inventory is keyed by productSlug because product names are not valid
// signal paths.
type forecastSignals struct {
	SafetyBuffer *float64       `json:"safetyBuffer"`
	GrowthRate   *float64       `json:"growthRate"`
	Inventory    map[string]int `json:"inventory"`
}

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	defaults  models.ForecastParams
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger, defaults models.ForecastParams) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
		defaults:  defaults,
	}
}

func renderTemplate(t *template.Template, data any) (string, error) {
	var buf strings.Builder
	err := t.Execute(&buf, data)
	return buf.String(), err
}

func (h *SSEHandlers) patch(sse *datastar.ServerSentEventGenerator, t *template.Template, data any) bool {
	html, err := renderTemplate(t, data)
	if err != nil {
		h.logger.Error("render template", "template", t.Name(), "error", err)
		return false
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.Warn("patch elements", "template", t.Name(), "error", err)
		return false
	}
	return true
}

func (h *SSEHandlers) patchSignals(sse *datastar.ServerSentEventGenerator, signals map[string]any) bool {
	data, err := json.Marshal(signals)
	if err != nil {
		h.logger.Error("marshal signals", "error", err)
		return false
	}
	if err := sse.PatchSignals(data); err != nil {
		h.logger.Warn("patch signals", "error", err)
		return false
	}
	return true
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandlePL(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	pl := h.analytics.PL()
	if h.patch(sse, plTableTemplate, pl) {
		h.patchSignals(sse, map[string]any{"plMonthly": pl.Monthly})
	}
	flush(w)
}

func (h *SSEHandlers) HandleCohorts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	h.patch(sse, cohortTableTemplate, h.analytics.Cohorts())
	flush(w)
}

func (h *SSEHandlers) HandleRepeatPurchase(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if h.patchSignals(sse, map[string]any{"repeatPurchase": h.analytics.RepeatPurchase()}) {
		h.patch(sse, repeatStatusTemplate, nil)
	}
	flush(w)
}

// HandleForecast recomputes the forecast from the page's slider signals.
func (h *SSEHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	var signals forecastSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("no forecast signals, using defaults", "error", err)
	}

	sse := datastar.NewSSE(w, r)
	h.sendForecast(sse, h.forecastParams(signals))
	flush(w)
}

func (h *SSEHandlers) forecastParams(s forecastSignals) models.ForecastParams {
	params := models.ForecastParams{
		SafetyBufferPercent:   h.defaults.SafetyBufferPercent,
		GrowthRatePercent:     h.defaults.GrowthRatePercent,
		CurrentInventoryPacks: map[string]int{},
	}
	if s.SafetyBuffer != nil {
		params.SafetyBufferPercent = clamp(*s.SafetyBuffer, models.MinSafetyBufferPercent, models.MaxSafetyBufferPercent)
	}
	if s.GrowthRate != nil {
		params.GrowthRatePercent = clamp(*s.GrowthRate, models.MinGrowthRatePercent, models.MaxGrowthRatePercent)
	}

	if len(s.Inventory) > 0 {
		base, err := h.analytics.Forecast(params)
		if err != nil {
			return params
		}
		names := make(map[string]string, len(base.Products))
		for _, p := range base.Products {
			names[productSlug(p.ProductName)] = p.ProductName
		}
		for slug, packs := range s.Inventory {
			if name, ok := names[slug]; ok {
				params.CurrentInventoryPacks[name] = max(0, packs)
			}
		}
	}
	return params
}

func (h *SSEHandlers) sendForecast(sse *datastar.ServerSentEventGenerator, params models.ForecastParams) {
	forecast, err := h.analytics.Forecast(params)
	if err != nil {
		h.logger.Warn("forecast rejected", "error", err)
		return
	}
	if h.patch(sse, forecastTableTemplate, forecast) {
		h.patchSignals(sse, map[string]any{
			"forecastTotals": map[string]int{
				"units":    forecast.TotalForecastUnits,
				"pouches":  forecast.TotalForecastPouches,
				"netOrder": forecast.TotalNetOrder,
			},
		})
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	d := h.analytics.Dashboard()
	h.patch(sse, plTableTemplate, d.PL)
	h.patch(sse, cohortTableTemplate, d.Cohorts)

	h.patchSignals(sse, map[string]any{
		"plMonthly":      d.PL.Monthly,
		"repeatPurchase": d.RepeatPurchase,
		"monthlyRevenue": d.Orders.MonthlyRevenue,
		"orderTotals":    d.Orders.PlatformTotals,
		"customerValue":  d.CustomerValue,
		"subscriptions":  d.Subscriptions,
	})
	h.sendForecast(sse, h.forecastParams(forecastSignals{}))
	flush(w)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// productSlug turns "28-Pouch Pack" into "p_28_pouch_pack".
func productSlug(name string) string {
	var b strings.Builder
	b.WriteString("p_")
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
