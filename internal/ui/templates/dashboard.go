package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"pouch-dashboard/internal/models"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// initialSignals seeds the Datastar store. The SSE endpoints patch the same
// keys, so the page and the handlers must agree on these names.
func initialSignals(defaults models.ForecastParams) string {
	signals := map[string]any{
		"safetyBuffer":   defaults.SafetyBufferPercent,
		"growthRate":     defaults.GrowthRatePercent,
		"inventory":      map[string]int{},
		"plMonthly":      []any{},
		"repeatPurchase": map[string]any{},
		"monthlyRevenue": []any{},
		"orderTotals":    map[string]any{},
		"customerValue":  map[string]any{},
		"subscriptions":  map[string]any{},
		"forecastTotals": map[string]int{"units": 0, "pouches": 0, "netOrder": 0},
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Dashboard renders the single-page dashboard shell. Every panel starts
// empty and is filled by /sse/refresh-all once the page loads.
func Dashboard(defaults models.ForecastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		parts := []string{
			`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>Pouch Dashboard</title>`,
			`<script type="module" src="` + templ.EscapeString(datastarScript) + `"></script>`,
			styles,
			`</head><body data-signals="` + templ.EscapeString(initialSignals(defaults)) + `"`,
			` data-init="@get('/sse/refresh-all')">`,
			`<header><h1>Pouch Dashboard</h1>`,
			`<button data-on:click="@get('/sse/refresh-all')">Refresh</button></header>`,
			`<main>`,
			summaryCards,
			section("Profit &amp; Loss", "pnl-content", "Loading P&amp;L..."),
			section("Cohort retention", "cohorts-content", "Loading cohorts..."),
			section("Repeat purchase", "repeat-content", "Loading repeat purchase..."),
			forecastPanel(defaults),
			`</main></body></html>`,
		}
		for _, p := range parts {
			if _, err := io.WriteString(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func section(title, id, placeholder string) string {
	return fmt.Sprintf(`<section class="panel"><h2>%s</h2><div id="%s"><p class="empty">%s</p></div></section>`,
		title, templ.EscapeString(id), placeholder)
}

func forecastPanel(defaults models.ForecastParams) string {
	return fmt.Sprintf(`<section class="panel"><h2>Inventory forecast</h2>
<div class="controls">
<label>Safety buffer <span data-text="$safetyBuffer + '%%'"></span>
<input type="range" min="%g" max="%g" step="0.5" value="%s" data-bind="safetyBuffer" data-on:change="@get('/sse/forecast')"></label>
<label>Growth rate <span data-text="$growthRate + '%%'"></span>
<input type="range" min="%g" max="%g" step="1" value="%s" data-bind="growthRate" data-on:change="@get('/sse/forecast')"></label>
</div>
<p>Forecast packs <strong data-text="$forecastTotals.units"></strong>,
pouches <strong data-text="$forecastTotals.pouches"></strong>,
net pouches to order <strong data-text="$forecastTotals.netOrder"></strong></p>
<div id="forecast-content"><p class="empty">Loading forecast...</p></div>
</section>`,
		models.MinSafetyBufferPercent, models.MaxSafetyBufferPercent,
		templ.EscapeString(fmt.Sprint(defaults.SafetyBufferPercent)),
		models.MinGrowthRatePercent, models.MaxGrowthRatePercent,
		templ.EscapeString(fmt.Sprint(defaults.GrowthRatePercent)),
	)
}

const summaryCards = `<section class="cards">
<div class="card"><h3>GMV</h3><p data-text="'$' + ($orderTotals.gmv ?? 0).toFixed(2)"></p></div>
<div class="card"><h3>AOV</h3><p data-text="'$' + ($orderTotals.aov ?? 0).toFixed(2)"></p></div>
<div class="card"><h3>MRR</h3><p data-text="'$' + ($subscriptions.mrr ?? 0).toFixed(2)"></p></div>
<div class="card"><h3>Churn</h3><p data-text="($subscriptions.churn_rate ?? 0) + '%'"></p></div>
<div class="card"><h3>CLV</h3><p data-text="'$' + ($customerValue.clv ?? 0).toFixed(2)"></p></div>
<div class="card"><h3>CAC</h3><p data-text="$customerValue.cac == null ? 'N/A' : '$' + $customerValue.cac.toFixed(2)"></p></div>
<div class="card"><h3>LTV:CAC</h3><p data-text="$customerValue.ltv_to_cac == null ? 'N/A' : $customerValue.ltv_to_cac.toFixed(2)"></p></div>
</section>`

const styles = `<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#1d2330}
header{display:flex;justify-content:space-between;align-items:center;padding:1rem 2rem;background:#fff;border-bottom:1px solid #e3e6ea}
main{padding:1.5rem 2rem;display:grid;gap:1.5rem}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(10rem,1fr));gap:1rem}
.card,.panel{background:#fff;border:1px solid #e3e6ea;border-radius:8px;padding:1rem}
.modern-table{width:100%;border-collapse:collapse}
.modern-table th,.modern-table td{padding:.4rem .6rem;border-bottom:1px solid #eef0f3;text-align:right}
.modern-table th:first-child,.modern-table td:first-child{text-align:left}
.total-row{font-weight:600}
.empty{color:#7a8190}
.controls{display:flex;gap:2rem}
</style>`
