package server

import (
	"log/slog"
	"net/http"

	"pouch-dashboard/internal/handlers"
	"pouch-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers, opts handlers.Options) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger, opts),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger, opts.ForecastDefaults),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard and admin
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.HandleFunc("POST /admin/reload", s.apiHandlers.HandleReload)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/pnl", s.apiHandlers.HandlePL)
	s.mux.HandleFunc("GET /api/cohorts", s.apiHandlers.HandleCohorts)
	s.mux.HandleFunc("GET /api/customer-value", s.apiHandlers.HandleCustomerValue)
	s.mux.HandleFunc("GET /api/repeat-purchase", s.apiHandlers.HandleRepeatPurchase)
	s.mux.HandleFunc("GET /api/orders", s.apiHandlers.HandleOrders)
	s.mux.HandleFunc("GET /api/subscriptions", s.apiHandlers.HandleSubscriptions)
	s.mux.HandleFunc("GET /api/forecast", s.apiHandlers.HandleForecast)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/pnl", s.sseHandlers.HandlePL)
	s.mux.HandleFunc("GET /sse/cohorts", s.sseHandlers.HandleCohorts)
	s.mux.HandleFunc("GET /sse/repeat-purchase", s.sseHandlers.HandleRepeatPurchase)
	s.mux.HandleFunc("GET /sse/forecast", s.sseHandlers.HandleForecast)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
