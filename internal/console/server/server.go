package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/console/handler"
	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/infra"
	"github.com/xela07ax/netsec-analytics/internal/infra/auth"
	"github.com/xela07ax/netsec-analytics/internal/metrics"
)

// Handlers groups the business-domain handlers mounted by the server.
type Handlers struct {
	Dashboard *handler.DashboardHandler // /api/v1/dashboard
	Stream    *handler.StreamHandler    // /api/v1/dashboard/stream (SSE)
	Analytics *handler.AnalyticsHandler // /api/v1/analytics
	Briefing  *handler.BriefingHandler  // /api/v1/briefing, optionally RS256-guarded
	Dataset   *handler.DatasetHandler   // /api/v1/dataset
}

type ConsoleServer struct {
	router   *chi.Mux
	logger   *zap.Logger
	cfg      *infra.Config
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer

	// nil leaves the briefing routes open
	validator auth.TokenValidator

	// reports the feed breaker state for /health; nil means the feed is off
	feedState func() string

	h Handlers
}

func NewConsoleServer(
	cfg *infra.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	validator auth.TokenValidator,
	feedState func() string,
	h Handlers,
) *ConsoleServer {
	if m == nil {
		m = metrics.New(nil)
	}
	s := &ConsoleServer{
		router:    chi.NewRouter(),
		logger:    logger.Named("console-api"),
		cfg:       cfg,
		metrics:   m,
		gatherer:  gatherer,
		validator: validator,
		feedState: feedState,
		h:         h,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- infrastructure middleware, every route ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TracingMiddleware)
	r.Use(instrument(s.metrics, s.logger))
	r.Use(middleware.Recoverer)

	// --- public ---
	r.Get("/health", s.health)
	if s.cfg.Metrics.Enabled && s.gatherer != nil {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard/stream", s.h.Stream.Stream)
		r.Mount("/dashboard", s.h.Dashboard.Routes())
		r.Mount("/analytics", s.h.Analytics.Routes())
		r.Mount("/dataset", s.h.Dataset.Routes())

		// --- executive perimeter ---
		r.Group(func(r chi.Router) {
			if s.validator != nil {
				r.Use(auth.NewMiddleware(s.validator, domain.ScopeBriefingRead, s.logger))
			} else {
				s.logger.Warn("briefing routes are unauthenticated: no public key configured")
			}
			r.Mount("/briefing", s.h.Briefing.Routes())
		})
	})
}

func (s *ConsoleServer) health(w http.ResponseWriter, r *http.Request) {
	feed := "disabled"
	if s.feedState != nil {
		feed = s.feedState()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "feed": feed})
}

// ServeHTTP makes ConsoleServer a plain http.Handler.
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
