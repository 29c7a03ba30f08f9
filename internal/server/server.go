package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/metrics"
	"github.com/yousuf64/shift"
)

// maxRequestBytes caps the JSON body of an analyze request.
const maxRequestBytes = 64 << 10

// Analyzer produces a goal-tailored report for a URL. It never fails; any
// problem is reported inside the returned report.
type Analyzer interface {
	AnalyzeForGoal(ctx context.Context, url, goal string) models.Report
}

type Server struct {
	analyzer Analyzer
	metrics  *metrics.Metrics
	cfg      *models.Config
	log      *slog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// New wires the transport. m may be nil, in which case no HTTP metrics are
// collected and /metrics is not routed.
func New(a Analyzer, m *metrics.Metrics, cfg *models.Config, log *slog.Logger) *Server {
	if cfg == nil {
		cfg = models.DefaultConfig()
	}
	return &Server{
		analyzer: a,
		metrics:  m,
		cfg:      cfg,
		log:      log,
	}
}

// Router builds the route table and middleware chain.
func (s *Server) Router() *shift.Router {
	router := shift.New()
	router.Use(s.requestIDMiddleware)
	router.Use(s.corsMiddleware)
	if s.metrics != nil {
		router.Use(s.metrics.HTTPMiddleware)
	}
	router.Use(s.errorMiddleware)

	router.OPTIONS("/*wildcard", s.handleOptions)
	router.POST("/analyze", s.handleAnalyze)
	router.GET("/health", s.handleHealth)
	if s.metrics != nil && s.cfg.MetricsAddr == "" {
		router.GET("/metrics", s.handleMetrics)
	}
	return router
}

func (s *Server) Handler() http.Handler {
	return s.Router().Serve()
}

// Start serves until Shutdown is called. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Addr,
		Handler:     s.Handler(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
		ReadTimeout: 15 * time.Second,
		// A single analysis may spend the whole fetch timeout upstream.
		WriteTimeout: s.cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	// Shutdown may already have run against a nil server.
	if ctx.Err() != nil {
		return http.ErrServerClosed
	}

	s.log.Info("API server starting", slog.String("addr", s.cfg.Addr))
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down API server")
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// NewMetricsServer serves /metrics and /health on a separate address.
func NewMetricsServer(addr string, m *metrics.Metrics) *http.Server {
	router := shift.New()
	router.GET("/metrics", func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		m.Handler().ServeHTTP(w, r)
		return nil
	})
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		return err
	})

	return &http.Server{
		Addr:              addr,
		Handler:           router.Serve(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
