package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handler "github.com/newthinker/stratix/internal/api/handler/api"
	"github.com/newthinker/stratix/internal/api/job"
	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/backtest"
	"github.com/newthinker/stratix/internal/journal"
	"github.com/newthinker/stratix/internal/marketdata"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/profile"
	"github.com/newthinker/stratix/internal/research"
	"github.com/newthinker/stratix/internal/scanner"
	"github.com/newthinker/stratix/internal/storage/archive"
	"github.com/newthinker/stratix/internal/strategy"
)

// scannerMinLevel mirrors the navigation lock on the scanner page.
const scannerMinLevel = 3

// Server is the HTTP server for the trading skill platform.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	JobTTL         time.Duration
	MaxJobs        int
	MetricsPath    string
	StreamEnabled  bool
	StreamInterval time.Duration
}

// Dependencies carries the wired application services.
type Dependencies struct {
	Profiles   *profile.Service
	Market     marketdata.Provider
	Scanner    *scanner.Scanner
	Strategies *strategy.Engine
	Backtester *backtest.Backtester
	Archive    *archive.Results
	Journal    *journal.Store
	Research   *research.Lab
	Metrics    *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Profiles == nil {
		return nil, fmt.Errorf("profile service is required")
	}
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	if deps.Metrics != nil {
		chain := metrics.LoggingMiddleware(logger)(metrics.HTTPMiddleware(deps.Metrics)(mux))
		s.httpServer.Handler = chain
	}

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	auth := middleware.SessionAuth(deps.Profiles)
	withSession := func(h http.HandlerFunc) http.Handler { return auth(h) }

	authHandler := handler.NewAuthHandler(deps.Profiles, deps.Metrics, s.logger)
	s.mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	s.mux.Handle("POST /api/auth/logout", withSession(authHandler.Logout))
	s.mux.Handle("GET /api/auth/me", withSession(authHandler.Me))

	assessmentHandler := handler.NewAssessmentHandler(deps.Profiles, deps.Metrics)
	s.mux.HandleFunc("GET /api/assessment/questions", assessmentHandler.Questions)
	s.mux.Handle("POST /api/assessment/submit", withSession(assessmentHandler.Submit))

	profileHandler := handler.NewProfileHandler(deps.Profiles)
	s.mux.Handle("PATCH /api/profile", withSession(profileHandler.Update))
	s.mux.Handle("GET /api/nav", withSession(profileHandler.Nav))

	if deps.Market != nil {
		marketHandler := handler.NewMarketHandler(deps.Market)
		s.mux.Handle("GET /api/market/tickers", withSession(marketHandler.Tickers))
		s.mux.Handle("GET /api/market/quote/{symbol}", withSession(marketHandler.Quote))
		s.mux.Handle("GET /api/market/ohlc/{symbol}", withSession(marketHandler.OHLC))
		s.mux.Handle("GET /api/market/news/{symbol}", withSession(marketHandler.News))

		if cfg.StreamEnabled {
			wsHandler := handler.NewWSHandler(deps.Market, deps.Metrics, s.logger, cfg.StreamInterval)
			s.mux.Handle("GET /ws/quotes", withSession(wsHandler.ServeWS))
		}
	}

	if deps.Scanner != nil {
		scannerHandler := handler.NewScannerHandler(deps.Scanner, deps.Metrics)
		requireScanner := middleware.RequireLevel(scannerMinLevel, "scanner", deps.Metrics)
		s.mux.Handle("GET /api/scanner/filters", withSession(scannerHandler.Filters))
		s.mux.Handle("POST /api/scanner/scan", auth(requireScanner(http.HandlerFunc(scannerHandler.Scan))))
	}

	if deps.Strategies != nil {
		strategiesHandler := handler.NewStrategiesHandler(deps.Strategies)
		s.mux.Handle("GET /api/strategies", withSession(strategiesHandler.List))
		s.mux.Handle("GET /api/strategies/{id}", withSession(strategiesHandler.Get))
	}

	if deps.Backtester != nil {
		jobTTL := cfg.JobTTL
		if jobTTL <= 0 {
			jobTTL = time.Hour
		}
		maxJobs := cfg.MaxJobs
		if maxJobs <= 0 {
			maxJobs = 100
		}
		jobStore := job.NewStore(maxJobs, jobTTL)
		backtestHandler := handler.NewBacktestHandler(jobStore, deps.Backtester, deps.Archive, deps.Metrics, s.logger)
		s.mux.Handle("POST /api/backtest", withSession(backtestHandler.Create))
		s.mux.Handle("GET /api/backtest/{id}", withSession(backtestHandler.GetStatus))
	}

	if deps.Journal != nil {
		tradesHandler := handler.NewTradesHandler(deps.Journal)
		s.mux.Handle("GET /api/trades", withSession(tradesHandler.List))
		s.mux.Handle("POST /api/trades", withSession(tradesHandler.Create))
		s.mux.Handle("GET /api/trades/analytics", withSession(tradesHandler.Analytics))
		s.mux.Handle("GET /api/trades/{id}", withSession(tradesHandler.Get))
		s.mux.Handle("PUT /api/trades/{id}", withSession(tradesHandler.Update))
		s.mux.Handle("DELETE /api/trades/{id}", withSession(tradesHandler.Delete))
	}

	if deps.Research != nil {
		researchHandler := handler.NewResearchHandler(deps.Research)
		s.mux.Handle("GET /api/research/templates", withSession(researchHandler.Templates))
		s.mux.Handle("GET /api/research/experiments", withSession(researchHandler.ListExperiments))
		s.mux.Handle("POST /api/research/experiments", withSession(researchHandler.CreateExperiment))
		s.mux.Handle("GET /api/research/experiments/{id}/runs", withSession(researchHandler.ExperimentRuns))
		s.mux.Handle("POST /api/research/runs", withSession(researchHandler.LogRun))
		s.mux.Handle("POST /api/research/compare", withSession(researchHandler.CompareRuns))
	}

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
