// Package server provides the HTTP server setup and wiring.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	auditDomain "github.com/pendergraft/sentinel/internal/audit/domain"
	auditTransport "github.com/pendergraft/sentinel/internal/audit/transport"
	"github.com/pendergraft/sentinel/internal/completion"
	"github.com/pendergraft/sentinel/internal/config"
	"github.com/pendergraft/sentinel/internal/explorer"
	"github.com/pendergraft/sentinel/internal/middleware/logging"
	"github.com/pendergraft/sentinel/internal/middleware/realip"
	"github.com/pendergraft/sentinel/internal/middleware/security"
	"github.com/pendergraft/sentinel/internal/observability/metrics"
)

// Server is the HTTP server
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	router *chi.Mux

	auditSvc auditTransport.Service
}

// New creates a new server. It wires the explorer provider and completion
// client into the audit orchestrator; a provider construction error (bad
// API version) is surfaced immediately.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: chi.NewRouter(),
	}

	provider, err := explorer.New(explorer.Config{
		APIKey:     cfg.Explorer.APIKey,
		BaseURL:    cfg.Explorer.BaseURL,
		APIVersion: cfg.Explorer.APIVersion,
		ChainID:    cfg.Explorer.ChainID,
		Timeout:    time.Duration(cfg.Explorer.Timeout) * time.Second,
		RPS:        cfg.Explorer.RPS,
	})
	if err != nil {
		return nil, err
	}

	completer := completion.NewClient(completion.Config{
		APIKey:  cfg.Completion.APIKey,
		BaseURL: cfg.Completion.BaseURL,
		Model:   cfg.Completion.Model,
		Timeout: time.Duration(cfg.Completion.Timeout) * time.Second,
	})

	auditImpl := auditDomain.NewService(provider, completer, auditDomain.Options{
		ExplorerKeySet:   cfg.Explorer.APIKey != "",
		CompletionKeySet: cfg.Completion.APIKey != "",
		MaxSourceChars:   cfg.Audit.MaxSourceChars,
	})
	s.auditSvc = auditDomain.LoggingMiddleware(logger)(auditImpl)

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// MetricsHandler returns the metrics HTTP handler for a separate metrics server
func (s *Server) MetricsHandler() http.Handler {
	return metrics.Handler()
}

func (s *Server) setupMiddleware() {
	// Order matters! Security middleware runs first to block malicious requests early.

	// 1. Real IP extraction (must be first to set client IP for other middleware)
	s.router.Use(realip.Middleware(realip.Config{
		TrustProxy:     s.cfg.Proxy.TrustProxy,
		TrustedProxies: s.cfg.Proxy.TrustedProxies,
	}))

	// 2. Security filter (blocks malicious patterns, bypasses health checks)
	s.router.Use(security.FilterMiddleware(s.cfg.Security.FilterEnabled))

	// 3. Body size limit
	s.router.Use(security.MaxBodySizeMiddleware(s.cfg.Security.MaxBodySizeKB))

	// 4. Standard middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(logging.Middleware(s.logger))
	s.router.Use(metrics.Middleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// 5. CORS. The browser extension and the front-end call this API from
	// arbitrary origins; the preflight is answered here.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
}

func (s *Server) setupRoutes() {
	// Health checks
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleHealth)

	auditHandler := auditTransport.NewHandler(s.auditSvc)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		auditHandler.RegisterRoutes(r)
	})

	// Legacy path used by older extension builds
	s.router.Route("/api", func(r chi.Router) {
		auditHandler.RegisterRoutes(r)
	})
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
