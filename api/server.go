// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"reuse-cost/core/estimate"
	"reuse-cost/core/output"
	"reuse-cost/internal/logging"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Options configures a Server
type Options struct {
	// Version is reported by /api/version and in response metadata
	Version string

	// Estimator prices requests; nil uses the built-in catalog
	Estimator *estimate.Estimator

	// RateLimit is requests per second per client; zero disables limiting
	RateLimit float64

	// Burst is the per-client burst size
	Burst int

	// Variation is the display range fraction; zero uses the default
	Variation decimal.Decimal

	// Logger receives request logs; nil uses the global logger
	Logger *zap.Logger

	// Audit receives one entry per estimate; nil logs entries through Logger
	Audit AuditLogger
}

// Server is the API server
type Server struct {
	router     *mux.Router
	handler    http.Handler
	estimator  *estimate.Estimator
	formatters *output.Registry
	version    string
	variation  decimal.Decimal
	logger     *zap.Logger
	auditor    AuditLogger
	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		estimator:  opts.Estimator,
		formatters: output.NewRegistry(),
		version:    opts.Version,
		variation:  opts.Variation,
		logger:     opts.Logger,
		auditor:    opts.Audit,
	}
	s.formatters.Register(&output.CLIFormatter{NoColor: true})
	if s.estimator == nil {
		s.estimator = estimate.Default()
	}
	if s.variation.IsZero() {
		s.variation = output.DefaultVariation
	}
	if s.logger == nil {
		s.logger = logging.With(zap.String("component", "api"))
	}
	if s.auditor == nil {
		s.auditor = NewZapAuditLogger(s.logger)
	}

	s.registerRoutes(opts)
	s.handler = s.recoverMiddleware(s.logMiddleware(cors(s.router)))
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes(opts Options) {
	api := s.router.PathPrefix("/api").Subrouter()
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		api.Use(NewIPRateLimiter(rate.Limit(opts.RateLimit), burst).LimitMiddleware)
	}

	// Core endpoints
	api.HandleFunc("/estimate/rainwater", s.handleRainwater).Methods(http.MethodPost)
	api.HandleFunc("/estimate/hvac", s.handleHVAC).Methods(http.MethodPost)
	api.HandleFunc("/report/{system:rainwater|hvac}", s.handleReport).Methods(http.MethodPost)

	// Supporting endpoints
	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path, nil, http.StatusNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path, nil, http.StatusMethodNotAllowed)
	})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /api/version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version":         s.version,
		"engine":          "reuse-cost",
		"catalog_version": s.estimator.Catalog().Version,
		"api_version":     "v1",
	}, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code, message string, messages []string, status int) {
	writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:     code,
		Message:  message,
		Messages: messages,
	}}, status)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// recoverMiddleware turns an estimator invariant panic into a 500
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("panic serving request",
					zap.String("path", r.URL.Path),
					zap.Any("panic", v))
				writeError(w, "INTERNAL_ERROR", "internal error", nil, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the server and blocks until it is shut down
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer.Addr = addr
	s.logger.Info("listening", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server. A server shut down before
// ListenAndServe is called never starts.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
