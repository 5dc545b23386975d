// Package api provides the HTTP server for Brewpoint.
// It exposes the cart, rewards, checkout, order history and reservation
// operations of the session ledger as JSON.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/app/ledger"
)

// Server is the Brewpoint HTTP API server.
type Server struct {
	ledger   *ledger.Ledger
	logger   *zap.Logger
	validate *validator.Validate
	metrics  http.Handler // nil when /metrics is disabled
	hub      *ActivityHub // nil when the live feed is disabled
	version  string
	timeout  time.Duration
}

// NewServer creates a new API server over l.
func NewServer(l *ledger.Ledger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		ledger:   l,
		logger:   logger.Named("api"),
		validate: newValidator(),
		version:  "dev",
		timeout:  15 * time.Second,
	}
}

// EnableMetrics mounts /metrics for the collectors in g.
func (s *Server) EnableMetrics(g prometheus.Gatherer) {
	s.metrics = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// SetActivityHub sets the live activity SSE hub.
func (s *Server) SetActivityHub(h *ActivityHub) { s.hub = h }

// SetVersion sets the version reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// SetRequestTimeout bounds every non-streaming request.
func (s *Server) SetRequestTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	// Long-lived stream; mounted outside the request timeout.
	if s.hub != nil {
		r.Get("/api/activity/live", s.hub.HandleActivitySSE)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))

		r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"version": s.version,
			})
		})

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Post("/items", s.handleAddItem)
			r.Delete("/items/{index}", s.handleRemoveItem)
		})

		r.Route("/api/rewards", func(r chi.Router) {
			r.Get("/", s.handleGetRewards)
			r.Post("/quote", s.handleQuoteDiscount)
			r.Post("/redeem", s.handleRedeem)
		})

		r.Get("/api/payment-methods", s.handlePaymentMethods)
		r.Post("/api/checkout", s.handleCheckout)

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", s.handleListOrders)
			r.Get("/{id}", s.handleGetOrder)
		})

		r.Route("/api/reservations", func(r chi.Router) {
			r.Get("/", s.handleListReservations)
			r.Post("/", s.handleReserve)
		})
	})

	return r
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, errType, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    errType,
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
