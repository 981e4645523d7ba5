package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cashbook/internal/cache"
	"cashbook/internal/ledger"
	applog "cashbook/internal/log"
	"cashbook/internal/services"
	"cashbook/internal/stats"
)

// Ledger is the storage surface the API depends on. Both the memory
// store and the sqlite repository satisfy it.
type Ledger interface {
	ledger.PaymentSource
	ledger.AccountSource
	ledger.CategorySource
	ledger.PaymentWriter
	ledger.AccountWriter
	ledger.WarningWriter
}

type Server struct {
	http.Server
	store       Ledger
	payments    *services.PaymentService
	projections *services.ProjectionService
	cashflow    *stats.CashFlowCalculator
	spreading   *stats.CategorySpreadingCalculator
	balance     *stats.AccountBalanceProjector
	rateLimiter *rateLimiter

	// Computed statistics are cached per date window and dropped
	// wholesale whenever the ledger changes.
	cashflowCache  *cache.LRUCache[stats.CashFlow]
	spreadingCache *cache.LRUCache[[]stats.SpreadEntry]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// Options tunes server-side caching. Zero values fall back to defaults.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, store Ledger, payments *services.PaymentService, projections *services.ProjectionService, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 100
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:          store,
		payments:       payments,
		projections:    projections,
		cashflow:       stats.NewCashFlowCalculator(store),
		spreading:      stats.NewCategorySpreadingCalculator(store),
		balance:        stats.NewAccountBalanceProjector(store),
		rateLimiter:    newRateLimiter(),
		cashflowCache:  cache.NewLRUCache[stats.CashFlow](opts.CacheSize, opts.CacheTTL),
		spreadingCache: cache.NewLRUCache[[]stats.SpreadEntry](opts.CacheSize, opts.CacheTTL),
		cacheManager:   cache.NewManager(),
	}

	s.cacheManager.Register(s.cashflowCache)
	s.cacheManager.Register(s.spreadingCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /payments", s.withMiddleware(s.handleCreatePayment))
	mux.HandleFunc("GET /payments", s.withMiddleware(s.handleListPayments))
	mux.HandleFunc("DELETE /payments/{id}", s.withMiddleware(s.handleDeletePayment))

	mux.HandleFunc("GET /accounts", s.withMiddleware(s.handleListAccounts))
	mux.HandleFunc("POST /accounts", s.withMiddleware(s.handleCreateAccount))
	mux.HandleFunc("GET /accounts/{id}/projection", s.withMiddleware(s.handleAccountProjection))
	mux.HandleFunc("POST /projections/end-of-month", s.withMiddleware(s.handleEndOfMonthProjection))

	mux.HandleFunc("GET /categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("GET /stats/cashflow", s.withMiddleware(s.handleCashFlow))
	mux.HandleFunc("GET /stats/category-spreading", s.withMiddleware(s.handleCategorySpreading))

	return s
}

// invalidateStats drops every cached statistic. Called after any write
// since all windows may be affected.
func (s *Server) invalidateStats() {
	s.cashflowCache.Clear()
	s.spreadingCache.Clear()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request
// logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		// Rate limit mutating requests only.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
