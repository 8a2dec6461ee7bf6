package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// requestTimeout bounds the work done for a single API request.
const requestTimeout = 10 * time.Second

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP API server.
type Server struct {
	ports   *Ports
	router  chi.Router
	metrics *metrics
	limiter *rateLimiter
	timeout time.Duration
}

// NewServer creates a server for the given ports. settings.RateLimit caps
// the sustained request rate of the API routes.
func NewServer(ports *Ports, settings domain.ServerSettings) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if settings.RateLimit <= 0 {
		settings.RateLimit = domain.DefaultAppSettings().Server.RateLimit
	}

	s := &Server{
		ports:   ports,
		metrics: newMetrics(),
		timeout: requestTimeout,
	}
	s.limiter = newRateLimiter(settings.RateLimit, s.metrics.rateLimitHits.Inc)
	s.router = s.routes()
	return s, nil
}

// echoRequestID returns the request ID to the caller.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimiddleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimiddleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// routes builds the chi router. Health and metrics bypass the limiter.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(echoRequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limiter.middleware)
		r.Route("/products", func(r chi.Router) {
			r.Get("/search", s.handleSearch)
			r.Get("/{id}", s.handleGetProduct)
			r.Get("/{id}/recommendations", s.handleRecommendations)
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http: listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
