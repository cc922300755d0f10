package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/handlers"
	"college-trip-planner/internal/planner"
	"college-trip-planner/internal/sqlite"
)

// Server wraps the HTTP server and all dependencies
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	db         database.DataStore
	listener   net.Listener
	addr       string
	stopSweep  chan struct{}
	stopOnce   sync.Once
}

// Config holds server configuration
type Config struct {
	Addr             string // e.g., "127.0.0.1:8080" or "127.0.0.1:0" for random port
	DatabasePath     string
	MaxExactColleges int
	SessionTTL       time.Duration
}

// New creates and initializes a new server (does not start it)
func New(cfg Config) (*Server, error) {
	log.Printf("Initializing data store...")
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	return NewWithStore(cfg, db), nil
}

// NewWithStore builds a server around an already opened store
func NewWithStore(cfg Config, db database.DataStore) *Server {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = database.DefaultSessionTTL
	}

	handler := &handlers.Handler{
		DB:      db,
		Planner: planner.New(db.Distances(), planner.Config{MaxExactColleges: cfg.MaxExactColleges}),
		Trips:   handlers.NewTripSessionStore(ttl),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      setupRoutes(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		db:         db,
		addr:       cfg.Addr,
		stopSweep:  make(chan struct{}),
	}
}

// Start starts the server and returns the actual address (useful for random port)
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	log.Printf("Starting server on %s", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	go s.sweepSessions(time.Minute)

	return actualAddr, nil
}

// sweepSessions drops expired trips until Shutdown
func (s *Server) sweepSessions(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.handler.Trips.Sweep()
		case <-s.stopSweep:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and closes the store.
// Calls after the first are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopSweep)
		err = errors.Join(s.httpServer.Shutdown(ctx), s.db.Close())
	})
	return err
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func setupRoutes(handler *handlers.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware, corsMiddleware)

	r.Mount("/api/v1", handler.Routes())
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, lrw.statusCode, duration)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Only allow localhost origins
		if origin == "" ||
			strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:") {
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
