// Package server implements the HTTP API for swatchsheet serve.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int
	// MaxBodyBytes limits uploaded documents.
	MaxBodyBytes int64
	// Token, when set, is required as a bearer token on /api routes.
	// Empty falls back to SWATCHSHEET_API_TOKEN.
	Token string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         7480,
		MaxBodyBytes: 32 << 20,
	}
}

// HTTPServer serves the REST API.
type HTTPServer struct {
	config    Config
	options   sheet.Options
	libraries library.Set
	auth      *BearerAuthenticator
	router    chi.Router
}

// NewHTTPServer creates a server that generates sheets with the given base
// options, naming colors from libs.
func NewHTTPServer(config Config, options sheet.Options, libs library.Set) *HTTPServer {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	s := &HTTPServer{
		config:    config,
		options:   options,
		libraries: libs,
		auth:      NewBearerAuthenticator(config.Token),
	}
	s.router = s.setupRouter()
	return s
}

// setupRouter configures all routes.
func (s *HTTPServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger())
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Post("/sheets", s.handleCreateSheet)
		r.Post("/colors", s.handleListColors)
		r.Get("/libraries", s.handleGetLibraries)
		r.Get("/libraries/search", s.handleSearchLibraries)
		r.Get("/libraries/{name}", s.handleGetLibrary)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>swatchsheet</title></head>
<body>
<h1>swatchsheet</h1>
<p>POST an SVG to <code>/api/v1/sheets</code> to add a swatch sheet layer.</p>
<p>Libraries: <a href="/api/v1/libraries">/api/v1/libraries</a></p>
</body>
</html>`))
	})

	return r
}

// Router returns the chi router.
func (s *HTTPServer) Router() chi.Router {
	return s.router
}

// Addr returns the server address.
func (s *HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is done.
// ready, if non-nil, is called with the bound address once listening.
func (s *HTTPServer) ListenAndServe(ctx context.Context, ready func(addr string)) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// Update port if it was auto-assigned
	if s.config.Port == 0 {
		s.config.Port = ln.Addr().(*net.TCPAddr).Port
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	runlog.Log.Info("HTTP server listening", "addr", s.Addr(), "auth", s.auth.IsEnabled())
	if ready != nil {
		ready(s.Addr())
	}

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
