// Package api serves a corpus over a JSON HTTP API and a WebSocket citation
// lookup.
package api

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	corecache "github.com/FocuswithJustin/scriptorium/core/cache"
	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/cache"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
	"github.com/FocuswithJustin/scriptorium/internal/search"
	"github.com/FocuswithJustin/scriptorium/internal/server"
)

// Server is the HTTP API over one corpus.
type Server struct {
	opts      Options
	corpus    *corpus.Corpus
	index     *search.Index
	citations *corecache.CitationCache
	daily     *cache.TTLCache[string, corpus.VerseWithReference]
	hub       *Hub
	cors      server.CORSConfig
	handler   http.Handler
	started   time.Time

	now  func() time.Time
	intN func(n int) int
}

// New builds a Server. The corpus must be non-nil.
func New(opts Options) (*Server, error) {
	if opts.Corpus == nil {
		return nil, errors.New("api: corpus is required")
	}

	s := &Server{
		opts:      opts,
		corpus:    opts.Corpus,
		index:     opts.Index,
		citations: corecache.NewCitationCache(corecache.Config{MaxSize: opts.Cache.CitationEntries}),
		daily:     cache.New[string, corpus.VerseWithReference](opts.Cache.DailyTTL),
		hub:       NewHub(),
		cors:      server.CORSConfig{AllowedOrigins: opts.Server.AllowedOrigins},
		started:   time.Now(),
		now:       time.Now,
		intN:      rand.IntN,
	}
	s.handler = s.buildHandler()
	return s, nil
}

// Handler returns the full middleware chain around the routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) buildHandler() http.Handler {
	var handler http.Handler = server.SecurityHeaders(server.APICSPConfig(), s.routes())

	if s.opts.Server.RateLimitRPM > 0 {
		limiter := NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: s.opts.Server.RateLimitRPM,
			BurstSize:         s.opts.Server.RateLimitBurst,
		})
		handler = limiter.Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", s.opts.Server.RateLimitRPM,
			"burst_size", s.opts.Server.RateLimitBurst)
	}

	handler = server.CORSMiddleware(s.cors, handler)
	if len(s.cors.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "restricted",
			"allowed_origins_count", len(s.cors.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins (*)")
	}

	return logging.CombinedMiddleware(handler)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /verse/random", s.handleRandom)
	mux.HandleFunc("GET /verse/daily", s.handleDaily)
	mux.HandleFunc("GET /verse/{book}/{chapter}/{verse}", s.handleVerse)
	mux.HandleFunc("GET /verses/{reference}", s.handleVerses)
	mux.HandleFunc("GET /canonicalize/{reference}", s.handleCanonicalize)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("/", handleNotFound)

	return mux
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down within the
// configured shutdown timeout. Open WebSocket connections are closed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.opts.Server.ReadTimeout,
		WriteTimeout: s.opts.Server.WriteTimeout,
		IdleTimeout:  s.opts.Server.IdleTimeout,
	}
	srv.RegisterOnShutdown(s.hub.CloseAll)

	port := 0
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	logging.ServerStartup("rest_api", "http", port,
		"websocket_protocol", "ws",
		"books", len(s.corpus.Books),
		"fts", s.index != nil && s.index.FTS())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.opts.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logging.Info("server shutting down", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
