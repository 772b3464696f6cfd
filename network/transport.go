package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/lixenwraith/offwall/core"
)

// Transport owns the HTTP listener the feed routes are served on
type Transport struct {
	config   *Config
	handler  http.Handler
	server   *http.Server
	listener net.Listener

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewTransport creates a transport serving handler
func NewTransport(cfg *Config, handler http.Handler) *Transport {
	return &Transport{
		config:  cfg,
		handler: handler,
	}
}

// newRouter mounts the feed routes behind CORS
func newRouter(cfg *Config, status, ws http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/status", status)
	r.Get("/ws", ws)

	return r
}

// Start binds the address and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrFeedRunning
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return fmt.Errorf("feed listen %s: %w", t.config.Address, err)
	}

	t.listener = ln
	t.server = &http.Server{
		Handler:      t.handler,
		WriteTimeout: 0, // hijacked WebSocket connections manage their own deadlines
	}

	t.wg.Add(1)
	core.Go(func() {
		defer t.wg.Done()
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("feed: serve: %v", err)
		}
	})

	log.Printf("feed: listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, useful when configured with port 0
func (t *Transport) Addr() string {
	if t.listener == nil {
		return ""
	}
	return t.listener.Addr().String()
}

// Stop shuts the server down and waits for the serve loop
// Hijacked connections are not tracked by http.Server and must be closed by the caller
func (t *Transport) Stop(ctx context.Context) error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	err := t.server.Shutdown(ctx)
	t.wg.Wait()
	if err != nil {
		return fmt.Errorf("feed shutdown: %w", err)
	}
	return nil
}

// IsRunning returns true while serving
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
