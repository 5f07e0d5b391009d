package app

import (
	"context"
	"curoo/pkg/config"
	"curoo/pkg/contracts"
	"curoo/pkg/middleware"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg              *config.Config
	server           *http.Server
	handler          http.Handler
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.IPRateLimiter
	onShutdown       []func(context.Context) error
}

// NewApplication wires health endpoints with a minimal middleware chain and
// every other route with the full chain.
func NewApplication(cfg *config.Config, health contracts.Handler, api contracts.Handler) *Application {
	a := &Application{cfg: cfg}

	mux := http.NewServeMux()
	healthHandler := a.healthHandler(health)
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/", a.apiHandler(api))
	a.handler = mux

	a.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	cfg.Log.Info("HTTP server configured", "port", cfg.Port)
	return a
}

// Handler is the fully wrapped root handler.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// OnShutdown registers fn to run after the server has stopped accepting
// requests.
func (a *Application) OnShutdown(fn func(context.Context) error) {
	a.onShutdown = append(a.onShutdown, fn)
}

func (a *Application) healthHandler(health contracts.Handler) http.Handler {
	router := httprouter.New()
	health.RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

func (a *Application) apiHandler(api contracts.Handler) http.Handler {
	router := httprouter.New()
	api.RegisterRoutes(router)

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewIPRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst, a.cfg.Log)

	var h http.Handler = router
	h = middleware.Idempotency(a.idempotencyStore)(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.RateLimit(a.rateLimiter)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.Stop()
	for _, fn := range a.onShutdown {
		if err := fn(ctx); err != nil {
			a.cfg.Log.Error("Shutdown hook failed", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}

// Stop halts the background cleanup workers.
func (a *Application) Stop() {
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
}
