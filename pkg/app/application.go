package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	healthhandler "stayspot/internal/health/handler"
	"stayspot/pkg/auth"
	"stayspot/pkg/config"
	"stayspot/pkg/contracts"
	"stayspot/pkg/events"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/middleware"
	"syscall"

	"github.com/go-chi/cors"
	"github.com/julienschmidt/httprouter"
)

const (
	MessageRouteNotFound    = "Resource couldn't be found"
	MessageMethodNotAllowed = "Method not allowed"

	corsMaxAge = 300
)

type Application struct {
	cfg              *config.Config
	server           *http.Server
	publisher        events.Publisher
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.ClientRateLimiter
	healthHandler    http.Handler
	appHttpHandler   http.Handler
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp builds the health and API handler chains and the HTTP server.
// Every handler registers its routes on one shared router.
func (a *Application) SetApp(tokens *auth.TokenManager, publisher events.Publisher, handlers ...contracts.Handler) {
	a.publisher = publisher
	a.setHealthHandler()
	a.setAppHandler(tokens, handlers)
	a.setAppServer()
}

// Handler returns the root handler serving both health and API routes.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	healthHandler := healthhandler.NewHealthHandler(a.cfg.Client, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(tokens *auth.TokenManager, handlers []contracts.Handler) {
	appRouter := httprouter.New()
	appRouter.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteMessage(w, http.StatusNotFound, MessageRouteNotFound)
	})
	appRouter.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteMessage(w, http.StatusMethodNotAllowed, MessageMethodNotAllowed)
	})
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.TrustedProxyIP(a.cfg.TrustedProxies, a.cfg.Log),
		a.cfg.Log,
	)

	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.Idempotency(a.idempotencyStore, middleware.IdempotencyKeyHeader, auth.UserIDFromRequest)(appHttpHandler)
	appHttpHandler = tokens.Authenticate(appHttpHandler)
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.ClientRateLimit(a.rateLimiter)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	appHttpHandler = corsHandler(a.cfg.CORSAllowedOrigins)(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(a.cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.cfg.Log.Info("Application endpoints configured with full security middleware stack",
		"handlers", len(handlers),
		"cors_allowed_origins", a.cfg.CORSAllowedOrigins,
	)
}

func corsHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.IdempotencyKeyHeader},
		ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
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
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

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
			a.cfg.Log.Error("Could not stop server gracefully", "error", err)
		}
	}
	a.cfg.Log.Info("Server stopped")

	a.Stop()
	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Shutdown complete")
}

// Stop releases the background workers and the event publisher.
func (a *Application) Stop() {
	if a.idempotencyStore != nil {
		a.idempotencyStore.Stop()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}
	a.cfg.Log.Info("Background workers stopped")
}
