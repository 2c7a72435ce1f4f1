package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/item-manager/internal/config"
	"github.com/Lelo88/item-manager/internal/docs"
	"github.com/Lelo88/item-manager/internal/health"
	"github.com/Lelo88/item-manager/internal/httpx"
	"github.com/Lelo88/item-manager/internal/items"
	"github.com/Lelo88/item-manager/internal/logger"
	"github.com/Lelo88/item-manager/internal/metrics"
	"github.com/Lelo88/item-manager/internal/session"
	"github.com/Lelo88/item-manager/internal/web"
)

const shutdownTimeout = 10 * time.Second

// appDeps agrupa lo que los tests necesitan reemplazar.
type appDeps struct {
	loadConfig func() (config.Config, error)
	newLogger  func(level string) logger.Logger
	serve      func(ctx context.Context, server *http.Server) error
}

var (
	loadConfigFn = config.Load
	newLoggerFn  = logger.New
	serveFn      = serve
	fatalf       = log.Fatal
)

func main() {
	// Contexto raíz del proceso: se cancela con SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appDeps{
		loadConfig: loadConfigFn,
		newLogger:  newLoggerFn,
		serve:      serveFn,
	}); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		return err
	}

	appLog := deps.newLogger(cfg.LogLevel)
	appMetrics := metrics.New()

	repository, err := items.NewRepository(cfg.MaxSessions, cfg.SeedItems, items.WithEvictHook(appMetrics.SessionClosed))
	if err != nil {
		return fmt.Errorf("session repository: %w", err)
	}
	defer repository.Close()

	router, err := buildRouter(cfg, appLog, repository, appMetrics)
	if err != nil {
		return err
	}

	server := httpx.NewServer(":"+cfg.Port, router)
	appLog.Info("listening",
		"addr", server.Addr,
		"environment", cfg.Environment,
		"max_sessions", cfg.MaxSessions,
	)
	appLog.Debug("config", "values", cfg.String())

	if err := deps.serve(ctx, server); err != nil {
		return err
	}
	appLog.Info("server stopped")
	return nil
}

// buildRouter arma el router completo: ops, docs, API JSON y UI.
// Las rutas de items y la UI pasan por el middleware de sesión.
func buildRouter(cfg config.Config, appLog logger.Logger, repository *items.Repository, appMetrics *metrics.Metrics) (*chi.Mux, error) {
	store, err := session.NewCookieStore([]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	router := httpx.NewRouter(httpx.RouterConfig{
		IsDevelopment:      !cfg.IsProduction(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger.Middleware(appLog), logger.Recovery(appLog))

	healthHandler := health.New(repository)
	router.Get("/health", healthHandler.Health)
	router.Get("/ready", healthHandler.Ready)
	router.Handle("/metrics", appMetrics.Handler())
	docs.RegisterRoutes(router)

	service := items.NewService(repository, appMetrics, appLog)
	router.Group(func(r chi.Router) {
		r.Use(session.Middleware(store, appLog))
		items.RegisterRoutes(r, items.NewHandler(service))
		web.RegisterRoutes(r, web.NewHandler(service, appLog))
	})

	return router, nil
}

// serve corre el server hasta que falle o se cancele ctx; en ese caso hace shutdown ordenado.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
