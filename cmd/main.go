package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vintry/tastingd/internal/adapters/http/api"
	"github.com/vintry/tastingd/internal/adapters/http/docs"
	"github.com/vintry/tastingd/internal/adapters/shopify"
	service "github.com/vintry/tastingd/internal/app"
	"github.com/vintry/tastingd/internal/config"
	"github.com/vintry/tastingd/internal/domain/trust"
	"github.com/vintry/tastingd/pkg/logger"

	"github.com/joho/godotenv"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Local development keeps credentials in a .env file; missing files
	// are fine in deployed environments.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := cfg.RequireCredentials(); err != nil {
		os.Stderr.WriteString("incomplete config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	client := shopify.New(cfg.ShopDomain, cfg.APIVersion, cfg.AdminToken,
		shopify.WithTimeout(time.Duration(cfg.RemoteTimeoutMS)*time.Millisecond),
	)

	svc := service.New(client, service.WithLogger(log))

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API documentation under /api-docs.
	docs.Register(ctx, mux)

	apiServer := api.NewServer(
		svc,
		svc,
		trust.NewProxyVerifier(cfg.AppProxySecret),
		trust.NewDirectVerifier(cfg.Origins(), client),
	)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("shop", cfg.ShopDomain),
			logger.String("api_version", cfg.APIVersion),
			logger.Int("allowed_origins", len(cfg.Origins())),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
