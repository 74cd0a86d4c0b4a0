package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/app"
	"github.com/kailas-cloud/scentdex/internal/config"
	logpkg "github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/metrics"
	chiTransport "github.com/kailas-cloud/scentdex/internal/transport/chi"
	mcpTransport "github.com/kailas-cloud/scentdex/internal/transport/mcp"
	"github.com/kailas-cloud/scentdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config: "+err.Error())
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger: "+err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scentdex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("transport", cfg.Server.Transport),
		zap.String("vector_driver", cfg.VectorIndex.Driver),
		zap.String("index", cfg.VectorIndex.IndexName),
		zap.String("embedding_model", cfg.Embedding.Model),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	a, err := app.New(&cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build pipeline", zap.Error(err))
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.WaitForReady(ctx); err != nil {
		logger.Fatal("Vector index not ready", zap.Error(err))
	}
	logger.Info("Connected to vector index")

	mcpServer, err := mcpTransport.NewServer(&mcpTransport.Config{
		Name:    "scentdex",
		Version: version.Version,
		Logger:  logger,
	}, a.Tool)
	if err != nil {
		logger.Fatal("Failed to create MCP server", zap.Error(err))
	}

	switch cfg.Server.Transport {
	case config.TransportStdio:
		err = mcpServer.Run(ctx)
	default:
		err = serveHTTP(ctx, &cfg, a, mcpServer, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// serveHTTP runs the JSON and streamable MCP endpoints until ctx is canceled.
func serveHTTP(
	ctx context.Context,
	cfg *config.Config,
	a *app.App,
	mcpServer *mcpTransport.Server,
	logger *zap.Logger,
) error {
	server := chiTransport.NewServer(a.Tool, a.Health, logger)
	router := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		MCP:     mcpServer.Handler(),
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
