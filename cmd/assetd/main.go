// Command assetd serves the /asset distribution API from configured sets.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/assetlens/internal/adapters/http/api"
	"github.com/okian/assetlens/internal/adapters/repository"
	service "github.com/okian/assetlens/internal/app"
	"github.com/okian/assetlens/internal/config"
	"github.com/okian/assetlens/pkg/logger"
	"github.com/okian/assetlens/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	var logOpts []logger.Option
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile), logger.WithJSON())
	}
	if err := logger.Init(logOpts...); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Named("assetd")

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	handler, err := newHandler(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build handler", logger.Error(err))
		return
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Join(api.ErrServe, err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error(ctx, "HTTP server failed", logger.Error(err))
		return
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newHandler seeds the store from cfg and returns the routed API handler.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "distribution sets loaded", logger.Int("sets", store.Count(ctx)))

	svc := service.New(
		service.WithStore(store),
		service.WithLogger(log.Named("service")),
	)
	return api.NewServer(svc,
		api.WithToken(cfg.Token),
		api.WithLogger(log.Named("api")),
	).Handler(), nil
}

// buildStore copies the configured distribution and detail sets into a MemoryStore.
func buildStore(ctx context.Context, cfg *config.Config) (*repository.MemoryStore, error) {
	store := repository.NewMemoryStore()
	put := func(kind repository.Kind, sets map[string]config.Asset) error {
		for name, set := range sets {
			items := make([]repository.Item, 0, len(set.Items))
			for _, it := range set.Items {
				items = append(items, repository.Item{Name: it.Name, Value: it.Value})
			}
			if err := store.Put(ctx, kind, name, items); err != nil {
				return err
			}
		}
		return nil
	}
	if err := put(repository.KindDistribution, cfg.Distributions); err != nil {
		return nil, err
	}
	if err := put(repository.KindDetail, cfg.Details); err != nil {
		return nil, err
	}
	return store, nil
}

// startSystemMetricsUpdater periodically publishes runtime metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
