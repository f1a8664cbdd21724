package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/youruser/tarotapp/internal/api"
	"github.com/youruser/tarotapp/internal/cards"
	"github.com/youruser/tarotapp/internal/config"
	"github.com/youruser/tarotapp/internal/journal"
	"github.com/youruser/tarotapp/internal/meaning"
	"github.com/youruser/tarotapp/internal/observability"
	"github.com/youruser/tarotapp/internal/session"
	"github.com/youruser/tarotapp/internal/util"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if err := util.EnsureDir(cfg.DataDir); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metadata is optional; the Word documents carry the same rows.
	meta, err := cards.LoadMetadataCSV(cfg.MetadataCSV)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("No metadata CSV, using meaning documents only", "path", cfg.MetadataCSV)
	case err != nil:
		slog.Warn("Failed to load metadata CSV", "path", cfg.MetadataCSV, "error", err)
	default:
		slog.Info("Loaded card metadata", "path", cfg.MetadataCSV, "cards", len(meta))
	}

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var readings journal.Store
	if j, err := journal.Open(ctx, cfg.DatabaseURL, cfg.DataDir); err != nil {
		slog.Warn("Reading journal disabled", "error", err)
	} else {
		readings = j
		defer j.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &api.Server{
		Sessions:    session.NewManager(store, nil),
		Meanings:    meaning.NewReader(cfg.AssetsDir, meta),
		Journal:     readings,
		Metrics:     observability.NewMetrics(reg),
		Gatherer:    reg,
		AssetsDir:   cfg.AssetsDir,
		FrontendDir: cfg.FrontendDir,
		PublicURL:   cfg.PublicURL,
		CORSOrigins: cfg.CORSOrigins,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() != gin.ReleaseMode {
		router.Use(gin.Logger())
	}
	api.RegisterRoutes(router, srv)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting tarot server",
			"port", cfg.Port,
			"assets_dir", cfg.AssetsDir,
			"frontend_dir", cfg.FrontendDir,
			"journal", readings != nil,
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down tarot server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// openSessionStore picks Redis when REDIS_URL is set and process memory
// otherwise.
func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		slog.Info("Using in-memory deck sessions", "ttl", cfg.SessionTTL.String())
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}
	rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	slog.Info("Using Redis deck sessions", "ttl", cfg.SessionTTL.String())
	return rs, func() {
		if err := rs.Close(); err != nil {
			slog.Warn("Redis close error", "error", err)
		}
	}, nil
}
