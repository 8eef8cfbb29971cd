// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/evanbei/nodegen/internal/apperr"
	"github.com/evanbei/nodegen/internal/build"
	"github.com/evanbei/nodegen/internal/mcpserver"
	"github.com/evanbei/nodegen/internal/preview"
	"github.com/evanbei/nodegen/internal/sse"
	"github.com/evanbei/nodegen/internal/storage"
	"github.com/evanbei/nodegen/internal/watch"
)

// Run executes the selected command with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{command: CommandBuild, version: "dev"}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logs go to stderr; stdout carries the MCP transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("command", app.command),
		slog.String("site_root", cfg.Site.Root),
		slog.String("portal", cfg.Site.Portal),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Site.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	builder := build.New(store,
		build.WithLayout(cfg.Site.Layout()),
		build.WithTargets(cfg.Site.ChecksumTargets),
		build.WithLogger(logger),
	)

	switch app.command {
	case CommandBuild:
		_, err := builder.All()
		return err

	case CommandNode:
		_, err := builder.Node()
		return err

	case CommandChecksums:
		_, err := builder.Checksums()
		return err

	case CommandVerify:
		return runVerify(builder, logger)

	case CommandWatch:
		return runWatch(ctx, cfg, store, builder, logger, nil)

	case CommandServe:
		return runServe(ctx, cfg, store, builder, logger, hiddenPaths(store, app.configFile))

	case CommandMCP:
		return mcpserver.New(builder, app.version).ServeStdio()
	}

	return fmt.Errorf("unknown command %q", app.command)
}

func runVerify(builder *build.Builder, logger *slog.Logger) error {
	report, err := builder.Verify()
	if err != nil {
		return err
	}
	for _, m := range report.Checksums {
		logger.Warn("checksum mismatch",
			slog.String("path", m.Path),
			slog.String("kind", m.Kind))
	}
	for _, p := range report.Stale {
		logger.Warn("stale derived file", slog.String("path", p))
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d checksum mismatches, stale: %s",
			apperr.ErrDrift, len(report.Checksums), strings.Join(report.Stale, ", "))
	}
	logger.Info("Site is consistent")
	return nil
}

// runWatch builds once, then rebuilds on every portal change until ctx is
// cancelled or a shutdown signal arrives. broker may be nil.
func runWatch(ctx context.Context, cfg *Config, store *storage.FS, builder *build.Builder, logger *slog.Logger, broker *sse.Broker) error {
	portalPath, err := store.Abs(filepath.ToSlash(cfg.Site.Portal))
	if err != nil {
		return err
	}

	rebuild := func() {
		written, err := builder.All()
		if err != nil {
			logger.Error("rebuild failed", slog.String("error", err.Error()))
			if broker != nil {
				broker.PublishFailed(err)
			}
			return
		}
		if broker != nil {
			broker.PublishRebuilt(written)
		}
	}

	rebuild()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watch.Watch(ctx, portalPath, cfg.Watch.Debounce, logger, rebuild)
}

// hiddenPaths returns the site-relative config file path when the config
// file lives under the site root.
func hiddenPaths(store *storage.FS, configFile string) []string {
	if configFile == "" {
		return nil
	}
	abs, err := filepath.Abs(configFile)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(store.Root(), abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}

func runServe(ctx context.Context, cfg *Config, store *storage.FS, builder *build.Builder, logger *slog.Logger, hidden []string) error {
	broker := sse.NewBroker()
	defer broker.Close()

	router := preview.NewRouter(builder, preview.Options{
		SiteRoot:    store.Root(),
		AuthEnabled: cfg.Auth.AuthEnabled(),
		Token:       cfg.Auth.Token,
		Events:      broker,
		Hidden:      hidden,
	})

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: router,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the portal and announce rebuilds over SSE.
	g.Go(func() error {
		return runWatch(gCtx, cfg, store, builder, logger, broker)
	})

	g.Go(func() error {
		logger.Info("Starting preview server",
			slog.String("address", cfg.App.HTTP.Address()),
			slog.String("site_root", store.Root()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Preview server stopped")
	return nil
}

// errShutdown cancels the errgroup so the watcher stops with the server.
var errShutdown = errors.New("shutdown")
