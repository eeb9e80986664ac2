package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/cms"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/config"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/handlers"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/httpserver"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/observability"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	srv, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	serverLogger := logger.Named("http").With(
		zap.String("addr", srv.Addr),
		zap.Bool("dev", cfg.Server.Dev),
		zap.String("default_locale", cfg.Site.DefaultLocale),
	)
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("clinic site listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildServer loads translations and templates and wires the site handler.
// Missing or malformed content fails here rather than on first request.
func buildServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	catalog, err := i18n.Load(cfg.Paths.Locales, locale.Supported(), clinic.LocationFallbacks)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	assets := os.DirFS(filepath.Join(cfg.Paths.Public, "assets"))
	views, err := view.New(cfg.Paths.Templates, view.WithDev(cfg.Server.Dev), view.WithAssets(assets))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	reg := routing.Default()
	pages := handlers.NewResolver(handlers.Options{
		Registry: reg,
		Catalog:  catalog,
		Articles: cms.NewRenderer(catalog, cms.WithCacheTTL(cfg.Content.CacheTTL)),
		BaseURL:  cfg.Site.BaseURL,
		PageSize: cfg.Content.BlogPageSize,
	})

	return httpserver.New(httpserver.Config{
		Address:        cfg.Addr(),
		BaseURL:        cfg.Site.BaseURL,
		DefaultLocale:  cfg.Locale(),
		Dev:            cfg.Server.Dev,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
		Registry:       reg,
		Pages:          pages,
		Views:          views,
		Assets:         assets,
	}), nil
}
