package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/openstreetarena/incident-map/internal/app"
	"github.com/openstreetarena/incident-map/internal/config"
	"github.com/openstreetarena/incident-map/internal/dataset"
	"github.com/openstreetarena/incident-map/internal/httpapi"
	"github.com/openstreetarena/incident-map/internal/locale"
	"github.com/openstreetarena/incident-map/internal/observability"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var pref locale.Preference
	if cfg.LangPrefPath != "" {
		pref = locale.FilePreference{Path: cfg.LangPrefPath}
	}
	loc := locale.NewStore(pref)
	// A stored preference wins; otherwise honor the configured default.
	if cfg.DefaultLang != "" && loc.Language() == locale.DefaultLanguage {
		loc.SetLanguage(cfg.DefaultLang)
	}

	controller := app.NewController(loc, logger, metrics)
	renderer := app.NewRenderer(loc, logger, metrics)
	controller.Subscribe(renderer.Apply)

	loader := dataset.NewLoader(cfg, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed startup load keeps the service alive but not ready; the
	// translated failure summary is served instead of data.
	if res, err := loader.Load(ctx, ""); err != nil {
		logger.Error("startup dataset load failed", "error", err)
		controller.SetLoadFailed()
	} else {
		controller.SetDataset(res, url.Values{})
		renderer.SetHighlight(controller.HighlightID())
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, controller, renderer, loc, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
