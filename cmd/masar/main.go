package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/config"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/eta"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/faq"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/handler"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/lostfound"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/places"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/route"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/server"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/storage"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/transit"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.StationsPath, "stations", cfg.StationsPath, "Path to the station dump JSON")
	flag.StringVar(&cfg.AliasesPath, "aliases", cfg.AliasesPath, "Path to the operator alias YAML (optional)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// The catalog is the one thing the planner cannot run without.
	cat, err := catalog.Load(cfg.StationsPath, logger)
	if err != nil {
		logger.Error("failed to load station catalog", "error", err)
		os.Exit(1)
	}
	if cfg.AliasesPath != "" {
		if err := cat.ApplyAliases(cfg.AliasesPath, logger); err != nil {
			logger.Warn("failed to apply station aliases", "error", err)
		}
	}

	params := transit.Params{
		TrainSpeedKmh:     cfg.TrainSpeedKmh,
		DwellMinutes:      cfg.DwellMinutes,
		MinSegmentMinutes: cfg.MinSegmentMinutes,
		TransferMinutes:   cfg.TransferMinutes,
		ProximityMeters:   cfg.ProximityMeters,
	}

	geocoder := places.New(cfg.GoogleMapsKey, logger)
	routes := route.New(cat, params, geocoder, logger)
	if err := routes.Warm(); err != nil {
		logger.Error("failed to build transit graph", "error", err)
		os.Exit(1)
	}

	entries, err := db.ListFAQ(ctx)
	if err != nil {
		logger.Error("failed to load FAQ corpus", "error", err)
		os.Exit(1)
	}
	faqIndex := faq.NewIndex(entries, logger)

	flow := lostfound.New(db, logger)
	etaClient := eta.New(cfg.GoogleMapsKey, logger)

	h := handler.New(routes, etaClient, faqIndex, flow, db, logger)
	srv := server.New(cfg.Port, h, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
