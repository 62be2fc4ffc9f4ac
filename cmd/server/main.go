// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

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

	_ "github.com/tomtom215/folio/docs" // Import generated swagger docs
	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLogging())

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("books", cfg.Data.BooksPath).
		Str("ratings", cfg.Data.RatingsPath).
		Msg("Starting Folio with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Folio stopped with error")
		cancel()
		os.Exit(1)
	}

	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component, serves until ctx ends and releases resources.
func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(&cfg.Data)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	source := database.NewCSVSource(db)

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	store, err := newManifestStore(cfg.Store, logging.WithComponent("manifests"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing manifest store")
		}
	}()

	evts, err := newEventComponents(cfg.Events, logging.WithComponent("events"))
	if err != nil {
		return err
	}
	defer evts.close()

	admin, err := newAdminAuth(cfg.Security, logging.WithComponent("auth"))
	if err != nil {
		return err
	}
	defer admin.close()

	handlerCfg := api.HandlerConfig{
		Engine:       engine,
		Manifests:    store,
		MaxLimit:     cfg.Recommend.MaxLimit,
		QueryTimeout: cfg.Server.Timeout,
		Logger:       logging.WithComponent("api"),
	}
	admin.apply(&handlerCfg)
	var listener services.RebuildListener
	if evts.bus != nil {
		handlerCfg.Rebuilds = evts.bus
		listener = evts.bus
	}
	handler, err := api.NewHandler(handlerCfg)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(cfg.Security)), cfg.Server.Timeout)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	tree.AddDataService(services.NewIndexService(engine, source, listener, store,
		services.IndexServiceConfig{RefreshInterval: cfg.Recommend.RefreshInterval},
		logging.WithComponent("index")))

	addNATSToSupervisor(tree, evts, cfg.Server.ShutdownTimeout)

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
			serveErr = err
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	return serveErr
}
