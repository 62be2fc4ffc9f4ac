// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build nats

// Build with NATS support:
//
//	go build -tags nats -o folio ./cmd/server

package main

import (
	"fmt"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/events"
)

// initNATSEvents starts the embedded server when configured and connects
// the rebuild bus to NATS.
//
//nolint:gocritic // hugeParam: config is read once at startup
func initNATSEvents(cfg config.EventsConfig, busCfg events.Config, comps *eventComponents) error {
	logger := comps.logger
	busCfg.URL = cfg.NATSURL
	if cfg.EmbeddedNATS {
		srv, err := events.NewEmbeddedServer(events.ServerConfig{
			Host: cfg.NATSHost,
			Port: cfg.NATSPort,
		})
		if err != nil {
			return fmt.Errorf("start embedded NATS: %w", err)
		}
		comps.server = srv
		busCfg.URL = srv.ClientURL()
		logger.Info().Str("url", busCfg.URL).Msg("Embedded NATS server started")
	}

	bus, err := events.NewNATSBus(busCfg, logger)
	if err != nil {
		comps.close()
		return fmt.Errorf("connect event bus: %w", err)
	}
	comps.bus = bus
	logger.Info().Str("url", busCfg.URL).Str("topic", bus.Topic()).Msg("NATS event bus initialized")
	return nil
}
