// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build !nats

package main

import (
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/events"
)

// initNATSEvents falls back to the in-process bus in non-NATS builds.
//
//nolint:gocritic // hugeParam: config is read once at startup
func initNATSEvents(_ config.EventsConfig, busCfg events.Config, comps *eventComponents) error {
	comps.logger.Warn().Msg("NATS transport configured but NATS support not compiled (build with -tags nats), using in-process bus")
	comps.bus = events.NewGoChannelBus(busCfg, comps.logger)
	return nil
}
