// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build nats

package main

import (
	"time"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

// addNATSToSupervisor places the embedded NATS server in the messaging layer
// so it stops after the API and index services.
func addNATSToSupervisor(tree *supervisor.SupervisorTree, comps *eventComponents, shutdownTimeout time.Duration) {
	if comps == nil || comps.server == nil {
		return
	}
	tree.AddMessagingService(services.NewNATSServerService(comps.server, shutdownTimeout))
	logging.Info().Str("url", comps.server.ClientURL()).Msg("Embedded NATS server added to supervisor tree")
}
