// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build !nats

package main

import (
	"time"

	"github.com/tomtom215/folio/internal/supervisor"
)

// addNATSToSupervisor is a no-op in non-NATS builds.
func addNATSToSupervisor(_ *supervisor.SupervisorTree, _ *eventComponents, _ time.Duration) {}
