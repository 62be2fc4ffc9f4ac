// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor runs Folio's long-lived services under a suture tree.

Tree layout:

	folio (root)
	├── data-layer       index service: startup build, refresh, rebuild events
	├── messaging-layer  embedded NATS server (when enabled)
	└── api-layer        HTTP server

Each layer is its own supervisor, so a crashing HTTP server is restarted
without touching the index service. Restart decisions follow the
FailureThreshold/FailureDecay/FailureBackoff settings of TreeConfig, and
supervisor events are logged through sutureslog onto the zerolog logger
(see logging.NewSlogLogger).

Service implementations live in the services subpackage.
*/
package supervisor
