// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package logging provides the process-wide zerolog logger for Folio.
//
// Initialize once at startup from configuration:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//
// Components derive child loggers with a component field:
//
//	logger := logging.WithComponent("index")
//
// Request-scoped fields travel in the context and are picked up by Ctx:
//
//	ctx = logging.ContextWithRequestID(ctx, id)
//	logging.Ctx(ctx).Debug().Msg("handled")
//
// # Adapters
//
// Libraries with their own logging interfaces are bridged to zerolog:
//
//   - SlogHandler implements slog.Handler (used by sutureslog)
//   - WatermillAdapter implements watermill.LoggerAdapter (event bus)
package logging
