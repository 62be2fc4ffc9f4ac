// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package services adapts Folio components to suture.Service.
//
//   - HTTPServerService: runs an http.Server, shuts it down gracefully when
//     its context ends
//   - IndexService: builds the first index generation, refreshes it on an
//     interval and rebuilds on request events
//   - NATSServerService: ties the embedded NATS server's lifetime to the tree
//     (nats build tag only)
//
// Every service returns ctx.Err() on a clean stop so suture does not count
// it as a failure.
package services
