// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package metrics defines Folio's Prometheus collectors.
//
// Collectors are registered on the default registry at package init via
// promauto and exposed by the /metrics endpoint. Families:
//
//   - folio_api_*: HTTP request counts, latency and rate-limit rejections
//   - folio_recommend_*: queries by method and outcome, query latency
//   - folio_index_*: build and phase durations, active generation sizes,
//     rebuild results
//   - folio_events_*: rebuild requests published and consumed
//   - folio_circuit_breaker_*: client breaker state and results
//
// The Record* helpers keep label values consistent across callers.
package metrics
