// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package client is a typed HTTP client for the Folio API, used by folioctl
// and by services that call Folio.
//
// Requests are validated before they leave the process (book_id 1..10000
// and limit 5..20 by default), paced by a token bucket and sent through a
// circuit breaker that opens after consecutive server failures. A 404 from
// /recommend maps to ErrNoRecommendations and a 503 to ErrNotReady, the
// same sentinels the recommend package returns.
package client
