// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware for the Folio API.

All middleware uses the func(http.Handler) http.Handler shape so it can be
mounted directly on a chi router:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)

Components:

  - RequestID: honours an inbound X-Request-ID or generates a UUID, echoes
    it on the response and stores it in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by the chi route pattern
  - AccessLog: one zerolog line per request; health probes log at debug

CORS, rate limiting and panic recovery come from go-chi/cors, go-chi/httprate
and chi's middleware package and are wired in the api package.
*/
package middleware
