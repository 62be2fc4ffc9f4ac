// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api provides the HTTP layer for Folio.

Endpoints:

	GET  /recommend                   ordered book ids, plain wire format
	GET  /api/v1/recommendations      same query, APIResponse envelope
	GET  /api/v1/books                catalog listing, paginated
	GET  /api/v1/books/search         title search, paginated
	GET  /api/v1/books/random         random books
	GET  /api/v1/books/{id}           catalog lookup
	GET  /api/v1/index                active generation status
	GET  /api/v1/index/history        persisted build manifests
	POST /api/v1/index/rebuild        publish a rebuild request (202), admin token
	GET  /healthz                     liveness
	GET  /readyz                      503 until the first generation is live
	GET  /metrics                     Prometheus exposition
	GET  /swagger/*                   Swagger UI and doc.json

The plain /recommend endpoint keeps the response shapes existing clients
depend on:

	200 [12, 7, 31]
	400 {"error": "Invalid request parameters", "details": {...}}
	404 {"message": "No recommendations found"}
	500 {"error": "..."}
	503 {"error": "index not ready"}

Everything under /api/v1 uses the APIResponse envelope from response.go.
Listings add meta.pagination with total, has_more and next/prev links.

The rebuild route requires a bearer token accepted by the TokenVerifier and
allowed by the Authorizer (see RequireAuthorization).

Middleware (outermost first): request id, real IP, access log, recoverer,
CORS, Prometheus, rate limit, timeout, security headers.
*/
package api
