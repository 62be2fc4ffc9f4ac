// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package main is the entry point for the Folio recommendation server.

Folio serves book recommendations from a books CSV and a ratings CSV. At
startup it reads both files through DuckDB, builds an index generation
(TF-IDF content similarity, item-item neighbors and the Bayesian rating
prior) and then answers GET /recommend from that generation. Later builds
run in the background and replace the active generation atomically, so
in-flight requests always see one consistent index.

# Application Architecture

The server is a suture supervisor tree with three layers:

  - data-layer: the index service (startup build, periodic refresh and
    rebuilds requested over the event bus)
  - messaging-layer: the embedded NATS server, when enabled
  - api-layer: the HTTP server

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables
  - Config file (config.yaml, or the file named by CONFIG_PATH)
  - Built-in defaults

Common environment variables:

	HTTP_HOST=127.0.0.1
	HTTP_PORT=5000
	FOLIO_BOOKS_PATH=/data/books.csv
	FOLIO_RATINGS_PATH=/data/ratings.csv
	RECOMMEND_REFRESH_INTERVAL=1h
	LOG_LEVEL=info
	LOG_FORMAT=json

# Events

Rebuild requests (POST /api/v1/index/rebuild) travel over a Watermill bus.
By default the bus is an in-process channel. NATS_URL selects an external
NATS server and NATS_EMBEDDED=true starts one inside the process, which
lets several replicas share one rebuild queue group. The NATS transport is
compiled only with the nats build tag:

	go build -tags nats -o folio ./cmd/server

Without the tag a configured NATS transport falls back to the in-process
channel with a warning. EVENTS_ENABLED=false disables the rebuild endpoint.

# Admin Authorization

POST /api/v1/index/rebuild requires an HS256 bearer token signed with
JWT_SECRET (at least 32 characters). Casbin checks the token subject and
roles against the embedded policy, which grants the admin role, or against
the CSV named by AUTHZ_POLICY_PATH. Without JWT_SECRET the endpoint answers
401 to every request. Mint a token with:

	JWT_SECRET=... folioctl token --subject ops --role admin

# API Documentation

The OpenAPI document is served at /swagger/doc.json and the Swagger UI at
/swagger/index.html. Regenerate the docs package after changing handler
annotations:

	go generate ./cmd/server

# Manifest Store

Every installed generation is recorded in a BadgerDB manifest store,
in memory by default. STORE_PATH with STORE_IN_MEMORY=false persists the
history across restarts.

# Signal Handling

SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
in-flight requests within HTTP_SHUTDOWN_TIMEOUT, the index service abandons
any running build, and services that fail to stop in time are reported.

# Usage Examples

Development:

	export LOG_FORMAT=console LOG_LEVEL=debug
	go run ./cmd/server

Querying:

	curl 'http://localhost:5000/recommend?book_id=1&method=Hybrid&limit=10'
*/
package main
