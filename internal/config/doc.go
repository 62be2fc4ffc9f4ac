// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package config loads Folio's configuration.

# Configuration Sources

Layers are applied in order, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, or the first of DefaultConfigPaths that exists
 3. Environment variables with an explicit name mapping

Unknown environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Data (CSV snapshots read through DuckDB):
  - FOLIO_BOOKS_PATH, FOLIO_RATINGS_PATH, DUCKDB_THREADS, DUCKDB_MAX_MEMORY

Recommendation engine:
  - RECOMMEND_CONTENT_DEPTH, RECOMMEND_COLLABORATIVE_DEFAULT,
    RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT, RECOMMEND_MAX_CATALOG_SIZE,
    RECOMMEND_WORKERS, RECOMMEND_BUILD_TIMEOUT, RECOMMEND_REFRESH_INTERVAL

Events:
  - EVENTS_ENABLED, NATS_EMBEDDED, NATS_URL, NATS_HOST, NATS_PORT,
    EVENTS_TOPIC

Manifest store:
  - STORE_PATH, STORE_IN_MEMORY, STORE_RETAIN

Security:
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS,
    RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
