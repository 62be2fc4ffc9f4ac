// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/folio/config.yaml",
	"/etc/folio/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            5000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Data: DataConfig{
			BooksPath:   "books.csv",
			RatingsPath: "ratings.csv",
			Threads:     0,
			MaxMemory:   "1GB",
		},
		Recommend: RecommendConfig{
			ContentDepth:         50,
			CollaborativeDefault: 10,
			DefaultLimit:         10,
			MaxLimit:             100,
			MaxCatalogSize:       20000,
			VolumeQuantile:       0.75,
			Workers:              0,
			BuildTimeout:         10 * time.Minute,
			NgramMax:             2,
			RefreshInterval:      0,
		},
		Events: EventsConfig{
			Enabled:      true,
			EmbeddedNATS: false,
			NATSHost:     "127.0.0.1",
			NATSPort:     4222,
			NATSURL:      "",
			Topic:        "folio.index.rebuild",
			QueueGroup:   "folio-indexers",
		},
		Store: StoreConfig{
			Path:     "",
			InMemory: true,
			Retain:   50,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			JWTIssuer:         "folio",
			TokenTTL:          time.Hour,
		},
	}
}

// LoadWithKoanf applies defaults, the config file and environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Data
	"folio_books_path":   "data.books_path",
	"folio_ratings_path": "data.ratings_path",
	"duckdb_threads":     "data.threads",
	"duckdb_max_memory":  "data.max_memory",

	// Recommendation engine
	"recommend_content_depth":         "recommend.content_depth",
	"recommend_collaborative_default": "recommend.collaborative_default",
	"recommend_default_limit":         "recommend.default_limit",
	"recommend_max_limit":             "recommend.max_limit",
	"recommend_max_catalog_size":      "recommend.max_catalog_size",
	"recommend_volume_quantile":       "recommend.volume_quantile",
	"recommend_workers":               "recommend.workers",
	"recommend_build_timeout":         "recommend.build_timeout",
	"recommend_ngram_max":             "recommend.ngram_max",
	"recommend_refresh_interval":      "recommend.refresh_interval",

	// Events
	"events_enabled":     "events.enabled",
	"nats_embedded":      "events.embedded_nats",
	"nats_host":          "events.nats_host",
	"nats_port":          "events.nats_port",
	"nats_url":           "events.nats_url",
	"events_topic":       "events.topic",
	"events_queue_group": "events.queue_group",

	// Manifest store
	"store_path":      "store.path",
	"store_in_memory": "store.in_memory",
	"store_retain":    "store.retain",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"token_ttl":           "security.token_ttl",
	"authz_policy_path":   "security.authz_policy_path",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" and are skipped.
//
//   - HTTP_PORT -> server.port
//   - FOLIO_BOOKS_PATH -> data.books_path
//   - NATS_URL -> events.nats_url
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
