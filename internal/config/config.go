// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	Store     StoreConfig     `koanf:"store"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller adds file and line to log entries.
	Caller bool `koanf:"caller"`
}

// ToLogging converts to the logging package configuration.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// DataConfig locates the CSV snapshots and tunes the DuckDB reader.
type DataConfig struct {
	BooksPath   string `koanf:"books_path"`
	RatingsPath string `koanf:"ratings_path"`

	// Threads is the DuckDB worker count. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`

	// MaxMemory is the DuckDB memory limit, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	ContentDepth         int           `koanf:"content_depth"`
	CollaborativeDefault int           `koanf:"collaborative_default"`
	DefaultLimit         int           `koanf:"default_limit"`
	MaxLimit             int           `koanf:"max_limit"`
	MaxCatalogSize       int           `koanf:"max_catalog_size"`
	VolumeQuantile       float64       `koanf:"volume_quantile"`
	Workers              int           `koanf:"workers"`
	BuildTimeout         time.Duration `koanf:"build_timeout"`
	NgramMax             int           `koanf:"ngram_max"`

	// RefreshInterval rebuilds the index periodically. 0 disables refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// EngineConfig converts to the engine configuration.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.ContentDepth = r.ContentDepth
	cfg.CollaborativeDefault = r.CollaborativeDefault
	cfg.DefaultLimit = r.DefaultLimit
	cfg.MaxLimit = r.MaxLimit
	cfg.MaxCatalogSize = r.MaxCatalogSize
	cfg.VolumeQuantile = r.VolumeQuantile
	cfg.Workers = r.Workers
	cfg.BuildTimeout = r.BuildTimeout
	cfg.Vectorizer = algorithms.VectorizerConfig{MinN: 1, MaxN: r.NgramMax}
	return cfg
}

// EventsConfig configures the rebuild-request event bus.
type EventsConfig struct {
	// Enabled turns on the event bus. When NATSURL is empty and no embedded
	// server is configured, an in-process channel is used.
	Enabled bool `koanf:"enabled"`

	// EmbeddedNATS starts a NATS server inside the process.
	EmbeddedNATS bool   `koanf:"embedded_nats"`
	NATSHost     string `koanf:"nats_host"`
	NATSPort     int    `koanf:"nats_port"`

	// NATSURL connects to an external NATS server.
	NATSURL string `koanf:"nats_url"`

	// Topic is the subject rebuild requests are published on.
	Topic string `koanf:"topic"`

	// QueueGroup load-balances rebuild requests across replicas.
	QueueGroup string `koanf:"queue_group"`
}

// UseNATS reports whether the NATS transport is selected.
func (e EventsConfig) UseNATS() bool {
	return e.EmbeddedNATS || e.NATSURL != ""
}

// StoreConfig configures the build manifest store.
type StoreConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
	Retain   int    `koanf:"retain"`
}

// SecurityConfig holds HTTP edge settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// JWTSecret signs and verifies admin bearer tokens (HS256). Empty
	// leaves admin routes locked.
	JWTSecret  string        `koanf:"jwt_secret"`
	JWTIssuer  string        `koanf:"jwt_issuer"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	PolicyPath string        `koanf:"authz_policy_path"`
}

// AuthEnabled reports whether admin routes can be unlocked by a token.
func (s SecurityConfig) AuthEnabled() bool {
	return s.JWTSecret != ""
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
