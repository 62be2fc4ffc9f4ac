// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/folio/internal/recommend/algorithms"
	"github.com/tomtom215/folio/internal/recommend/reranking"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// ContentDepth is the number of content candidates kept before re-ranking.
	ContentDepth int `json:"content_depth"`

	// CollaborativeDefault is the neighbor count used when a query has no limit.
	CollaborativeDefault int `json:"collaborative_default"`

	// DefaultLimit is applied to queries with Limit == 0.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the query limit.
	MaxLimit int `json:"max_limit"`

	// MaxCatalogSize bounds the dense similarity matrix. Build fails with
	// ErrCatalogTooLarge above it.
	MaxCatalogSize int `json:"max_catalog_size"`

	// VolumeQuantile is the ratings-count quantile used as the Bayesian
	// minimum-votes threshold.
	VolumeQuantile float64 `json:"volume_quantile"`

	// Workers is the parallelism of the similarity build. Zero uses GOMAXPROCS.
	Workers int `json:"workers"`

	// BuildTimeout bounds a whole generation build. Zero disables the bound.
	BuildTimeout time.Duration `json:"build_timeout"`

	// Vectorizer configures TF-IDF tokenization.
	Vectorizer algorithms.VectorizerConfig `json:"vectorizer"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		ContentDepth:         50,
		CollaborativeDefault: 10,
		DefaultLimit:         10,
		MaxLimit:             100,
		MaxCatalogSize:       20000,
		VolumeQuantile:       reranking.DefaultVolumeQuantile,
		BuildTimeout:         10 * time.Minute,
		Vectorizer:           algorithms.DefaultVectorizerConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ContentDepth < 1 {
		return fmt.Errorf("content_depth must be positive, got %d", c.ContentDepth)
	}
	if c.CollaborativeDefault < 1 {
		return fmt.Errorf("collaborative_default must be positive, got %d", c.CollaborativeDefault)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.MaxCatalogSize < 1 {
		return fmt.Errorf("max_catalog_size must be positive, got %d", c.MaxCatalogSize)
	}
	if c.VolumeQuantile <= 0 || c.VolumeQuantile > 1 {
		return fmt.Errorf("volume_quantile must be in (0, 1], got %f", c.VolumeQuantile)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.BuildTimeout < 0 {
		return fmt.Errorf("build_timeout must be non-negative, got %v", c.BuildTimeout)
	}
	if c.Vectorizer.MinN < 1 || c.Vectorizer.MaxN < c.Vectorizer.MinN {
		return fmt.Errorf("vectorizer ngram range invalid: (%d, %d)", c.Vectorizer.MinN, c.Vectorizer.MaxN)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
