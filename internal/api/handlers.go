// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// Recommender answers queries from the active index generation.
type Recommender interface {
	Recommend(ctx context.Context, q recommend.Query) (*recommend.Response, error)
	Status() recommend.Status
	Current() (*recommend.IndexBundle, uint64)
}

// ManifestLister reads persisted build manifests, newest first.
type ManifestLister interface {
	List(ctx context.Context, limit int) ([]*storage.Manifest, error)
	Latest(ctx context.Context) (*storage.Manifest, error)
}

// RebuildPublisher hands rebuild requests to the index service.
type RebuildPublisher interface {
	PublishRebuild(ctx context.Context, req events.RebuildRequest) error
}

var (
	_ Recommender      = (*recommend.Engine)(nil)
	_ ManifestLister   = (*storage.BadgerStore)(nil)
	_ RebuildPublisher = (*events.Bus)(nil)
)

// HandlerConfig wires a Handler. Manifests and Rebuilds are optional.
// Admin routes stay locked unless both Tokens and Policy are set.
type HandlerConfig struct {
	Engine    Recommender
	Manifests ManifestLister
	Rebuilds  RebuildPublisher
	Tokens    TokenVerifier
	Policy    Authorizer

	// MaxLimit rejects larger limit parameters; 0 leaves capping to the engine.
	MaxLimit int

	// QueryTimeout bounds a single recommendation; 0 disables it.
	QueryTimeout time.Duration

	Logger zerolog.Logger
}

// Handler serves the Folio HTTP endpoints.
type Handler struct {
	engine       Recommender
	manifests    ManifestLister
	rebuilds     RebuildPublisher
	tokens       TokenVerifier
	policy       Authorizer
	maxLimit     int
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// NewHandler creates a Handler.
//
//nolint:gocritic // hugeParam: config is read once at startup
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Engine == nil {
		return nil, errors.New("api handler requires an engine")
	}
	return &Handler{
		engine:       cfg.Engine,
		manifests:    cfg.Manifests,
		rebuilds:     cfg.Rebuilds,
		tokens:       cfg.Tokens,
		policy:       cfg.Policy,
		maxLimit:     cfg.MaxLimit,
		queryTimeout: cfg.QueryTimeout,
		logger:       cfg.Logger.With().Str("component", "api").Logger(),
	}, nil
}

// recommend runs q and records the outcome.
func (h *Handler) recommend(ctx context.Context, q recommend.Query) (*recommend.Response, error) {
	if h.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := h.engine.Recommend(ctx, q)
	if err != nil {
		metrics.RecordRecommendation(q.Method.String(), outcome(err), 0, time.Since(start))
		return nil, err
	}
	metrics.RecordRecommendation(q.Method.String(), metrics.OutcomeOK, len(resp.BookIDs), time.Since(start))
	return resp, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNoRecommendations):
		return metrics.OutcomeEmpty
	case errors.Is(err, recommend.ErrNotReady):
		return metrics.OutcomeNotReady
	case errors.Is(err, recommend.ErrInvalidLimit), errors.Is(err, recommend.ErrInvalidMethod):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
