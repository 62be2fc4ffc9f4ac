// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// IndexEngine builds and installs index generations.
type IndexEngine interface {
	Rebuild(ctx context.Context, source recommend.DataSource) (*recommend.IndexBundle, uint64, error)
	Ready() bool
}

// RebuildListener delivers rebuild requests until its context ends.
type RebuildListener interface {
	Listen(ctx context.Context, fn events.Handler) (<-chan struct{}, error)
}

// ManifestSaver records installed generations.
type ManifestSaver interface {
	Save(ctx context.Context, m *storage.Manifest) error
}

var (
	_ IndexEngine     = (*recommend.Engine)(nil)
	_ RebuildListener = (*events.Bus)(nil)
	_ ManifestSaver   = (*storage.BadgerStore)(nil)
)

// IndexServiceConfig configures the index service.
type IndexServiceConfig struct {
	// RefreshInterval rebuilds on a timer; zero disables refresh.
	RefreshInterval time.Duration
}

// IndexService owns the index lifecycle: the startup build, periodic
// refreshes and rebuilds requested over the event bus.
type IndexService struct {
	engine    IndexEngine
	source    recommend.DataSource
	listener  RebuildListener
	manifests ManifestSaver
	config    IndexServiceConfig
	logger    zerolog.Logger
}

// NewIndexService creates the service. listener and manifests may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIndexService(engine IndexEngine, source recommend.DataSource, listener RebuildListener, manifests ManifestSaver, cfg IndexServiceConfig, logger zerolog.Logger) *IndexService {
	return &IndexService{
		engine:    engine,
		source:    source,
		listener:  listener,
		manifests: manifests,
		config:    cfg,
		logger:    logger.With().Str("service", "index").Logger(),
	}
}

// Serve implements suture.Service. A failed startup build is returned so
// the supervisor retries it with backoff; later failures keep the active
// generation and are only logged.
func (s *IndexService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("refresh_interval", s.config.RefreshInterval).
		Bool("rebuild_events", s.listener != nil).
		Msg("index service starting")

	if !s.engine.Ready() {
		if err := s.rebuild(ctx, storage.TriggerStartup, ""); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("initial index build: %w", err)
		}
	}

	var consumerDone <-chan struct{}
	if s.listener != nil {
		done, err := s.listener.Listen(ctx, s.handleRebuildRequest)
		if err != nil {
			return fmt.Errorf("listen for rebuild requests: %w", err)
		}
		consumerDone = done
	}

	var tick <-chan time.Time
	if s.config.RefreshInterval > 0 {
		ticker := time.NewTicker(s.config.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("index service shutting down")
			return ctx.Err()

		case <-tick:
			s.logger.Debug().Msg("scheduled index refresh triggered")
			_ = s.rebuild(ctx, storage.TriggerRefresh, "")

		case <-consumerDone:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.New("rebuild request consumer stopped")
		}
	}
}

func (s *IndexService) handleRebuildRequest(ctx context.Context, req events.RebuildRequest) error {
	s.logger.Info().
		Str("event_id", req.ID).
		Str("request_id", req.RequestID).
		Str("reason", req.Reason).
		Msg("rebuild requested")
	return s.rebuild(ctx, storage.TriggerRequest, req.RequestID)
}

// rebuild builds and installs a generation, then records metrics and a
// manifest.
func (s *IndexService) rebuild(ctx context.Context, trigger storage.Trigger, requestID string) error {
	start := time.Now()
	bundle, generation, err := s.engine.Rebuild(ctx, s.source)
	switch {
	case errors.Is(err, recommend.ErrRebuildInProgress):
		metrics.RecordIndexBuildFailure(string(trigger), "in_progress")
		s.logger.Info().Str("trigger", string(trigger)).Msg("rebuild skipped, another build is running")
		return err
	case err != nil:
		metrics.RecordIndexBuildFailure(string(trigger), "error")
		s.logger.Error().Err(err).Str("trigger", string(trigger)).Msg("index build failed")
		return err
	}

	metrics.RecordIndexBuild(string(trigger), snapshot(bundle, generation))

	if s.manifests != nil {
		manifest := storage.NewManifest(bundle, generation, trigger, requestID)
		if err := s.manifests.Save(ctx, manifest); err != nil {
			s.logger.Warn().Err(err).Uint64("generation", generation).Msg("failed to save build manifest")
		}
	}

	s.logger.Info().
		Str("trigger", string(trigger)).
		Uint64("generation", generation).
		Int("books", bundle.Stats.Books).
		Int("ratings", bundle.Stats.Ratings).
		Dur("duration", time.Since(start)).
		Msg("index generation installed")
	return nil
}

func snapshot(b *recommend.IndexBundle, generation uint64) metrics.IndexSnapshot {
	phases := make([]metrics.PhaseDuration, len(b.Stats.Phases))
	for i, p := range b.Stats.Phases {
		phases[i] = metrics.PhaseDuration{Phase: p.Phase, Duration: p.Duration}
	}
	return metrics.IndexSnapshot{
		Generation:  generation,
		Books:       b.Stats.Books,
		Ratings:     b.Stats.Ratings,
		Users:       b.Stats.Users,
		Vocabulary:  b.Stats.VocabularySize,
		MatrixBytes: b.Stats.MatrixBytes,
		Duration:    b.Stats.Duration,
		Phases:      phases,
	}
}

func (s *IndexService) String() string {
	return "index-service"
}
