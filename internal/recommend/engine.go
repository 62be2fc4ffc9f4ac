// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// generation is an installed bundle and its sequence number.
type generation struct {
	bundle *IndexBundle
	id     uint64
}

// Engine answers queries against the active IndexBundle.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	current atomic.Pointer[generation]
	nextID  atomic.Uint64

	rebuildMu  sync.Mutex
	rebuilding atomic.Bool

	// Metrics
	requestCount atomic.Int64
	emptyCount   atomic.Int64
	errorCount   atomic.Int64
}

// Counters is a snapshot of engine request counters.
type Counters struct {
	Requests int64 `json:"requests"`
	Empty    int64 `json:"empty"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates an engine with no active generation.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Swap installs bundle as the active generation and returns its number.
// Queries already holding the previous bundle are unaffected.
func (e *Engine) Swap(bundle *IndexBundle) uint64 {
	id := e.nextID.Add(1)
	prev := e.current.Swap(&generation{bundle: bundle, id: id})

	event := e.logger.Info().
		Uint64("generation", id).
		Int("books", bundle.Stats.Books).
		Int("ratings", bundle.Stats.Ratings)
	if prev != nil {
		event = event.Uint64("previous_generation", prev.id)
	}
	event.Msg("index generation installed")

	return id
}

// Current returns the active bundle and its generation number.
// The bundle is nil before the first Swap.
func (e *Engine) Current() (*IndexBundle, uint64) {
	gen := e.current.Load()
	if gen == nil {
		return nil, 0
	}
	return gen.bundle, gen.id
}

// Ready reports whether a generation is installed.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Rebuilding reports whether a rebuild is running.
func (e *Engine) Rebuilding() bool {
	return e.rebuilding.Load()
}

// Status describes the active generation.
func (e *Engine) Status() Status {
	st := Status{Rebuilding: e.rebuilding.Load(), Requests: e.Counters()}
	if gen := e.current.Load(); gen != nil {
		st.Ready = true
		st.Generation = gen.id
		st.BuiltAt = gen.bundle.BuiltAt
		st.Stats = gen.bundle.Stats
	}
	return st
}

// Rebuild builds a new generation from source and swaps it in. A rebuild
// requested while another is running returns ErrRebuildInProgress. On
// failure the active generation is kept.
func (e *Engine) Rebuild(ctx context.Context, source DataSource) (*IndexBundle, uint64, error) {
	if !e.rebuildMu.TryLock() {
		return nil, 0, ErrRebuildInProgress
	}
	defer e.rebuildMu.Unlock()

	e.rebuilding.Store(true)
	defer e.rebuilding.Store(false)

	bundle, err := BuildFrom(ctx, source, e.config, e.logger)
	if err != nil {
		e.logger.Error().Err(err).Msg("index rebuild failed")
		return nil, 0, fmt.Errorf("rebuild index: %w", err)
	}
	return bundle, e.Swap(bundle), nil
}

// Recommend answers q from the active generation.
//
// Errors: ErrNotReady before the first generation, ErrInvalidLimit for a
// negative limit, ErrNoRecommendations for an empty result and ErrInternal
// for a fault recovered while computing the result.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, q Query) (resp *Response, err error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gen := e.current.Load()
	if gen == nil {
		return nil, ErrNotReady
	}

	limit, err := e.resolveLimit(q.Limit)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With().
		Int("book_id", q.BookID).
		Str("method", q.Method.String()).
		Uint64("generation", gen.id).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			e.errorCount.Add(1)
			logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("recommendation panicked")
			resp, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	ids, err := dispatch(gen.bundle, q.Method, q.BookID, limit)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	if len(ids) == 0 {
		e.emptyCount.Add(1)
		logger.Debug().Msg("no recommendations")
		return nil, ErrNoRecommendations
	}

	resp = &Response{
		BookIDs:    ids,
		Method:     q.Method,
		Generation: gen.id,
		Took:       time.Since(start),
	}
	logger.Debug().
		Int("returned", len(ids)).
		Dur("took", resp.Took).
		Msg("recommendation complete")
	return resp, nil
}

// Counters returns a snapshot of the request counters.
func (e *Engine) Counters() Counters {
	return Counters{
		Requests: e.requestCount.Load(),
		Empty:    e.emptyCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}

// resolveLimit applies the default and the cap.
func (e *Engine) resolveLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	case limit == 0:
		return e.config.DefaultLimit, nil
	case limit > e.config.MaxLimit:
		return e.config.MaxLimit, nil
	default:
		return limit, nil
	}
}

// dispatch runs the recommender selected by method.
func dispatch(b *IndexBundle, method Method, bookID, limit int) ([]int, error) {
	switch method {
	case MethodContent:
		return ids(RecommendContent(b, bookID, b.contentDepth)), nil
	case MethodCollaborative:
		return ids(RecommendCollaborative(b, bookID, limit)), nil
	case MethodHybrid:
		return RecommendHybrid(b, bookID, limit), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, int(method))
	}
}
