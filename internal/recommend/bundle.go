// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
	"github.com/tomtom215/folio/internal/recommend/reranking"
)

// Build phase names, in execution order.
const (
	PhaseCatalog    = "catalog"
	PhaseVectorize  = "vectorize"
	PhaseSimilarity = "similarity"
	PhasePivot      = "pivot"
	PhaseNeighbors  = "neighbors"
)

// IndexBundle is one immutable generation of every derived index. It is
// never modified after Build returns and may be shared by any number of
// concurrent queries.
type IndexBundle struct {
	Catalog    *catalog.Catalog
	Ratings    *catalog.RatingTable
	Vectorizer *algorithms.Vectorizer
	Similarity *algorithms.SimilarityMatrix
	Matrix     *algorithms.UserItemMatrix
	Neighbors  *algorithms.NeighborIndex

	// documents holds the TF-IDF vector of each catalog row.
	documents []algorithms.SparseVector

	contentDepth         int
	collaborativeDefault int
	reranker             *reranking.Bayesian

	Stats   BuildStats
	BuiltAt time.Time
}

// Build constructs a bundle from books and ratings. Phases run
// sequentially; cancellation is checked between them.
//
//nolint:gocritic // hugeParam: cfg is read-only
func Build(ctx context.Context, books []catalog.Book, ratings []catalog.Rating, cfg *Config, logger zerolog.Logger) (*IndexBundle, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(books) > cfg.MaxCatalogSize {
		return nil, fmt.Errorf("%w: %d books > %d", ErrCatalogTooLarge, len(books), cfg.MaxCatalogSize)
	}

	if cfg.BuildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.BuildTimeout)
		defer cancel()
	}

	logger = logger.With().Str("component", "index_build").Logger()
	start := time.Now()
	b := &IndexBundle{
		contentDepth:         cfg.ContentDepth,
		collaborativeDefault: cfg.CollaborativeDefault,
		reranker:             reranking.NewBayesian(cfg.VolumeQuantile),
	}

	var docs []string
	var vectors []algorithms.SparseVector

	phases := []struct {
		name string
		run  func() error
	}{
		{PhaseCatalog, func() error {
			c, err := catalog.New(books)
			if err != nil {
				return err
			}
			b.Catalog = c
			b.Ratings = catalog.NewRatingTable(ratings)
			docs = make([]string, c.Len())
			for i := 0; i < c.Len(); i++ {
				docs[i] = c.At(i).Content()
			}
			return nil
		}},
		{PhaseVectorize, func() error {
			v, vecs, err := algorithms.Fit(ctx, docs, cfg.Vectorizer)
			if err != nil {
				return err
			}
			b.Vectorizer, vectors = v, vecs
			b.documents = vecs
			return nil
		}},
		{PhaseSimilarity, func() error {
			m, err := algorithms.BuildSimilarityMatrix(ctx, vectors, cfg.Workers)
			if err != nil {
				return err
			}
			b.Similarity = m
			return nil
		}},
		{PhasePivot, func() error {
			b.Matrix = algorithms.PivotRatings(b.Ratings)
			return nil
		}},
		{PhaseNeighbors, func() error {
			b.Neighbors = algorithms.NewNeighborIndex(b.Matrix)
			return nil
		}},
	}

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled before %s: %w", phase.name, err)
		}
		logger.Info().Str("phase", phase.name).Msg("index build phase started")

		phaseStart := time.Now()
		if err := phase.run(); err != nil {
			return nil, fmt.Errorf("build %s: %w", phase.name, err)
		}
		elapsed := time.Since(phaseStart)
		b.Stats.Phases = append(b.Stats.Phases, PhaseTiming{Phase: phase.name, Duration: elapsed})

		logger.Info().
			Str("phase", phase.name).
			Dur("duration", elapsed).
			Msg("index build phase complete")
	}

	b.BuiltAt = time.Now()
	b.Stats.Books = b.Catalog.Len()
	b.Stats.Ratings = b.Ratings.Len()
	b.Stats.Users = b.Matrix.Users()
	b.Stats.RatedBooks = b.Matrix.Items()
	b.Stats.VocabularySize = b.Vectorizer.VocabularySize()
	b.Stats.MatrixBytes = b.Similarity.Bytes()
	b.Stats.Duration = time.Since(start)

	logger.Info().
		Int("books", b.Stats.Books).
		Int("ratings", b.Stats.Ratings).
		Int("users", b.Stats.Users).
		Int("vocabulary", b.Stats.VocabularySize).
		Dur("duration", b.Stats.Duration).
		Msg("index build complete")

	return b, nil
}

// BuildFrom loads books and ratings from source and builds a bundle.
//
//nolint:gocritic // hugeParam: cfg is read-only
func BuildFrom(ctx context.Context, source DataSource, cfg *Config, logger zerolog.Logger) (*IndexBundle, error) {
	books, err := source.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	ratings, err := source.LoadRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	return Build(ctx, books, ratings, cfg, logger)
}
