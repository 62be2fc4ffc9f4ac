// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend implements the book recommendation engine.
//
// # Architecture
//
// Recommendations are answered from an immutable IndexBundle built once per
// generation:
//
//   - Content-based: TF-IDF cosine similarity over each book's
//     authors, title, genres and description, followed by a Bayesian
//     weighted-rating re-rank of the candidate subset
//   - Collaborative: exhaustive item k-nearest-neighbors over the
//     user × book rating matrix using cosine distance
//   - Hybrid: content candidates first, collaborative appended, deduplicated
//
// # Generations
//
// Build loads nothing itself; it receives books and ratings from a
// DataSource and produces a bundle. The Engine holds the active bundle in an
// atomic pointer. Swap installs a new generation; queries that already
// loaded the previous bundle finish against it.
//
//	engine := recommend.NewEngine(cfg, logger)
//	bundle, err := recommend.Build(ctx, books, ratings, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	engine.Swap(bundle)
//
//	resp, err := engine.Recommend(ctx, recommend.Query{BookID: 1, Method: recommend.MethodHybrid, Limit: 5})
//
// # Errors
//
// Unknown seeds produce empty results inside the recommenders. The engine
// turns an empty result into ErrNoRecommendations and a recovered panic into
// ErrInternal; callers must keep the two apart.
//
// # Thread Safety
//
// IndexBundle is read-only after Build returns. Engine is safe for
// concurrent use.
package recommend
