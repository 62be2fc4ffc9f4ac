// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package reranking implements post-processing of candidate lists.
//
// Rerankers operate on candidates that have already been retrieved by a
// similarity structure and reorder (and possibly filter) them:
//
//	Similarity -> Candidates -> Reranker -> Final Ranking
//
// # Bayesian Average
//
// Bayesian shrinks each candidate's average rating toward the median of the
// candidate set in proportion to how few ratings support it, and drops
// candidates whose ratings volume is below the 75th percentile of the set.
// The prior is computed from the candidate subset of each request, never
// from the whole catalog, so "not enough ratings" is judged among similar
// books only. Small candidate sets therefore give noisy priors.
package reranking
