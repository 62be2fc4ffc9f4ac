// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package algorithms implements the similarity structures the recommender
// queries.
//
// # Structures
//
// Content:
//   - Vectorizer: TF-IDF vector-space model over unigrams and bigrams with
//     English stop words removed and no minimum document frequency.
//   - SimilarityMatrix: dense N×N cosine similarity between catalog vectors.
//
// Collaborative:
//   - UserItemMatrix: sparse user × book rating matrix pivoted from the rating
//     table (last write wins, missing cells read as 0).
//   - NeighborIndex: exhaustive cosine nearest-neighbor search over the
//     book columns of the matrix, capped at MaxNeighbors results.
//
// # Scaling
//
// The similarity matrix costs O(N²) time and memory: 8·N² bytes, about 3.2 GB
// for 20,000 books. Callers bound N before building (see recommend.Config).
//
// # Thread Safety
//
// Every structure is immutable once built and safe for concurrent readers
// without locking.
package algorithms
