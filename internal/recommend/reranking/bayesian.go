// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package reranking

import (
	"math"
	"sort"

	"github.com/tomtom215/folio/internal/catalog"
)

// DefaultVolumeQuantile is the ratings-count percentile used as the prior weight m.
const DefaultVolumeQuantile = 0.75

// Bayesian reranks candidates by Bayesian average rating.
//
// For a candidate with v ratings averaging R, against a prior of weight m
// (the volume quantile of ratings counts in the set) and mean C (the median
// average rating in the set):
//
//	score = v/(v+m)·R + m/(m+v)·C
//
// Only candidates with v >= m are kept.
type Bayesian struct {
	quantile float64
}

// NewBayesian creates a Bayesian reranker. A quantile outside (0, 1] falls
// back to DefaultVolumeQuantile.
func NewBayesian(quantile float64) *Bayesian {
	if quantile <= 0 || quantile > 1 {
		quantile = DefaultVolumeQuantile
	}
	return &Bayesian{quantile: quantile}
}

// Name returns the reranker identifier.
func (b *Bayesian) Name() string {
	return "bayesian"
}

// Scored pairs a candidate with its weighted score.
type Scored struct {
	Book  catalog.Book
	Score float64
}

// Prior returns m and C for a candidate set.
func (b *Bayesian) Prior(candidates []catalog.Book) (m, c float64) {
	counts := make([]float64, len(candidates))
	ratings := make([]float64, len(candidates))
	for i := range candidates {
		counts[i] = float64(candidates[i].RatingsCount)
		ratings[i] = candidates[i].AverageRating
	}
	return Quantile(counts, b.quantile), Quantile(ratings, 0.5)
}

// Score filters and orders candidates by weighted score, highest first.
// Equal scores keep their candidate order.
func (b *Bayesian) Score(candidates []catalog.Book) []Scored {
	if len(candidates) == 0 {
		return []Scored{}
	}
	m, c := b.Prior(candidates)

	out := make([]Scored, 0, len(candidates))
	for i := range candidates {
		v := float64(candidates[i].RatingsCount)
		if v < m {
			continue
		}
		out = append(out, Scored{
			Book:  candidates[i],
			Score: WeightedRating(v, candidates[i].AverageRating, m, c),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Rerank returns the kept candidates in score order.
func (b *Bayesian) Rerank(candidates []catalog.Book) []catalog.Book {
	scored := b.Score(candidates)
	out := make([]catalog.Book, len(scored))
	for i := range scored {
		out[i] = scored[i].Book
	}
	return out
}

// WeightedRating returns the Bayesian average of rating r over v votes with
// prior mean c of weight m. With no votes and no prior weight it returns c.
func WeightedRating(v, r, m, c float64) float64 {
	if v+m == 0 {
		return c
	}
	return v/(v+m)*r + m/(m+v)*c
}

// Quantile returns the q-quantile of values using linear interpolation
// between the closest ranks. It returns 0 for an empty input and does not
// modify values.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := math.Floor(pos)
	hi := math.Ceil(pos)
	if lo == hi {
		return sorted[int(lo)]
	}
	frac := pos - lo
	return sorted[int(lo)] + frac*(sorted[int(hi)]-sorted[int(lo)])
}
