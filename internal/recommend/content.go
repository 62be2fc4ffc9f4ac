// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"sort"

	"github.com/tomtom215/folio/internal/catalog"
)

// RecommendContent returns books similar in content to bookID, re-ranked by
// Bayesian weighted rating. At most topN candidates are considered before
// re-ranking; the re-rank drops candidates with fewer ratings than the
// subset's volume threshold. topN <= 0 selects the bundle's content depth.
// An unknown bookID yields an empty slice.
func RecommendContent(b *IndexBundle, bookID, topN int) []catalog.Book {
	seed, ok := b.Catalog.Row(bookID)
	if !ok {
		return []catalog.Book{}
	}
	if topN <= 0 {
		topN = b.contentDepth
	}

	row := b.Similarity.Row(seed)
	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return row[order[i]] > row[order[j]]
	})

	topN = min(topN, b.Catalog.Len()-1)
	candidates := make([]catalog.Book, 0, topN)
	for _, i := range order {
		if len(candidates) == topN {
			break
		}
		if i == seed {
			continue
		}
		candidates = append(candidates, *b.Catalog.At(i))
	}

	return b.reranker.Rerank(candidates)
}
