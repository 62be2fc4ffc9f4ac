// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/folio/internal/catalog"
)

// SearchTitles returns the books whose title contains query, ignoring case.
// Matches are ordered by the cosine of the query's TF-IDF vector against
// each book's content vector, ties in catalog order. A blank query matches
// nothing.
func SearchTitles(b *IndexBundle, query string) []catalog.Book {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || b.Catalog == nil {
		return []catalog.Book{}
	}

	type match struct {
		row   int
		score float64
	}
	var matches []match
	for i := 0; i < b.Catalog.Len(); i++ {
		if strings.Contains(strings.ToLower(b.Catalog.At(i).Title), needle) {
			matches = append(matches, match{row: i})
		}
	}

	if b.Vectorizer != nil && len(b.documents) == b.Catalog.Len() {
		qv := b.Vectorizer.Transform(query)
		for i := range matches {
			matches[i].score = qv.Dot(b.documents[matches[i].row])
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].score > matches[j].score
		})
	}

	out := make([]catalog.Book, len(matches))
	for i, m := range matches {
		out[i] = *b.Catalog.At(m.row)
	}
	return out
}
