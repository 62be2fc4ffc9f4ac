// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import "github.com/tomtom215/folio/internal/catalog"

// RecommendCollaborative returns the catalog rows of the topN books whose
// rating columns are nearest to bookID's, nearest first. The neighbor index
// caps the request, so fewer than topN books may be returned. Neighbors
// missing from the catalog are skipped. topN <= 0 selects the bundle's
// collaborative default. A bookID with no ratings yields an empty slice.
func RecommendCollaborative(b *IndexBundle, bookID, topN int) []catalog.Book {
	col, ok := b.Matrix.Column(bookID)
	if !ok {
		return []catalog.Book{}
	}
	if topN <= 0 {
		topN = b.collaborativeDefault
	}

	neighbors := b.Neighbors.Query(col, topN+1)
	out := make([]catalog.Book, 0, len(neighbors))
	for _, n := range neighbors {
		book, ok := b.Catalog.Get(n.BookID)
		if !ok {
			continue
		}
		out = append(out, book)
	}
	return out
}
