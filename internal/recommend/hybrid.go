// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import "github.com/tomtom215/folio/internal/catalog"

// RecommendHybrid merges content results (depth ContentDepth) with
// collaborative results (depth topN). Content ids come first; the first
// occurrence of an id wins and the list is cut to topN. topN <= 0 selects
// the bundle's collaborative default.
func RecommendHybrid(b *IndexBundle, bookID, topN int) []int {
	if topN <= 0 {
		topN = b.collaborativeDefault
	}
	content := RecommendContent(b, bookID, b.contentDepth)
	collab := RecommendCollaborative(b, bookID, topN)

	seen := make(map[int]struct{}, len(content)+len(collab))
	out := make([]int, 0, topN)
	add := func(id int) {
		if len(out) == topN {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for i := range content {
		add(content[i].ID)
	}
	for i := range collab {
		add(collab[i].ID)
	}
	return out
}

// ids extracts book ids in order.
func ids(books []catalog.Book) []int {
	out := make([]int, len(books))
	for i := range books {
		out[i] = books[i].ID
	}
	return out
}
