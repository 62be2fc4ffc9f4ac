// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/folio/internal/catalog"
)

func TestRecommendContent_SharedVocabularyRanksFirst(t *testing.T) {
	books := []catalog.Book{
		book(1, "Dune", []string{"Frank Herbert"}, []string{"science fiction"}, "Desert planet and a galactic empire.", 4.0, 100),
		book(2, "Foundation", []string{"Isaac Asimov"}, []string{"science fiction"}, "The fall of a galactic empire.", 4.0, 100),
		book(3, "Cooking 101", []string{"Julia Chef"}, []string{"cooking"}, "Simple recipes.", 4.0, 100),
	}
	b := buildBundle(t, books, nil)

	got := ids(RecommendContent(b, 1, 50))
	want := []int{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendContent(1) = %v, want %v", got, want)
	}
}

func TestRecommendContent_UnknownBook(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	for _, id := range []int{0, -1, 42, 1000} {
		if got := RecommendContent(b, id, 50); len(got) != 0 {
			t.Errorf("RecommendContent(%d) = %v, want empty", id, ids(got))
		}
	}
}

func TestRecommendContent_Bounds(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())
	n := b.Catalog.Len()

	tests := []struct {
		name string
		topN int
		max  int
	}{
		{"default depth", 0, n - 1},
		{"larger than catalog", 50, n - 1},
		{"small", 2, 2},
		{"one", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < n; i++ {
				seed := b.Catalog.At(i).ID
				got := ids(RecommendContent(b, seed, tt.topN))
				if len(got) > tt.max {
					t.Errorf("seed %d: len = %d, want <= %d", seed, len(got), tt.max)
				}
				if containsID(got, seed) {
					t.Errorf("seed %d: result %v contains seed", seed, got)
				}
			}
		})
	}
}

func TestRecommendContent_BayesianFilter(t *testing.T) {
	books := []catalog.Book{
		book(1, "Seed", nil, []string{"fantasy"}, "dragons and wizards", 4.0, 10),
		book(2, "Popular", nil, []string{"fantasy"}, "dragons and wizards", 3.5, 1000),
		book(3, "Obscure", nil, []string{"fantasy"}, "dragons and wizards", 5.0, 1),
		book(4, "Solid", nil, []string{"fantasy"}, "dragons and wizards", 4.5, 900),
		book(5, "Tiny", nil, []string{"fantasy"}, "dragons and wizards", 4.9, 2),
	}
	b := buildBundle(t, books, nil)

	got := ids(RecommendContent(b, 1, 50))

	// m is the 0.75 quantile of {1000, 1, 900, 2} = 925, so only book 2 survives.
	want := []int{2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendContent(1) = %v, want %v", got, want)
	}
}

func TestRecommendContent_DuplicateContentExcludesSeedOnly(t *testing.T) {
	books := []catalog.Book{
		book(1, "Twin", nil, nil, "identical text", 4.0, 10),
		book(2, "Twin", nil, nil, "identical text", 4.0, 10),
		book(3, "Other", nil, nil, "unrelated words", 4.0, 10),
	}
	b := buildBundle(t, books, nil)

	got := ids(RecommendContent(b, 2, 50))
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendContent(2) = %v, want %v", got, want)
	}
}

func TestRecommendContent_Idempotent(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	first := ids(RecommendContent(b, 1, 50))
	for i := 0; i < 20; i++ {
		if got := ids(RecommendContent(b, 1, 50)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %v, want %v", i, got, first)
		}
	}
}
