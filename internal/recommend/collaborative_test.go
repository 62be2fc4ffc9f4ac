// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend/algorithms"
)

func columnCosine(m *algorithms.UserItemMatrix, a, b int) float64 {
	va, vb := m.ItemVector(a), m.ItemVector(b)
	values := make(map[int]float64, va.Len())
	for i, idx := range va.Indices {
		values[idx] = va.Values[i]
	}
	var dot float64
	for i, idx := range vb.Indices {
		dot += values[idx] * vb.Values[i]
	}
	na, nb := va.Norm(), vb.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func TestRecommendCollaborative_SimilarAudienceFirst(t *testing.T) {
	books := []catalog.Book{
		book(10, "A", nil, nil, "", 4, 10),
		book(11, "B", nil, nil, "", 4, 10),
		book(12, "C", nil, nil, "", 4, 10),
		book(99, "Z", nil, nil, "", 4, 10),
	}
	ratings := []catalog.Rating{
		{UserID: 1, BookID: 10, Value: 5}, {UserID: 1, BookID: 11, Value: 5}, {UserID: 1, BookID: 12, Value: 4},
		{UserID: 2, BookID: 10, Value: 4}, {UserID: 2, BookID: 11, Value: 4}, {UserID: 2, BookID: 12, Value: 5},
		{UserID: 3, BookID: 10, Value: 5}, {UserID: 3, BookID: 11, Value: 4}, {UserID: 3, BookID: 12, Value: 5},
		{UserID: 4, BookID: 99, Value: 3},
		{UserID: 5, BookID: 99, Value: 2},
	}
	b := buildBundle(t, books, ratings)

	got := ids(RecommendCollaborative(b, 10, 10))
	want := []int{11, 12, 99}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendCollaborative(10) = %v, want %v", got, want)
	}
}

func TestRecommendCollaborative_NonIncreasingSimilarity(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	for _, seed := range []int{1, 2, 3, 4, 5} {
		seedCol, ok := b.Matrix.Column(seed)
		if !ok {
			t.Fatalf("book %d has no column", seed)
		}
		got := ids(RecommendCollaborative(b, seed, 10))
		prev := math.Inf(1)
		for _, id := range got {
			col, _ := b.Matrix.Column(id)
			sim := columnCosine(b.Matrix, seedCol, col)
			if sim > prev+1e-12 {
				t.Errorf("seed %d: %v not ordered by similarity", seed, got)
			}
			prev = sim
		}
		if containsID(got, seed) {
			t.Errorf("seed %d: result %v contains seed", seed, got)
		}
	}
}

func TestRecommendCollaborative_UnratedBook(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	if got := RecommendCollaborative(b, 6, 10); len(got) != 0 {
		t.Errorf("RecommendCollaborative(6) = %v, want empty", ids(got))
	}
	if got := RecommendCollaborative(b, 404, 10); len(got) != 0 {
		t.Errorf("RecommendCollaborative(404) = %v, want empty", ids(got))
	}
}

func TestRecommendCollaborative_SkipsBooksOutsideCatalog(t *testing.T) {
	books := []catalog.Book{
		book(1, "A", nil, nil, "", 4, 10),
		book(2, "B", nil, nil, "", 4, 10),
	}
	ratings := []catalog.Rating{
		{UserID: 1, BookID: 1, Value: 5}, {UserID: 1, BookID: 2, Value: 4}, {UserID: 1, BookID: 3, Value: 5},
		{UserID: 2, BookID: 1, Value: 4}, {UserID: 2, BookID: 3, Value: 4},
	}
	b := buildBundle(t, books, ratings)

	got := ids(RecommendCollaborative(b, 1, 10))
	want := []int{2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecommendCollaborative(1) = %v, want %v", got, want)
	}
}

func TestRecommendCollaborative_NeighborhoodCap(t *testing.T) {
	books := make([]catalog.Book, 0, 40)
	ratings := make([]catalog.Rating, 0, 80)
	for id := 1; id <= 40; id++ {
		books = append(books, book(id, "Book", nil, nil, "", 4, 10))
		ratings = append(ratings,
			catalog.Rating{UserID: 1, BookID: id, Value: 5},
			catalog.Rating{UserID: 2, BookID: id, Value: float64(id%5 + 1)},
		)
	}
	b := buildBundle(t, books, ratings)

	got := RecommendCollaborative(b, 1, 100)
	if len(got) != algorithms.MaxNeighbors-1 {
		t.Errorf("len = %d, want %d", len(got), algorithms.MaxNeighbors-1)
	}
}
