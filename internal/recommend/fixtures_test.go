// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
)

func book(id int, title string, authors, genres []string, desc string, avg float64, count int) catalog.Book {
	return catalog.Book{
		ID:            id,
		Title:         title,
		Authors:       authors,
		Genres:        genres,
		Description:   desc,
		AverageRating: avg,
		RatingsCount:  count,
	}
}

// testBooks is a small mixed catalog: science fiction, cooking and one
// history title. Ratings counts are equal so re-ranking keeps similarity
// order among equally rated books.
func testBooks() []catalog.Book {
	return []catalog.Book{
		book(1, "Dune", []string{"Frank Herbert"}, []string{"science fiction"}, "A desert planet, spice and a galactic empire.", 4.2, 100),
		book(2, "Foundation", []string{"Isaac Asimov"}, []string{"science fiction"}, "The galactic empire falls and psychohistory predicts it.", 4.2, 100),
		book(3, "Cooking 101", []string{"Julia Chef"}, []string{"cooking"}, "Recipes for the home kitchen.", 4.2, 100),
		book(4, "Hyperion", []string{"Dan Simmons"}, []string{"science fiction"}, "Pilgrims travel to a distant planet.", 4.2, 100),
		book(5, "Baking Bread", []string{"Julia Chef"}, []string{"cooking"}, "Bread recipes for the home baker.", 4.2, 100),
		book(6, "Rome", []string{"Mary Beard"}, []string{"history"}, "The history of an ancient empire.", 4.2, 100),
	}
}

// testRatings gives books 1, 2 and 4 a shared audience, books 3 and 5
// another, and leaves book 6 unrated.
func testRatings() []catalog.Rating {
	return []catalog.Rating{
		{UserID: 1, BookID: 1, Value: 5}, {UserID: 1, BookID: 2, Value: 5}, {UserID: 1, BookID: 4, Value: 4},
		{UserID: 2, BookID: 1, Value: 4}, {UserID: 2, BookID: 2, Value: 4}, {UserID: 2, BookID: 4, Value: 5},
		{UserID: 3, BookID: 1, Value: 5}, {UserID: 3, BookID: 2, Value: 4}, {UserID: 3, BookID: 3, Value: 1},
		{UserID: 4, BookID: 3, Value: 5}, {UserID: 4, BookID: 5, Value: 5},
		{UserID: 5, BookID: 3, Value: 4}, {UserID: 5, BookID: 5, Value: 5},
	}
}

func buildBundle(t *testing.T, books []catalog.Book, ratings []catalog.Rating) *IndexBundle {
	t.Helper()
	b, err := Build(context.Background(), books, ratings, DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return b
}

// staticSource serves fixed rows.
type staticSource struct {
	books   []catalog.Book
	ratings []catalog.Rating
	err     error
	block   chan struct{}
	started chan struct{}
}

func (s *staticSource) LoadBooks(ctx context.Context) ([]catalog.Book, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.books, nil
}

func (s *staticSource) LoadRatings(ctx context.Context) ([]catalog.Rating, error) {
	return s.ratings, nil
}

var _ DataSource = (*staticSource)(nil)

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
