// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNew(t *testing.T) {
	books := []Book{
		{ID: 7, Title: "Dune"},
		{ID: 3, Title: "Foundation"},
	}

	c, err := New(books)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	row, ok := c.Row(3)
	if !ok || row != 1 {
		t.Errorf("Row(3) = %d, %v, want 1, true", row, ok)
	}
	if c.Contains(99) {
		t.Error("Contains(99) = true, want false")
	}

	// Mutating the input must not affect the catalog.
	books[0].Title = "changed"
	if got := c.At(0).Title; got != "Dune" {
		t.Errorf("At(0).Title = %q, want Dune", got)
	}

	b, ok := c.Get(7)
	if !ok || b.Title != "Dune" {
		t.Errorf("Get(7) = %+v, %v", b, ok)
	}
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]Book{{ID: 1}, {ID: 2}, {ID: 1}})
	if !errors.Is(err, ErrDuplicateBook) {
		t.Fatalf("New() error = %v, want ErrDuplicateBook", err)
	}
}

func numberedCatalog(t *testing.T, n int) *Catalog {
	t.Helper()
	books := make([]Book, n)
	for i := range books {
		books[i] = Book{ID: i + 1}
	}
	c, err := New(books)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCatalog_Page(t *testing.T) {
	c := numberedCatalog(t, 5)

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"first page", 0, 2, []int{1, 2}},
		{"middle", 2, 2, []int{3, 4}},
		{"short last page", 4, 2, []int{5}},
		{"past end", 5, 2, []int{}},
		{"zero limit", 0, 0, []int{}},
		{"negative offset", -1, 2, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := c.Page(tt.offset, tt.limit)
			got := make([]int, len(page))
			for i, b := range page {
				got[i] = b.ID
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Page(%d, %d) = %v, want %v", tt.offset, tt.limit, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Page(%d, %d) = %v, want %v", tt.offset, tt.limit, got, tt.want)
					break
				}
			}
		})
	}
}

func TestCatalog_Sample(t *testing.T) {
	c := numberedCatalog(t, 20)
	rng := rand.New(rand.NewPCG(1, 2))

	got := c.Sample(5, rng)
	if len(got) != 5 {
		t.Fatalf("len(Sample(5)) = %d, want 5", len(got))
	}
	seen := make(map[int]bool)
	for _, b := range got {
		if seen[b.ID] {
			t.Errorf("Sample returned %d twice", b.ID)
		}
		if !c.Contains(b.ID) {
			t.Errorf("Sample returned unknown id %d", b.ID)
		}
		seen[b.ID] = true
	}

	if all := c.Sample(50, nil); len(all) != 20 {
		t.Errorf("len(Sample(50)) = %d, want 20", len(all))
	}
	if none := c.Sample(0, rng); len(none) != 0 {
		t.Errorf("Sample(0) = %v, want empty", none)
	}
}

func TestBookContent(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want string
	}{
		{
			name: "raw list columns",
			book: Book{AuthorsRaw: "['Frank Herbert']", Title: "Dune", GenresRaw: "['science fiction']", Description: "Spice."},
			want: "['Frank Herbert'] Dune ['science fiction'] Spice.",
		},
		{
			name: "parsed lists only",
			book: Book{Authors: []string{"A", "B"}, Title: "T", Genres: []string{"g"}},
			want: "A B T g ",
		},
		{
			name: "all empty",
			book: Book{},
			want: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.book.Content(); got != tt.want {
				t.Errorf("Content() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRatingTable(t *testing.T) {
	in := []Rating{{UserID: 1, BookID: 2, Value: 4}, {UserID: 1, BookID: 2, Value: 5}}
	table := NewRatingTable(in)
	in[0].Value = 0

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	var sum float64
	table.Each(func(r Rating) { sum += r.Value })
	if sum != 9 {
		t.Errorf("sum of ratings = %v, want 9", sum)
	}
}
