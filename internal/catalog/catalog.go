// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDuplicateBook is returned when two catalog rows share a book_id.
var ErrDuplicateBook = errors.New("duplicate book_id")

// Catalog is an immutable, ordered table of books.
// Row order is the source order and is the tie-break order for rankings.
type Catalog struct {
	books []Book
	index map[int]int
}

// New builds a catalog from rows in source order. The slice is copied.
func New(books []Book) (*Catalog, error) {
	c := &Catalog{
		books: make([]Book, len(books)),
		index: make(map[int]int, len(books)),
	}
	copy(c.books, books)
	for i := range c.books {
		id := c.books[i].ID
		if prev, ok := c.index[id]; ok {
			return nil, fmt.Errorf("%w: %d at rows %d and %d", ErrDuplicateBook, id, prev, i)
		}
		c.index[id] = i
	}
	return c, nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

// At returns the book at row i. It panics if i is out of range.
func (c *Catalog) At(i int) *Book {
	return &c.books[i]
}

// Row returns the row index of a book id.
func (c *Catalog) Row(id int) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Get returns a copy of the book with the given id.
func (c *Catalog) Get(id int) (Book, bool) {
	i, ok := c.index[id]
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// Page returns copies of up to limit rows starting at offset, in order.
func (c *Catalog) Page(offset, limit int) []Book {
	if offset < 0 || limit <= 0 || offset >= len(c.books) {
		return []Book{}
	}
	end := min(offset+limit, len(c.books))
	out := make([]Book, end-offset)
	copy(out, c.books[offset:end])
	return out
}

// Sample returns n distinct books chosen uniformly at random, or every book
// in random order when n exceeds the catalog. A nil rng uses the global
// source.
func (c *Catalog) Sample(n int, rng *rand.Rand) []Book {
	n = min(n, len(c.books))
	if n <= 0 {
		return []Book{}
	}
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	rows := make([]int, len(c.books))
	for i := range rows {
		rows[i] = i
	}
	out := make([]Book, n)
	for i := 0; i < n; i++ {
		j := i + intN(len(rows)-i)
		rows[i], rows[j] = rows[j], rows[i]
		out[i] = c.books[rows[i]]
	}
	return out
}

// RatingTable is an immutable list of ratings in source order.
// Duplicate (user, book) pairs are kept; consumers decide precedence.
type RatingTable struct {
	ratings []Rating
}

// NewRatingTable copies ratings into a new table.
func NewRatingTable(ratings []Rating) *RatingTable {
	t := &RatingTable{ratings: make([]Rating, len(ratings))}
	copy(t.ratings, ratings)
	return t
}

// Len returns the number of ratings.
func (t *RatingTable) Len() int {
	return len(t.ratings)
}

// Each calls fn for every rating in source order.
func (t *RatingTable) Each(fn func(r Rating)) {
	for _, r := range t.ratings {
		fn(r)
	}
}
