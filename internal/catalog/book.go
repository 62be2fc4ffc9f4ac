// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import "strings"

// Book is a single catalog entry. Identity is ID.
type Book struct {
	// ID is the unique book identifier (book_id).
	ID int `json:"book_id"`

	// Title is the display title.
	Title string `json:"title"`

	// Authors is the ordered author list.
	Authors []string `json:"authors"`

	// Genres is the set of genre labels.
	Genres []string `json:"genres"`

	// Description is free text, possibly empty.
	Description string `json:"description"`

	// AverageRating is the mean rating on a 0-5 scale.
	AverageRating float64 `json:"average_rating"`

	// RatingsCount is the number of ratings behind AverageRating.
	RatingsCount int `json:"ratings_count"`

	// PublicationYear is kept as found in the source (e.g. "1965.0", "-750").
	PublicationYear string `json:"publication_year"`

	// ImageURL, Pages and NormalizedTitle are display fields carried through.
	ImageURL        string `json:"image_url,omitempty"`
	Pages           int    `json:"pages,omitempty"`
	NormalizedTitle string `json:"normalized_title,omitempty"`

	// AuthorsRaw and GenresRaw are the list-encoded source strings.
	// Content uses them verbatim when present.
	AuthorsRaw string `json:"-"`
	GenresRaw  string `json:"-"`
}

// Content returns the text the vector-space model is built from:
// authors, title, genres and description joined by single spaces.
// Missing fields contribute an empty string.
func (b *Book) Content() string {
	authors := b.AuthorsRaw
	if authors == "" && len(b.Authors) > 0 {
		authors = strings.Join(b.Authors, " ")
	}
	genres := b.GenresRaw
	if genres == "" && len(b.Genres) > 0 {
		genres = strings.Join(b.Genres, " ")
	}
	return strings.Join([]string{authors, b.Title, genres, b.Description}, " ")
}

// Rating is one (user, book, score) triple.
type Rating struct {
	UserID int     `json:"user_id"`
	BookID int     `json:"book_id"`
	Value  float64 `json:"rating"`
}
