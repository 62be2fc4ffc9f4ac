// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSQLChunkSize is the number of books per INSERT statement.
const DefaultSQLChunkSize = 5000

const (
	bookInsertPrefix   = `INSERT INTO "Book" ("id", "title", "average_rating", "ratings_count", "cover_image", "page_count", "description", "normalized_title", "publication_year") VALUES `
	authorInsertPrefix = `INSERT INTO "BookAuthor" ("book_id", "name") VALUES `
	genreInsertPrefix  = `INSERT INTO "BookGenre" ("book_id", "genre") VALUES `
)

var (
	nonPrintableASCII = regexp.MustCompile(`[^\x20-\x7E]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// SQLExport is the catalog rendered as bulk INSERT statements.
type SQLExport struct {
	// BookChunks holds one INSERT statement per chunk of books.
	BookChunks []string
	// Authors and Genres are single INSERT statements, empty when there are no rows.
	Authors string
	Genres  string
}

// EscapeSQL doubles single quotes for use inside a SQL string literal.
func EscapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// CleanDescription strips characters outside printable ASCII, escapes
// backslashes and quotes, and collapses whitespace runs.
func CleanDescription(s string) string {
	s = nonPrintableASCII.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ExportSQL renders books as INSERT statements. chunkSize <= 0 uses
// DefaultSQLChunkSize. Authors and genres are taken from the parsed lists.
func ExportSQL(books []Book, chunkSize int) *SQLExport {
	if chunkSize <= 0 {
		chunkSize = DefaultSQLChunkSize
	}

	out := &SQLExport{}
	for start := 0; start < len(books); start += chunkSize {
		end := min(start+chunkSize, len(books))
		values := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			values = append(values, bookValues(&books[i]))
		}
		out.BookChunks = append(out.BookChunks, bookInsertPrefix+strings.Join(values, ", ")+";")
	}

	var authors, genres []string
	for i := range books {
		b := &books[i]
		for _, a := range b.Authors {
			authors = append(authors, fmt.Sprintf("(%d, '%s')", b.ID, EscapeSQL(a)))
		}
		for _, g := range b.Genres {
			genres = append(genres, fmt.Sprintf("(%d, '%s')", b.ID, EscapeSQL(g)))
		}
	}
	if len(authors) > 0 {
		out.Authors = authorInsertPrefix + strings.Join(authors, ", ") + ";"
	}
	if len(genres) > 0 {
		out.Genres = genreInsertPrefix + strings.Join(genres, ", ") + ";"
	}
	return out
}

func bookValues(b *Book) string {
	return fmt.Sprintf("(%d, '%s', %s, %d, '%s', %d, '%s', '%s', '%s')",
		b.ID,
		EscapeSQL(b.Title),
		formatFloat(b.AverageRating),
		b.RatingsCount,
		EscapeSQL(b.ImageURL),
		b.Pages,
		CleanDescription(b.Description),
		EscapeSQL(b.NormalizedTitle),
		b.PublicationYear,
	)
}

// formatFloat always keeps a decimal point so 4 renders as 4.0.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
