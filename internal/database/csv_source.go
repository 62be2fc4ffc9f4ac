// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

// csvOptions pins the dialect so list literals like ['a'] are not sniffed
// as quoted fields.
const csvOptions = `header = true, all_varchar = true, delim = ',', quote = '"', escape = '"'`

// Required and optional catalog columns. Optional columns read as empty.
var (
	bookRequiredColumns = []string{"book_id", "title"}
	bookOptionalColumns = []string{
		"authors", "genres", "description", "average_rating", "ratings_count",
		"original_publication_year", "image_url", "pages", "normalized_title",
	}
	ratingRequiredColumns = []string{"user_id", "book_id", "rating"}
)

// CSVSource loads the catalog and rating snapshots from CSV files through
// DuckDB's read_csv. It implements recommend.DataSource.
type CSVSource struct {
	db          *DB
	booksPath   string
	ratingsPath string
}

// NewCSVSource creates a data source over the configured CSV paths.
func NewCSVSource(db *DB) *CSVSource {
	return &CSVSource{
		db:          db,
		booksPath:   db.cfg.BooksPath,
		ratingsPath: db.cfg.RatingsPath,
	}
}

// LoadBooks implements recommend.DataSource.
// Rows without a numeric book_id are skipped. Unparsable authors or genres
// become empty lists.
func (s *CSVSource) LoadBooks(ctx context.Context) ([]catalog.Book, error) {
	columns, err := s.db.csvColumns(ctx, s.booksPath)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(columns, bookRequiredColumns); err != nil {
		return nil, fmt.Errorf("books %s: %w", s.booksPath, err)
	}

	col := func(name string) string {
		if columns[name] {
			return fmt.Sprintf("COALESCE(%s, '')", quoteIdent(name))
		}
		return "''"
	}

	query := fmt.Sprintf(`
		SELECT
			TRY_CAST(TRY_CAST(book_id AS DOUBLE) AS BIGINT) AS id,
			%s AS title,
			%s AS authors,
			%s AS genres,
			%s AS description,
			COALESCE(TRY_CAST(%s AS DOUBLE), 0) AS average_rating,
			COALESCE(TRY_CAST(TRY_CAST(%s AS DOUBLE) AS BIGINT), 0) AS ratings_count,
			%s AS publication_year,
			%s AS image_url,
			COALESCE(TRY_CAST(TRY_CAST(%s AS DOUBLE) AS BIGINT), 0) AS pages,
			%s AS normalized_title
		FROM read_csv(%s, %s)`,
		col("title"), col("authors"), col("genres"), col("description"),
		nullable(columns, "average_rating"), nullable(columns, "ratings_count"),
		col("original_publication_year"), col("image_url"),
		nullable(columns, "pages"), col("normalized_title"),
		quoteLiteral(s.booksPath), csvOptions,
	)

	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer closeRows(rows)

	var books []catalog.Book
	skipped := 0
	for rows.Next() {
		var (
			id sql.NullInt64
			b  catalog.Book
		)
		if err := rows.Scan(&id, &b.Title, &b.AuthorsRaw, &b.GenresRaw, &b.Description,
			&b.AverageRating, &b.RatingsCount, &b.PublicationYear, &b.ImageURL,
			&b.Pages, &b.NormalizedTitle); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		if !id.Valid {
			skipped++
			continue
		}
		b.ID = int(id.Int64)
		b.Authors = catalog.ParseList(b.AuthorsRaw)
		b.Genres = catalog.ParseList(b.GenresRaw)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	if skipped > 0 {
		logging.Warn().Int("skipped", skipped).Str("path", s.booksPath).Msg("Skipped catalog rows without a numeric book_id")
	}
	return books, nil
}

// LoadRatings implements recommend.DataSource.
// Rows with a non-numeric user_id, book_id or rating are skipped.
func (s *CSVSource) LoadRatings(ctx context.Context) ([]catalog.Rating, error) {
	columns, err := s.db.csvColumns(ctx, s.ratingsPath)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(columns, ratingRequiredColumns); err != nil {
		return nil, fmt.Errorf("ratings %s: %w", s.ratingsPath, err)
	}

	query := fmt.Sprintf(`
		SELECT
			TRY_CAST(TRY_CAST(user_id AS DOUBLE) AS BIGINT),
			TRY_CAST(TRY_CAST(book_id AS DOUBLE) AS BIGINT),
			TRY_CAST(rating AS DOUBLE)
		FROM read_csv(%s, %s)`,
		quoteLiteral(s.ratingsPath), csvOptions)

	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer closeRows(rows)

	var ratings []catalog.Rating
	skipped := 0
	for rows.Next() {
		var user, book sql.NullInt64
		var value sql.NullFloat64
		if err := rows.Scan(&user, &book, &value); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if !user.Valid || !book.Valid || !value.Valid {
			skipped++
			continue
		}
		ratings = append(ratings, catalog.Rating{
			UserID: int(user.Int64),
			BookID: int(book.Int64),
			Value:  value.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	if skipped > 0 {
		logging.Warn().Int("skipped", skipped).Str("path", s.ratingsPath).Msg("Skipped malformed rating rows")
	}
	return ratings, nil
}

// csvColumns returns the header column names of a CSV file.
func (db *DB) csvColumns(ctx context.Context, path string) (map[string]bool, error) {
	query := fmt.Sprintf("DESCRIBE SELECT * FROM read_csv(%s, %s)", quoteLiteral(path), csvOptions)
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", path, err)
	}
	defer closeRows(rows)

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("describe columns: %w", err)
	}

	columns := make(map[string]bool)
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		// column_name is the first DESCRIBE column
		if name, ok := vals[0].(string); ok {
			columns[strings.ToLower(name)] = true
		}
	}
	return columns, rows.Err()
}

func requireColumns(have map[string]bool, required []string) error {
	for _, name := range required {
		if !have[name] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return nil
}

// nullable returns the column reference, or NULL when the column is absent.
func nullable(have map[string]bool, name string) string {
	if have[name] {
		return quoteIdent(name)
	}
	return "NULL"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Debug().Err(err).Msg("Error closing rows")
	}
}

// Ensure interface compliance.
var _ recommend.DataSource = (*CSVSource)(nil)
