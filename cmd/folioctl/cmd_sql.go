// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
)

func newSQLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Generate SQL INSERT files from the books CSV",
		Long: `Render the books CSV as bulk INSERT statements for the Book,
BookAuthor and BookGenre tables.

Book rows are split into book_inserts_chunk_<i>.sql files; authors and
genres go to author_inserts.sql and genre_inserts.sql.

Examples:
  folioctl sql --books books.csv --out ./seed
  folioctl sql --books books.csv --out ./seed --chunk-size 1000 --rows 10000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			booksPath, _ := cmd.Flags().GetString("books")
			outDir, _ := cmd.Flags().GetString("out")
			chunkSize, _ := cmd.Flags().GetInt("chunk-size")
			rows, _ := cmd.Flags().GetInt("rows")
			jsonOut, _ := cmd.Flags().GetBool("json")

			books, err := loadBooks(cmd.Context(), booksPath)
			if err != nil {
				return err
			}
			if rows > 0 && rows < len(books) {
				books = books[:rows]
			}

			files, err := writeSQLFiles(outDir, catalog.ExportSQL(books, chunkSize))
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"books": len(books),
					"files": files,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d books to %d files in %s\n", len(books), len(files), outDir)
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().String("books", "books.csv", "Path to the books CSV")
	cmd.Flags().String("out", ".", "Output directory")
	cmd.Flags().Int("chunk-size", catalog.DefaultSQLChunkSize, "Books per INSERT statement")
	cmd.Flags().Int("rows", 0, "Only export the first N books (0 exports all)")

	return cmd
}

// loadBooks reads the catalog through the same DuckDB loader the server uses.
func loadBooks(ctx context.Context, path string) ([]catalog.Book, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.New(&config.DataConfig{BooksPath: path})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()

	books, err := database.NewCSVSource(db).LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	logging.Debug().Int("books", len(books)).Str("path", path).Msg("Catalog loaded")
	return books, nil
}

// writeSQLFiles writes export into dir and returns the file names written.
func writeSQLFiles(dir string, export *catalog.SQLExport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []string
	write := func(name, content string) error {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0o644); err != nil { //nolint:gosec // seed files are meant to be readable
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		files = append(files, name)
		return nil
	}

	for i, chunk := range export.BookChunks {
		if err := write(fmt.Sprintf("book_inserts_chunk_%d.sql", i+1), chunk); err != nil {
			return nil, err
		}
	}
	if export.Authors != "" {
		if err := write("author_inserts.sql", export.Authors); err != nil {
			return nil, err
		}
	}
	if export.Genres != "" {
		if err := write("genre_inserts.sql", export.Genres); err != nil {
			return nil, err
		}
	}
	return files, nil
}
