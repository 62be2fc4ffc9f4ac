// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/client"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Search and sample the catalog",
		Long: `Look up books in the active index generation of a running server.

Examples:
  folioctl books search "lord of the rings"
  folioctl books search dune --page 2 --limit 5
  folioctl books random --count 3`,
	}

	cmd.AddCommand(
		newBooksSearchCmd(),
		newBooksRandomCmd(),
	)
	return cmd
}

func newBooksSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")
			c, err := newClient(cmd)
			if err != nil {
				return err
			}

			result, err := c.SearchBooks(cmd.Context(), strings.Join(args, " "), page, limit)
			if errors.Is(err, client.ErrNotFound) {
				result = &client.BookPage{Books: []catalog.Book{}}
			} else if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			if len(result.Books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No books found")
				return nil
			}
			writeBooks(cmd.OutOrStdout(), result.Books)
			if result.HasMore {
				fmt.Fprintf(cmd.OutOrStdout(), "(page %d of %d matches, more with --page %d)\n",
					result.Page, result.Total, result.Page+1)
			}
			return nil
		},
	}
	cmd.Flags().Int("page", 0, "Page number (default 1)")
	cmd.Flags().Int("limit", 0, "Results per page (default 10)")
	return cmd
}

func newBooksRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show random books",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			count, _ := cmd.Flags().GetInt("count")
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			books, err := c.RandomBooks(cmd.Context(), count)
			if err != nil {
				return fmt.Errorf("random books failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), books)
			}
			writeBooks(cmd.OutOrStdout(), books)
			return nil
		},
	}
	cmd.Flags().Int("count", 0, "Number of books (default 5)")
	return cmd
}

func writeBooks(w io.Writer, books []catalog.Book) {
	for i := range books {
		b := &books[i]
		fmt.Fprintf(w, "%6d  %s", b.ID, b.Title)
		if len(b.Authors) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(b.Authors, ", "))
		}
		fmt.Fprintln(w)
	}
}
