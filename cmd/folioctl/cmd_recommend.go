// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/client"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Fetch recommendations for a book",
		Long: `Query a running server for books similar to --book-id.

Examples:
  folioctl recommend --book-id 1
  folioctl recommend --book-id 1 --method Hybrid --limit 10 --server http://folio:5000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, _ := cmd.Flags().GetInt("book-id")
			method, _ := cmd.Flags().GetString("method")
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOut, _ := cmd.Flags().GetBool("json")

			c, err := newClient(cmd)
			if err != nil {
				return err
			}

			ids, err := c.Recommend(cmd.Context(), client.RecommendRequest{
				BookID: bookID,
				Method: method,
				Limit:  limit,
			})
			if errors.Is(err, client.ErrNoRecommendations) {
				ids = []int{}
			} else if err != nil {
				return fmt.Errorf("recommend failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), ids)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recommendations found")
				return nil
			}
			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = strconv.Itoa(id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "\n"))
			return nil
		},
	}

	cmd.Flags().Int("book-id", 0, "Seed book id (required)")
	cmd.Flags().String("method", "", "Content-Based, Collaborative or Hybrid")
	cmd.Flags().Int("limit", 0, "Number of results (default 10)")
	_ = cmd.MarkFlagRequired("book-id")

	return cmd
}
