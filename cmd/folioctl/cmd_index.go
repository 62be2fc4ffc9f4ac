// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect and rebuild the recommendation index",
		Long: `Inspect the active index generation of a running server and
request rebuilds.

Examples:
  folioctl index status
  folioctl index history --limit 5
  folioctl index rebuild --reason "catalog import" --token "$FOLIO_TOKEN"`,
	}

	cmd.AddCommand(
		newIndexStatusCmd(),
		newIndexHistoryCmd(),
		newIndexRebuildCmd(),
	)
	return cmd
}

func newIndexStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active index generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			status, err := c.IndexStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("index status failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			out := cmd.OutOrStdout()
			if !status.Ready {
				fmt.Fprintln(out, "Index: not ready")
			} else {
				fmt.Fprintf(out, "Index: generation %d\n", status.Generation)
				fmt.Fprintf(out, "  Built: %s\n", status.BuiltAt.Format(time.RFC3339))
				fmt.Fprintf(out, "  Books: %d\n", status.Stats.Books)
				fmt.Fprintf(out, "  Ratings: %d\n", status.Stats.Ratings)
			}
			fmt.Fprintf(out, "  Rebuilding: %v\n", status.Rebuilding)
			if lb := status.LastBuild; lb != nil {
				fmt.Fprintf(out, "  Last build: generation %d (%s) at %s\n",
					lb.Generation, lb.Trigger, lb.BuiltAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newIndexHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent index builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			manifests, err := c.IndexHistory(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("index history failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), manifests)
			}
			if len(manifests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded")
				return nil
			}
			for _, m := range manifests {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %-8s  %s  %d books\n",
					m.Generation, m.Trigger, m.BuiltAt.Format(time.RFC3339), m.Stats.Books)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of builds to list")
	return cmd
}

func newIndexRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Request an index rebuild",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			reason, _ := cmd.Flags().GetString("reason")
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			accepted, err := c.Rebuild(cmd.Context(), reason)
			if err != nil {
				return fmt.Errorf("rebuild request failed: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), accepted)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rebuild requested (event %s)\n", accepted.EventID)
			return nil
		},
	}
	cmd.Flags().String("reason", "folioctl", "Reason recorded with the request")
	return cmd
}
