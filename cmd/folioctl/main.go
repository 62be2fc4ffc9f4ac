// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Command folioctl is the operator CLI for Folio: it generates SQL seed
// files from the catalog CSV and queries or controls a running server.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/client"
	"github.com/tomtom215/folio/internal/logging"
)

var version = "0.1.0-dev"

const defaultServer = "http://127.0.0.1:5000"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folioctl",
		Short: "Folio operator CLI",
		Long: `folioctl manages a Folio book recommendation service.

It renders the books CSV as SQL seed files and talks to a running
server to fetch recommendations and control the recommendation index.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Init(logging.Config{Level: level, Format: "console", Output: cmd.ErrOrStderr()})
		},
	}

	server := os.Getenv("FOLIO_SERVER")
	if server == "" {
		server = defaultServer
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("server", server, "Folio server URL (env FOLIO_SERVER)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().String("token", os.Getenv("FOLIO_TOKEN"), "Bearer token for admin endpoints (env FOLIO_TOKEN)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSQLCmd(),
		newRecommendCmd(),
		newIndexCmd(),
		newBooksCmd(),
		newTokenCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "folioctl version %s\n", version)
			return nil
		},
	}
}

// newClient builds an API client from the persistent flags.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	server, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	token, _ := cmd.Flags().GetString("token")

	cfg := client.DefaultConfig(server)
	cfg.Timeout = timeout
	cfg.Token = token
	c, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
