// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for admin endpoints",
		Long: `Sign an HS256 token with the server's JWT secret. The server's
authorization policy decides what the roles allow; the default policy
grants index rebuilds to the admin role.

Examples:
  JWT_SECRET=... folioctl token --subject ops --role admin
  folioctl index rebuild --token "$(JWT_SECRET=... folioctl token --subject ops)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			issuer, _ := cmd.Flags().GetString("issuer")
			subject, _ := cmd.Flags().GetString("subject")
			roles, _ := cmd.Flags().GetStringSlice("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if secret == "" {
				return errors.New("secret is required (--secret or JWT_SECRET)")
			}
			manager, err := auth.NewJWTManager(secret, issuer, ttl)
			if err != nil {
				return fmt.Errorf("failed to create token signer: %w", err)
			}
			token, err := manager.GenerateToken(subject, roles)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"token":      token,
					"subject":    subject,
					"roles":      roles,
					"expires_in": ttl.String(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("secret", os.Getenv("JWT_SECRET"), "HMAC secret shared with the server (env JWT_SECRET)")
	cmd.Flags().String("issuer", "folio", "Token issuer; must match the server's JWT_ISSUER")
	cmd.Flags().String("subject", "folioctl", "Token subject")
	cmd.Flags().StringSlice("role", []string{"admin"}, "Role claim (repeatable)")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	return cmd
}
