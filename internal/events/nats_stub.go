// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build !nats

package events

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadyTimeout time.Duration
}

// EmbeddedServer is a stub for non-NATS builds.
type EmbeddedServer struct{}

// NewEmbeddedServer returns ErrNATSUnavailable in non-NATS builds.
func NewEmbeddedServer(ServerConfig) (*EmbeddedServer, error) {
	return nil, ErrNATSUnavailable
}

// ClientURL returns an empty string in non-NATS builds.
func (s *EmbeddedServer) ClientURL() string { return "" }

// Running reports false in non-NATS builds.
func (s *EmbeddedServer) Running() bool { return false }

// Shutdown is a no-op in non-NATS builds.
func (s *EmbeddedServer) Shutdown(context.Context) error { return nil }

// NewNATSBus returns ErrNATSUnavailable in non-NATS builds.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewNATSBus(Config, zerolog.Logger) (*Bus, error) {
	return nil, ErrNATSUnavailable
}
