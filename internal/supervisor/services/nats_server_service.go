// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build nats

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/folio/internal/events"
)

// NATSServer is the embedded server lifecycle the service manages.
type NATSServer interface {
	Running() bool
	Shutdown(ctx context.Context) error
}

var _ NATSServer = (*events.EmbeddedServer)(nil)

// NATSServerService shuts the embedded NATS server down with the tree. The
// server is started before the tree so clients can be created with its URL.
type NATSServerService struct {
	server          NATSServer
	shutdownTimeout time.Duration
}

// NewNATSServerService wraps server.
func NewNATSServerService(server NATSServer, shutdownTimeout time.Duration) *NATSServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &NATSServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve implements suture.Service. A server that is not running cannot be
// restarted in place, so the service asks not to be restarted.
func (s *NATSServerService) Serve(ctx context.Context) error {
	if !s.server.Running() {
		return fmt.Errorf("embedded NATS server is not running: %w", suture.ErrDoNotRestart)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("embedded NATS shutdown: %w", err)
	}
	return ctx.Err()
}

func (s *NATSServerService) String() string {
	return "nats-server"
}
