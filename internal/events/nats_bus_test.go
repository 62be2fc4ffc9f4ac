// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build nats

package events

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/tomtom215/folio/internal/logging"
)

func TestNATSBus_EmbeddedServer(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a NATS server")
	}

	srv, err := NewEmbeddedServer(ServerConfig{Port: server.RANDOM_PORT})
	if err != nil {
		t.Fatalf("NewEmbeddedServer: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	if !srv.Running() {
		t.Fatal("server not running")
	}

	bus, err := NewNATSBus(Config{URL: srv.ClientURL()}, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewNATSBus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	got, cancel := receiveOne(t, bus)
	defer cancel()

	want := NewRebuildRequest("nats", "req-nats")
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	// Core NATS drops messages published before the subscription reaches
	// the server, so publish until one arrives.
	for {
		if err := bus.PublishRebuild(context.Background(), want); err != nil {
			t.Fatalf("PublishRebuild: %v", err)
		}
		select {
		case req := <-got:
			if req.ID != want.ID {
				t.Errorf("received id %q, want %q", req.ID, want.ID)
			}
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("rebuild request not delivered over NATS")
		}
	}
}

func TestNewNATSBus_RequiresURL(t *testing.T) {
	if _, err := NewNATSBus(Config{}, logging.NewTestLogger(io.Discard)); err == nil {
		t.Error("expected error for empty url")
	}
}
