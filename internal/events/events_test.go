// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/folio/internal/logging"
)

func TestRebuildRequest_MessageRoundTrip(t *testing.T) {
	req := NewRebuildRequest("manual", "req-42")

	msg, err := req.Message()
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if msg.UUID != req.ID {
		t.Errorf("message uuid = %q, want %q", msg.UUID, req.ID)
	}
	if got := msg.Metadata.Get(MetadataRequestID); got != "req-42" {
		t.Errorf("request_id metadata = %q", got)
	}

	decoded, err := DecodeRebuildRequest(msg)
	if err != nil {
		t.Fatalf("DecodeRebuildRequest: %v", err)
	}
	if decoded.ID != req.ID || decoded.Reason != "manual" || !decoded.RequestedAt.Equal(req.RequestedAt) {
		t.Errorf("decoded = %+v, want %+v", decoded, req)
	}
}

func TestDecodeRebuildRequest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		uuid    string
		payload string
	}{
		{"not json", "m1", "rebuild please"},
		{"missing id", "", `{"reason":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRebuildRequest(message.NewMessage(tt.uuid, []byte(tt.payload)))
			if !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("error = %v, want ErrInvalidMessage", err)
			}
		})
	}
}

func TestDecodeRebuildRequest_IDFromMessage(t *testing.T) {
	req, err := DecodeRebuildRequest(message.NewMessage("m-7", []byte(`{"reason":"x"}`)))
	if err != nil {
		t.Fatalf("DecodeRebuildRequest: %v", err)
	}
	if req.ID != "m-7" {
		t.Errorf("ID = %q, want m-7", req.ID)
	}
}

func receiveOne(t *testing.T, bus *Bus) (<-chan RebuildRequest, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan RebuildRequest, 1)

	_, err := bus.Listen(ctx, func(ctx context.Context, req RebuildRequest) error {
		if logging.RequestIDFromContext(ctx) != req.RequestID {
			req.Reason = "context missing request id"
		}
		select {
		case got <- req:
		default:
		}
		return nil
	})
	if err != nil {
		cancel()
		t.Fatalf("Listen: %v", err)
	}
	return got, cancel
}

func TestGoChannelBus(t *testing.T) {
	bus := NewGoChannelBus(Config{}, logging.NewTestLogger(io.Discard))
	t.Cleanup(func() { _ = bus.Close() })

	if bus.Topic() != DefaultTopic || bus.Transport() != "gochannel" {
		t.Errorf("topic=%q transport=%q", bus.Topic(), bus.Transport())
	}

	got, cancel := receiveOne(t, bus)
	defer cancel()

	want := NewRebuildRequest("test", "req-1")
	if err := bus.PublishRebuild(context.Background(), want); err != nil {
		t.Fatalf("PublishRebuild: %v", err)
	}

	select {
	case req := <-got:
		if req.ID != want.ID || req.RequestID != "req-1" || req.Reason != "test" {
			t.Errorf("received %+v, want %+v", req, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild request not delivered")
	}
}

func TestGoChannelBus_HandlerErrorDoesNotStopLoop(t *testing.T) {
	bus := NewGoChannelBus(Config{Topic: "test.errors"}, logging.NewTestLogger(io.Discard))
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 2)
	if _, err := bus.Listen(ctx, func(context.Context, RebuildRequest) error {
		calls <- struct{}{}
		return errors.New("busy")
	}); err != nil {
		t.Fatalf("Listen: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := bus.PublishRebuild(ctx, NewRebuildRequest("", "")); err != nil {
			t.Fatalf("PublishRebuild: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("handler call %d missing", i+1)
		}
	}
}

func TestBus_Closed(t *testing.T) {
	bus := NewGoChannelBus(Config{}, logging.NewTestLogger(io.Discard))
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := bus.PublishRebuild(context.Background(), NewRebuildRequest("", "")); !errors.Is(err, ErrBusClosed) {
		t.Errorf("publish after close = %v", err)
	}
	if _, err := bus.Listen(context.Background(), nil); !errors.Is(err, ErrBusClosed) {
		t.Errorf("listen after close = %v", err)
	}
}

func TestConsume_ReturnsOnCancel(t *testing.T) {
	bus := NewGoChannelBus(Config{}, logging.NewTestLogger(io.Discard))
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- bus.Consume(ctx, func(context.Context, RebuildRequest) error { return nil })
	}()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Consume = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Consume did not return")
	}
}
