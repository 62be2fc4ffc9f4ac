// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// ErrBusClosed is returned by operations on a closed Bus.
var ErrBusClosed = errors.New("event bus closed")

// Defaults for Config.
const (
	DefaultTopic      = "folio.index.rebuild"
	DefaultQueueGroup = "folio-indexers"
	DefaultBuffer     = 16
)

// ErrNATSUnavailable is returned by the NATS constructors in builds without
// the nats tag.
var ErrNATSUnavailable = errors.New("NATS support not compiled (build with -tags nats)")

// Config configures a Bus.
type Config struct {
	Topic      string
	QueueGroup string

	// URL of the NATS server; ignored by the GoChannel transport.
	URL string

	// Buffer is the GoChannel output buffer.
	Buffer int64

	MaxReconnects int
	ReconnectWait time.Duration
}

func (c *Config) applyDefaults() {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.QueueGroup == "" {
		c.QueueGroup = DefaultQueueGroup
	}
	if c.Buffer <= 0 {
		c.Buffer = DefaultBuffer
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = -1
	}
	if c.ReconnectWait <= 0 {
		c.ReconnectWait = 2 * time.Second
	}
}

// Handler processes one decoded rebuild request.
type Handler func(ctx context.Context, req RebuildRequest) error

// Bus publishes and consumes rebuild requests on a single topic.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	transport  string
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewGoChannelBus creates an in-process bus.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGoChannelBus(cfg Config, logger zerolog.Logger) *Bus {
	cfg.applyDefaults()
	logger = logger.With().Str("component", "events").Str("transport", "gochannel").Logger()

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.Buffer,
	}, logging.NewWatermillAdapter(logger))

	return &Bus{
		publisher:  pubSub,
		subscriber: pubSub,
		topic:      cfg.Topic,
		transport:  "gochannel",
		logger:     logger,
	}
}

// Topic returns the topic the bus publishes on.
func (b *Bus) Topic() string {
	return b.topic
}

// Transport returns "gochannel" or "nats".
func (b *Bus) Transport() string {
	return b.transport
}

// PublishRebuild publishes req.
//
//nolint:gocritic // hugeParam: value semantics for messages
func (b *Bus) PublishRebuild(ctx context.Context, req RebuildRequest) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	msg, err := req.Message()
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	err = b.publisher.Publish(b.topic, msg)
	metrics.RecordEventPublished(b.topic, err)
	if err != nil {
		return fmt.Errorf("publish rebuild request: %w", err)
	}

	b.logger.Debug().
		Str("event_id", req.ID).
		Str("request_id", req.RequestID).
		Msg("Published rebuild request")
	return nil
}

// Listen subscribes to the topic and handles messages in a goroutine until
// ctx is cancelled or the bus is closed. The returned channel closes when
// the loop exits. The subscription is active when Listen returns.
func (b *Bus) Listen(ctx context.Context, fn Handler) (<-chan struct{}, error) {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return nil, ErrBusClosed
	}

	messages, err := b.subscriber.Subscribe(ctx, b.topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", b.topic, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				b.handle(ctx, msg, fn)
			}
		}
	}()
	return done, nil
}

// Consume is Listen that blocks until the loop exits.
func (b *Bus) Consume(ctx context.Context, fn Handler) error {
	done, err := b.Listen(ctx, fn)
	if err != nil {
		return err
	}
	<-done
	return ctx.Err()
}

func (b *Bus) handle(ctx context.Context, msg *message.Message, fn Handler) {
	defer msg.Ack()

	req, err := DecodeRebuildRequest(msg)
	if err == nil {
		if id := msg.Metadata.Get(MetadataRequestID); req.RequestID == "" && id != "" {
			req.RequestID = id
		}
		err = fn(logging.ContextWithRequestID(ctx, req.RequestID), req)
	}
	metrics.RecordEventConsumed(b.topic, err)

	if err != nil {
		b.logger.Warn().
			Err(err).
			Str("message_uuid", msg.UUID).
			Msg("Rebuild request not handled")
	}
}

// Close shuts down the publisher and subscriber.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	// GoChannel is both ends.
	if pub, ok := b.publisher.(message.Subscriber); !ok || pub != b.subscriber {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	return errors.Join(errs...)
}
