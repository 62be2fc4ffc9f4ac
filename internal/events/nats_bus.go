// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build nats

package events

import (
	"errors"
	"fmt"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/logging"
)

// NewNATSBus connects a bus to the NATS server at cfg.URL. JetStream is not
// used; delivery is at-most-once within the queue group.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewNATSBus(cfg Config, logger zerolog.Logger) (*Bus, error) {
	cfg.applyDefaults()
	if cfg.URL == "" {
		return nil, errors.New("nats url is required")
	}
	logger = logger.With().Str("component", "events").Str("transport", "nats").Logger()
	wmLogger := logging.NewWatermillAdapter(logger)

	natsOpts := []natsgo.Option{
		natsgo.Name("folio"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}
	marshaler := &wmNats.NATSMarshaler{}
	jsConfig := wmNats.JetStreamConfig{Disabled: true}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   marshaler,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		CloseTimeout:     5 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      marshaler,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create nats subscriber: %w", err)
	}

	return &Bus{
		publisher:  pub,
		subscriber: sub,
		topic:      cfg.Topic,
		transport:  "nats",
		logger:     logger,
	}, nil
}
