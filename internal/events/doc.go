// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package events carries index rebuild requests between the HTTP API and the
index service.

A Bus pairs a Watermill publisher and subscriber on one topic. Two
transports are available:

  - NewGoChannelBus: in-process Watermill GoChannel, the default for a
    single replica
  - NewNATSBus: watermill-nats over core NATS with a queue group, so one
    replica handles each request; pair it with EmbeddedServer for a
    self-contained deployment

The NATS transport is compiled only with the nats build tag:

	go build -tags nats ./cmd/server

Without it NewNATSBus and NewEmbeddedServer return ErrNATSUnavailable.

Rebuild requests are triggers, not jobs: consumers always ack, and a
request that arrives while a build is running is dropped by the engine.
*/
package events
