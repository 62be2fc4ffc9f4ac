// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/authz"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// eventComponents holds the rebuild bus and, when embedded, its NATS server.
// bus is nil when events are disabled.
type eventComponents struct {
	bus    *events.Bus
	server *events.EmbeddedServer
	logger zerolog.Logger
}

//nolint:gocritic // hugeParam: config is read once at startup
func newEventComponents(cfg config.EventsConfig, logger zerolog.Logger) (*eventComponents, error) {
	comps := &eventComponents{logger: logger}
	if !cfg.Enabled {
		logger.Info().Msg("Event bus disabled (EVENTS_ENABLED=false), rebuild endpoint unavailable")
		return comps, nil
	}

	busCfg := events.Config{
		Topic:      cfg.Topic,
		QueueGroup: cfg.QueueGroup,
	}

	if !cfg.UseNATS() {
		comps.bus = events.NewGoChannelBus(busCfg, logger)
		logger.Info().Str("topic", comps.bus.Topic()).Msg("In-process event bus initialized")
		return comps, nil
	}

	if err := initNATSEvents(cfg, busCfg, comps); err != nil {
		return nil, err
	}
	return comps, nil
}

// close releases the bus and stops an embedded server that is still running.
// The supervisor normally stops the server first.
func (c *eventComponents) close() {
	if c.bus != nil {
		if err := c.bus.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Error closing event bus")
		}
	}
	if c.server != nil && c.server.Running() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.server.Shutdown(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Error stopping embedded NATS server")
		}
	}
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newManifestStore(cfg config.StoreConfig, logger zerolog.Logger) (*storage.BadgerStore, error) {
	store, err := storage.Open(storage.Options{
		Path:     cfg.Path,
		InMemory: cfg.InMemory,
		Retain:   cfg.Retain,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open manifest store: %w", err)
	}
	return store, nil
}

// adminAuth verifies bearer tokens and enforces the policy on admin routes.
// Both fields are nil when no JWT secret is configured.
type adminAuth struct {
	tokens *auth.JWTManager
	policy *authz.Enforcer
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newAdminAuth(cfg config.SecurityConfig, logger zerolog.Logger) (*adminAuth, error) {
	if !cfg.AuthEnabled() {
		logger.Warn().Msg("JWT_SECRET not set, admin endpoints reject every request")
		return &adminAuth{}, nil
	}

	tokens, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create JWT manager: %w", err)
	}
	policy, err := authz.NewEnforcer(authz.EnforcerConfig{PolicyPath: cfg.PolicyPath})
	if err != nil {
		return nil, fmt.Errorf("create authorization enforcer: %w", err)
	}

	source := "embedded"
	if cfg.PolicyPath != "" {
		source = cfg.PolicyPath
	}
	logger.Info().Str("issuer", cfg.JWTIssuer).Str("policy", source).Msg("Admin authorization enabled")
	return &adminAuth{tokens: tokens, policy: policy}, nil
}

// apply sets the verifier and authorizer on cfg. Nil pointers are left as
// nil interfaces so the handler fails closed.
func (a *adminAuth) apply(cfg *api.HandlerConfig) {
	if a.tokens != nil {
		cfg.Tokens = a.tokens
	}
	if a.policy != nil {
		cfg.Policy = a.policy
	}
}

func (a *adminAuth) close() {
	if a.policy != nil {
		a.policy.Close()
	}
}

// middlewareConfig maps security settings onto the chi middleware.
func middlewareConfig(cfg config.SecurityConfig) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.CORSOrigins
	if cfg.RateLimitReqs > 0 {
		mw.RateLimitRequests = cfg.RateLimitReqs
	}
	if cfg.RateLimitWindow > 0 {
		mw.RateLimitWindow = cfg.RateLimitWindow
	}
	mw.RateLimitDisabled = cfg.RateLimitDisabled
	return mw
}
