// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package client

import (
	"errors"
	"fmt"

	"github.com/tomtom215/folio/internal/recommend"
)

var (
	// ErrNoRecommendations is returned when the server found nothing to recommend.
	ErrNoRecommendations = recommend.ErrNoRecommendations

	// ErrNotReady is returned while the server has no index generation.
	ErrNotReady = recommend.ErrNotReady

	// ErrInvalidRequest wraps client-side validation failures.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned for missing books.
	ErrNotFound = errors.New("not found")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// StatusError is an unexpected HTTP status from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("folio server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("folio server returned status %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
