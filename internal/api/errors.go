// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/folio/internal/recommend"
)

// ErrEventsDisabled is returned when a rebuild is requested without an
// event bus.
var ErrEventsDisabled = errors.New("rebuild events are disabled")

// Messages for the plain /recommend wire format.
const (
	msgNoRecommendations = "No recommendations found"
	msgNotReady          = "index not ready"
	msgInvalidParams     = "Invalid request parameters"
	msgInternal          = "Internal server error"
	msgTimeout           = "request timed out"
	msgNoBooksFound      = "No books found matching the query"
)

// errorStatus maps a recommend error to an HTTP status, envelope code and
// message.
func errorStatus(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrNoRecommendations):
		return http.StatusNotFound, ErrCodeNotFound, msgNoRecommendations
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgNotReady
	case errors.Is(err, recommend.ErrInvalidLimit), errors.Is(err, recommend.ErrInvalidMethod):
		return http.StatusBadRequest, ErrCodeValidationFailed, err.Error()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgTimeout
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, msgInternal
	}
}
