// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
	"github.com/tomtom215/folio/internal/validation"
)

const (
	defaultHistoryLimit = 20
	maxRebuildBody      = 4096
)

// RebuildRequestBody is the optional body of POST /api/v1/index/rebuild.
type RebuildRequestBody struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// RebuildAccepted is returned when a rebuild request has been published.
type RebuildAccepted struct {
	EventID   string `json:"event_id"`
	RequestID string `json:"request_id,omitempty"`
}

// IndexStatusResponse is the engine status plus the newest persisted build
// manifest, which survives restarts.
type IndexStatusResponse struct {
	recommend.Status
	LastBuild *storage.Manifest `json:"last_build,omitempty"`
}

// IndexStatus handles GET /api/v1/index.
//
// @Summary Index status
// @Description Reports the active generation, build statistics and request counters, plus the newest persisted build manifest.
// @Tags Index
// @Produce json
// @Success 200 {object} APIResponse{data=IndexStatusResponse} "Index status"
// @Router /api/v1/index [get]
func (h *Handler) IndexStatus(w http.ResponseWriter, r *http.Request) {
	resp := IndexStatusResponse{Status: h.engine.Status()}
	if h.manifests != nil {
		latest, err := h.manifests.Latest(r.Context())
		switch {
		case err == nil:
			resp.LastBuild = latest
		case !errors.Is(err, storage.ErrNoManifest):
			h.logger.Warn().Err(err).Msg("Read latest build manifest failed")
		}
	}
	NewResponseWriter(w, r).SuccessWithMeta(resp, &APIMeta{Generation: resp.Generation})
}

// IndexHistory handles GET /api/v1/index/history.
//
// @Summary Build history
// @Description Lists persisted build manifests, newest first.
// @Tags Index
// @Produce json
// @Param limit query int false "Number of manifests" default(20) minimum(1) maximum(500)
// @Success 200 {object} APIResponse{data=[]storage.Manifest} "Build manifests"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 500 {object} APIResponse "Store error"
// @Router /api/v1/index/history [get]
func (h *Handler) IndexHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, perr := optionalInt(r, "limit")
	if perr != nil {
		rw.ValidationError(msgInvalidParams, perr)
		return
	}
	req := HistoryRequest{Limit: limit}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(msgInvalidParams, verr.ToAPIError().Details)
		return
	}

	if h.manifests == nil {
		rw.SuccessWithMeta([]*storage.Manifest{}, &APIMeta{})
		return
	}

	manifests, err := h.manifests.List(r.Context(), valueOr(req.Limit, defaultHistoryLimit))
	if err != nil {
		h.logger.Error().Err(err).Msg("List build manifests failed")
		rw.InternalError("failed to read build history")
		return
	}
	rw.SuccessWithMeta(manifests, &APIMeta{Count: len(manifests)})
}

// RebuildIndex handles POST /api/v1/index/rebuild. The request is published
// on the event bus and the index service builds asynchronously.
//
// @Summary Request an index rebuild
// @Description Publishes a rebuild request; the index service rebuilds asynchronously. Requires a bearer token whose roles the policy allows.
// @Tags Index
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RebuildRequestBody false "Optional reason"
// @Success 202 {object} APIResponse{data=RebuildAccepted} "Rebuild requested"
// @Failure 400 {object} APIResponse "Invalid body"
// @Failure 401 {object} APIResponse "Missing or invalid token"
// @Failure 403 {object} APIResponse "Insufficient permissions"
// @Failure 409 {object} APIResponse "Rebuild already in progress"
// @Failure 503 {object} APIResponse "Events disabled"
// @Router /api/v1/index/rebuild [post]
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.rebuilds == nil {
		rw.ServiceUnavailable(ErrEventsDisabled.Error())
		return
	}

	var body RebuildRequestBody
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRebuildBody))
	if err != nil {
		rw.BadRequest("failed to read request body")
		return
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			rw.BadRequest("request body must be JSON")
			return
		}
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		rw.ValidationError(msgInvalidParams, verr.ToAPIError().Details)
		return
	}

	if h.engine.Status().Rebuilding {
		rw.Error(http.StatusConflict, ErrCodeConflict, "index rebuild already in progress")
		return
	}

	requestID := logging.RequestIDFromContext(r.Context())
	req := events.NewRebuildRequest(body.Reason, requestID)
	if err := h.rebuilds.PublishRebuild(r.Context(), req); err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Publish rebuild request failed")
		rw.InternalError("failed to request rebuild")
		return
	}

	event := h.logger.Info().
		Str("event_id", req.ID).
		Str("request_id", requestID).
		Str("reason", body.Reason)
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		event = event.Str("subject", claims.Subject)
	}
	event.Msg("Index rebuild requested")
	rw.Accepted(RebuildAccepted{EventID: req.ID, RequestID: requestID})
}
