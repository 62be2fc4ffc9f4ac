// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ErrInvalidMessage is returned for payloads that are not rebuild requests.
var ErrInvalidMessage = errors.New("invalid rebuild request")

// Metadata keys set on outgoing messages.
const (
	MetadataRequestID = "request_id"
	MetadataReason    = "reason"
)

// RebuildRequest asks the index service to build a new generation.
type RebuildRequest struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewRebuildRequest stamps a request with a fresh id and the current time.
func NewRebuildRequest(reason, requestID string) RebuildRequest {
	return RebuildRequest{
		ID:          uuid.New().String(),
		RequestID:   requestID,
		Reason:      reason,
		RequestedAt: time.Now().UTC(),
	}
}

// Message encodes r as a Watermill message keyed by r.ID.
//
//nolint:gocritic // hugeParam: value semantics for messages
func (r RebuildRequest) Message() (*message.Message, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal rebuild request: %w", err)
	}
	msg := message.NewMessage(r.ID, payload)
	if r.RequestID != "" {
		msg.Metadata.Set(MetadataRequestID, r.RequestID)
	}
	if r.Reason != "" {
		msg.Metadata.Set(MetadataReason, r.Reason)
	}
	return msg, nil
}

// DecodeRebuildRequest parses a message payload.
func DecodeRebuildRequest(msg *message.Message) (RebuildRequest, error) {
	var r RebuildRequest
	if err := json.Unmarshal(msg.Payload, &r); err != nil {
		return RebuildRequest{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if r.ID == "" {
		r.ID = msg.UUID
	}
	if r.ID == "" {
		return RebuildRequest{}, fmt.Errorf("%w: missing id", ErrInvalidMessage)
	}
	return r, nil
}
