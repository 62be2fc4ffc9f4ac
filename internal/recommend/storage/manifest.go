// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/folio/internal/recommend"
)

// ErrNoManifest is returned by Latest when no manifest has been stored.
var ErrNoManifest = errors.New("no build manifest stored")

// Trigger names what started a build.
type Trigger string

// Build triggers.
const (
	TriggerStartup Trigger = "startup"
	TriggerRefresh Trigger = "refresh"
	TriggerRequest Trigger = "request"
)

// Manifest describes one installed index generation.
type Manifest struct {
	ID         string               `json:"id"`
	Generation uint64               `json:"generation"`
	Trigger    Trigger              `json:"trigger"`
	RequestID  string               `json:"request_id,omitempty"`
	BuiltAt    time.Time            `json:"built_at"`
	Stats      recommend.BuildStats `json:"stats"`
}

// NewManifest describes bundle installed as generation.
func NewManifest(bundle *recommend.IndexBundle, generation uint64, trigger Trigger, requestID string) *Manifest {
	return &Manifest{
		ID:         uuid.New().String(),
		Generation: generation,
		Trigger:    trigger,
		RequestID:  requestID,
		BuiltAt:    bundle.BuiltAt,
		Stats:      bundle.Stats,
	}
}

// ManifestStore persists manifests.
type ManifestStore interface {
	Save(ctx context.Context, m *Manifest) error
	List(ctx context.Context, limit int) ([]*Manifest, error)
	Latest(ctx context.Context) (*Manifest, error)
	Close() error
}
