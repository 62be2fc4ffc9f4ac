// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/folio/internal/catalog"
)

// Sentinel errors returned by the engine.
var (
	// ErrNotReady is returned before the first generation is installed.
	ErrNotReady = errors.New("index not ready")

	// ErrNoRecommendations is returned when a query resolves to an empty list.
	ErrNoRecommendations = errors.New("no recommendations found")

	// ErrInternal wraps faults recovered while computing a recommendation.
	ErrInternal = errors.New("internal recommendation error")

	// ErrRebuildInProgress is returned when a rebuild is requested while
	// another one is running.
	ErrRebuildInProgress = errors.New("index rebuild already in progress")

	// ErrCatalogTooLarge is returned by Build when the catalog exceeds the
	// configured maximum size.
	ErrCatalogTooLarge = errors.New("catalog exceeds maximum size")

	// ErrInvalidMethod is returned by ParseMethod for unknown method names.
	ErrInvalidMethod = errors.New("invalid recommendation method")

	// ErrInvalidLimit is returned for negative query limits.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Method selects the recommendation strategy.
type Method int

const (
	// MethodContent ranks by description similarity and weighted rating.
	MethodContent Method = iota
	// MethodCollaborative ranks by rating-pattern neighbors.
	MethodCollaborative
	// MethodHybrid merges content and collaborative results.
	MethodHybrid
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case MethodContent:
		return "content"
	case MethodCollaborative:
		return "collaborative"
	case MethodHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Methods lists the canonical method names.
func Methods() []string {
	return []string{"content", "collaborative", "hybrid"}
}

// ParseMethod parses a method name. Empty input selects MethodContent.
// Matching is case-insensitive and also accepts the labels
// "Content-Based", "Collaborative" and "Hybrid".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "content", "content-based":
		return MethodContent, nil
	case "collaborative":
		return MethodCollaborative, nil
	case "hybrid":
		return MethodHybrid, nil
	default:
		return MethodContent, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Query is a single recommendation request.
type Query struct {
	BookID int
	Method Method
	// Limit bounds collaborative and hybrid results. Zero selects the
	// configured default. Content results are not truncated.
	Limit int
}

// Response is the answer to a Query.
type Response struct {
	BookIDs    []int         `json:"book_ids"`
	Method     Method        `json:"method"`
	Generation uint64        `json:"generation"`
	Took       time.Duration `json:"-"`
}

// DataSource provides the catalog and ratings a generation is built from.
type DataSource interface {
	LoadBooks(ctx context.Context) ([]catalog.Book, error)
	LoadRatings(ctx context.Context) ([]catalog.Rating, error)
}

// PhaseTiming records how long one build phase took.
type PhaseTiming struct {
	Phase    string        `json:"phase"`
	Duration time.Duration `json:"duration_ns"`
}

// BuildStats summarizes a built bundle.
type BuildStats struct {
	Books          int           `json:"books"`
	Ratings        int           `json:"ratings"`
	Users          int           `json:"users"`
	RatedBooks     int           `json:"rated_books"`
	VocabularySize int           `json:"vocabulary_size"`
	MatrixBytes    int64         `json:"matrix_bytes"`
	Phases         []PhaseTiming `json:"phases"`
	Duration       time.Duration `json:"duration_ns"`
}

// Status describes the active generation.
type Status struct {
	Ready      bool       `json:"ready"`
	Generation uint64     `json:"generation"`
	BuiltAt    time.Time  `json:"built_at,omitempty"`
	Rebuilding bool       `json:"rebuilding"`
	Stats      BuildStats `json:"stats"`
	Requests   Counters   `json:"requests"`
}
