// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
)

func TestBuild_Stats(t *testing.T) {
	b := buildBundle(t, testBooks(), testRatings())

	if b.Stats.Books != 6 {
		t.Errorf("Books = %d, want 6", b.Stats.Books)
	}
	if b.Stats.Ratings != len(testRatings()) {
		t.Errorf("Ratings = %d, want %d", b.Stats.Ratings, len(testRatings()))
	}
	if b.Stats.Users != 5 {
		t.Errorf("Users = %d, want 5", b.Stats.Users)
	}
	if b.Stats.RatedBooks != 5 {
		t.Errorf("RatedBooks = %d, want 5", b.Stats.RatedBooks)
	}
	if b.Stats.VocabularySize == 0 {
		t.Error("VocabularySize = 0")
	}
	if b.Stats.MatrixBytes != 6*6*8 {
		t.Errorf("MatrixBytes = %d, want %d", b.Stats.MatrixBytes, 6*6*8)
	}

	wantPhases := []string{PhaseCatalog, PhaseVectorize, PhaseSimilarity, PhasePivot, PhaseNeighbors}
	if len(b.Stats.Phases) != len(wantPhases) {
		t.Fatalf("phases = %d, want %d", len(b.Stats.Phases), len(wantPhases))
	}
	for i, p := range b.Stats.Phases {
		if p.Phase != wantPhases[i] {
			t.Errorf("phase[%d] = %s, want %s", i, p.Phase, wantPhases[i])
		}
	}
	if b.BuiltAt.IsZero() {
		t.Error("BuiltAt not set")
	}
}

func TestBuild_Errors(t *testing.T) {
	small := DefaultConfig()
	small.MaxCatalogSize = 3

	invalid := DefaultConfig()
	invalid.ContentDepth = 0

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	dup := testBooks()
	dup[1].ID = dup[0].ID

	tests := []struct {
		name    string
		ctx     context.Context
		books   []catalog.Book
		cfg     *Config
		wantErr error
	}{
		{"catalog too large", context.Background(), testBooks(), small, ErrCatalogTooLarge},
		{"invalid config", context.Background(), testBooks(), invalid, nil},
		{"cancelled", cancelled, testBooks(), DefaultConfig(), context.Canceled},
		{"duplicate id", context.Background(), dup, DefaultConfig(), catalog.ErrDuplicateBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.ctx, tt.books, testRatings(), tt.cfg, zerolog.Nop())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuild_EmptyCatalog(t *testing.T) {
	b := buildBundle(t, nil, nil)

	if b.Catalog.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Catalog.Len())
	}
	if got := RecommendContent(b, 1, 0); len(got) != 0 {
		t.Errorf("RecommendContent on empty bundle = %v", ids(got))
	}
	if got := RecommendHybrid(b, 1, 5); len(got) != 0 {
		t.Errorf("RecommendHybrid on empty bundle = %v", got)
	}
}

func TestBuildFrom(t *testing.T) {
	src := &staticSource{books: testBooks(), ratings: testRatings()}
	b, err := BuildFrom(context.Background(), src, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildFrom() error = %v", err)
	}
	if b.Catalog.Len() != 6 {
		t.Errorf("Len = %d, want 6", b.Catalog.Len())
	}

	loadErr := errors.New("disk on fire")
	_, err = BuildFrom(context.Background(), &staticSource{err: loadErr}, nil, zerolog.Nop())
	if !errors.Is(err, loadErr) {
		t.Errorf("error = %v, want %v", err, loadErr)
	}
}
