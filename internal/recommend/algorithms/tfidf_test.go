// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestVectorizer_Tokenize(t *testing.T) {
	v := &Vectorizer{config: DefaultVectorizerConfig()}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stop words and punctuation", "The Quick-brown fox, and I", []string{"quick", "brown", "fox"}},
		{"single characters dropped", "a b c dune", []string{"dune"}},
		{"digits and underscores", "HAL_9000 in 2001", []string{"hal_9000", "2001"}},
		{"list literal", "['Frank Herbert']", []string{"frank", "herbert"}},
		{"unicode letters", "Éowyn Café", []string{"éowyn", "café"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFit_VocabularyAndIDF(t *testing.T) {
	docs := []string{"dune desert", "dune ocean"}

	v, vectors, err := Fit(context.Background(), docs, DefaultVectorizerConfig())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// dune, desert, ocean, "dune desert", "dune ocean"
	if got := v.VocabularySize(); got != 5 {
		t.Errorf("VocabularySize() = %d, want 5", got)
	}

	idf, ok := v.termIDF("dune")
	if !ok || math.Abs(idf-1) > 1e-12 {
		t.Errorf("IDF(dune) = %v, %v, want 1", idf, ok)
	}
	idf, ok = v.termIDF("dune desert")
	want := math.Log(3.0/2.0) + 1
	if !ok || math.Abs(idf-want) > 1e-12 {
		t.Errorf("IDF(dune desert) = %v, want %v", idf, want)
	}

	if len(vectors) != 2 {
		t.Fatalf("len(vectors) = %d, want 2", len(vectors))
	}
	for i, vec := range vectors {
		if vec.Len() != 3 {
			t.Errorf("vectors[%d].Len() = %d, want 3", i, vec.Len())
		}
		if math.Abs(vec.Norm()-1) > 1e-12 {
			t.Errorf("vectors[%d].Norm() = %v, want 1", i, vec.Norm())
		}
	}
}

func TestFit_StopWordOnlyDocument(t *testing.T) {
	_, vectors, err := Fit(context.Background(), []string{"the and of", "dune"}, DefaultVectorizerConfig())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if vectors[0].Len() != 0 {
		t.Errorf("stop-word document has %d terms, want 0", vectors[0].Len())
	}
}

func TestFit_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := Fit(ctx, []string{"dune"}, DefaultVectorizerConfig()); err == nil {
		t.Fatal("Fit() with cancelled context returned nil error")
	}
}

func TestVectorizer_Transform(t *testing.T) {
	v, vectors, err := Fit(context.Background(), []string{"dune desert", "dune ocean"}, DefaultVectorizerConfig())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	got := v.Transform("dune desert unknownword")
	if !reflect.DeepEqual(got.Indices, vectors[0].Indices) {
		t.Errorf("Transform() indices = %v, want %v", got.Indices, vectors[0].Indices)
	}
}
