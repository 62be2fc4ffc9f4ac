// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"math"
	"testing"
)

func buildTestMatrix(t *testing.T, docs []string, workers int) *SimilarityMatrix {
	t.Helper()

	_, vectors, err := Fit(context.Background(), docs, DefaultVectorizerConfig())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	m, err := BuildSimilarityMatrix(context.Background(), vectors, workers)
	if err != nil {
		t.Fatalf("BuildSimilarityMatrix() error = %v", err)
	}
	return m
}

func TestBuildSimilarityMatrix(t *testing.T) {
	docs := []string{
		"Frank Herbert Dune science fiction desert planet empire",
		"Isaac Asimov Foundation science fiction galactic empire",
		"Cooking 101 recipes kitchen",
		"",
	}
	m := buildTestMatrix(t, docs, 3)

	if m.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", m.Size())
	}
	if m.Bytes() != 16*8 {
		t.Errorf("Bytes() = %d, want 128", m.Bytes())
	}

	for i := 0; i < 3; i++ {
		if math.Abs(m.At(i, i)-1) > 1e-9 {
			t.Errorf("M[%d][%d] = %v, want 1", i, i, m.At(i, i))
		}
	}
	if m.At(3, 3) != 0 {
		t.Errorf("empty document self-similarity = %v, want 0", m.At(3, 3))
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > 1e-12 {
				t.Errorf("M not symmetric at (%d,%d): %v vs %v", i, j, m.At(i, j), m.At(j, i))
			}
		}
	}

	if m.At(0, 1) <= m.At(0, 2) {
		t.Errorf("sim(Dune, Foundation) = %v, want > sim(Dune, Cooking) = %v", m.At(0, 1), m.At(0, 2))
	}
	if m.At(0, 2) != 0 {
		t.Errorf("disjoint documents similarity = %v, want 0", m.At(0, 2))
	}

	row := m.Row(1)
	if len(row) != 4 || row[0] != m.At(1, 0) {
		t.Errorf("Row(1) = %v", row)
	}
}

func TestBuildSimilarityMatrix_WorkerCountInvariant(t *testing.T) {
	docs := []string{"alpha beta", "beta gamma", "gamma delta", "delta alpha", "epsilon"}
	single := buildTestMatrix(t, docs, 1)
	many := buildTestMatrix(t, docs, 8)

	for i := 0; i < len(docs); i++ {
		for j := 0; j < len(docs); j++ {
			if single.At(i, j) != many.At(i, j) {
				t.Fatalf("M[%d][%d] differs by worker count: %v vs %v", i, j, single.At(i, j), many.At(i, j))
			}
		}
	}
}

func TestBuildSimilarityMatrix_Empty(t *testing.T) {
	m, err := BuildSimilarityMatrix(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("BuildSimilarityMatrix() error = %v", err)
	}
	if m.Size() != 0 {
		t.Errorf("Size() = %d, want 0", m.Size())
	}
}
