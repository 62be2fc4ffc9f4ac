// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"context"
	"sync"
)

// SimilarityMatrix is a dense, symmetric N×N matrix of cosine similarities
// between L2-normalized document vectors, stored row-major.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// posting is one (document, weight) entry of the inverted index.
type posting struct {
	doc    int
	weight float64
}

// BuildSimilarityMatrix computes every pairwise dot product of the
// normalized vectors. Rows are computed in parallel by workers goroutines
// (0 means GOMAXPROCS) through an inverted term index, so only documents
// that share a term are visited.
func BuildSimilarityMatrix(ctx context.Context, vectors []SparseVector, workers int) (*SimilarityMatrix, error) {
	n := len(vectors)
	m := &SimilarityMatrix{n: n, data: make([]float64, n*n)}
	if n == 0 {
		return m, nil
	}

	postings := make(map[int][]posting)
	for doc, vec := range vectors {
		for k, idx := range vec.Indices {
			postings[idx] = append(postings[idx], posting{doc: doc, weight: vec.Values[k]})
		}
	}

	workers = min(defaultWorkers(workers), n)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				if ContextCancelled(ctx) {
					return
				}
				row := m.data[i*n : (i+1)*n]
				vec := vectors[i]
				for k, idx := range vec.Indices {
					wi := vec.Values[k]
					for _, p := range postings[idx] {
						row[p.doc] += wi * p.weight
					}
				}
			}
		}(start, end)
	}

	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	return m, nil
}

// Size returns N.
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// At returns M[i][j].
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns row i. The slice aliases the matrix and must not be modified.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}

// Bytes returns the memory held by the matrix values.
func (m *SimilarityMatrix) Bytes() int64 {
	return int64(len(m.data)) * 8
}
