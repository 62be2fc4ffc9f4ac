// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package algorithms

import (
	"math"
	"sort"

	"github.com/tomtom215/folio/internal/catalog"
)

// MaxNeighbors is the neighborhood cap of the item neighbor index. A query
// asks for k results counting the seed itself; k is clamped to this value,
// so at most MaxNeighbors-1 neighbors are ever returned.
const MaxNeighbors = 20

// cell is one stored entry of a matrix row.
type cell struct {
	col   int
	value float64
}

// UserItemMatrix is the sparse user × book rating matrix.
//
// Rows are distinct user ids and columns distinct rated book ids, both in
// ascending order. Cells without a rating read as 0, which is
// indistinguishable from an explicit rating of 0. This is a known
// limitation of the model: a 0 rating contributes nothing to similarity.
type UserItemMatrix struct {
	users    []int
	books    []int
	colIndex map[int]int

	// columns holds one item vector per book, indexed by user row.
	columns []SparseVector

	// rows holds the transposed view, one slice of cells per user.
	rows [][]cell
}

// PivotRatings builds the matrix. When a (user, book) pair appears more
// than once the last rating in source order wins.
func PivotRatings(ratings *catalog.RatingTable) *UserItemMatrix {
	type key struct{ user, book int }
	values := make(map[key]float64, ratings.Len())
	userSet := make(map[int]struct{})
	bookSet := make(map[int]struct{})

	ratings.Each(func(r catalog.Rating) {
		values[key{r.UserID, r.BookID}] = r.Value
		userSet[r.UserID] = struct{}{}
		bookSet[r.BookID] = struct{}{}
	})

	m := &UserItemMatrix{
		users:    sortedKeys(userSet),
		books:    sortedKeys(bookSet),
		colIndex: make(map[int]int, len(bookSet)),
	}
	rowIndex := make(map[int]int, len(m.users))
	for i, u := range m.users {
		rowIndex[u] = i
	}
	for j, b := range m.books {
		m.colIndex[b] = j
	}

	m.rows = make([][]cell, len(m.users))
	for k, v := range values {
		if v == 0 {
			continue
		}
		r := rowIndex[k.user]
		m.rows[r] = append(m.rows[r], cell{col: m.colIndex[k.book], value: v})
	}

	m.columns = make([]SparseVector, len(m.books))
	for r := range m.rows {
		sort.Slice(m.rows[r], func(a, b int) bool { return m.rows[r][a].col < m.rows[r][b].col })
		// Rows are visited in ascending order, so column indices stay sorted.
		for _, c := range m.rows[r] {
			col := &m.columns[c.col]
			col.Indices = append(col.Indices, r)
			col.Values = append(col.Values, c.value)
		}
	}
	return m
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Users returns the number of rows.
func (m *UserItemMatrix) Users() int {
	return len(m.users)
}

// Items returns the number of columns.
func (m *UserItemMatrix) Items() int {
	return len(m.books)
}

// Column returns the column index of a book id.
func (m *UserItemMatrix) Column(bookID int) (int, bool) {
	j, ok := m.colIndex[bookID]
	return j, ok
}

// BookID returns the book id of column j.
func (m *UserItemMatrix) BookID(j int) int {
	return m.books[j]
}

// ItemVector returns the item vector of column j (one entry per rating user).
func (m *UserItemMatrix) ItemVector(j int) SparseVector {
	return m.columns[j]
}

// value returns the rating of user row r for column j, or 0.
func (m *UserItemMatrix) value(r, j int) float64 {
	for _, c := range m.rows[r] {
		if c.col == j {
			return c.value
		}
	}
	return 0
}

// Neighbor is a result of a neighbor query.
type Neighbor struct {
	// Column is the matrix column of the neighbor.
	Column int
	// BookID is the book at that column.
	BookID int
	// Distance is the cosine distance to the seed, in [0, 2].
	Distance float64
}

// NeighborIndex answers exhaustive cosine nearest-neighbor queries over the
// item vectors of a UserItemMatrix.
type NeighborIndex struct {
	matrix       *UserItemMatrix
	norms        []float64
	maxNeighbors int
}

// NewNeighborIndex precomputes item vector norms.
func NewNeighborIndex(m *UserItemMatrix) *NeighborIndex {
	norms := make([]float64, m.Items())
	for j := range norms {
		norms[j] = m.ItemVector(j).Norm()
	}
	return &NeighborIndex{matrix: m, norms: norms, maxNeighbors: MaxNeighbors}
}

// Query returns the nearest neighbors of column seed in ascending distance,
// ties broken by ascending column. k counts the seed itself, which always
// ranks first and is never returned, so the result holds at most k-1
// entries. k is clamped to MaxNeighbors and to the number of items.
func (x *NeighborIndex) Query(seed, k int) []Neighbor {
	m := x.matrix
	k = min(k, x.maxNeighbors, m.Items())
	if seed < 0 || seed >= m.Items() || k <= 1 {
		return []Neighbor{}
	}

	dots := make([]float64, m.Items())
	seedVec := m.columns[seed]
	for i, r := range seedVec.Indices {
		v := seedVec.Values[i]
		for _, c := range m.rows[r] {
			dots[c.col] += v * c.value
		}
	}

	candidates := make([]neighbor, 0, m.Items()-1)
	seedNorm := x.norms[seed]
	for j := range dots {
		if j == seed {
			continue
		}
		sim := 0.0
		if seedNorm > 0 && x.norms[j] > 0 {
			sim = dots[j] / (seedNorm * x.norms[j])
		}
		candidates = append(candidates, neighbor{Index: j, Similarity: sim})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Similarity > candidates[b].Similarity
	})

	out := make([]Neighbor, 0, k-1)
	for _, c := range candidates[:k-1] {
		out = append(out, Neighbor{
			Column:   c.Index,
			BookID:   m.books[c.Index],
			Distance: clampDistance(1 - c.Similarity),
		})
	}
	return out
}

func clampDistance(d float64) float64 {
	return math.Max(0, math.Min(2, d))
}
