// Copyright 2026 The Ted Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bandmatrix implements the diagonal-strip storage the Touzet tree distance algorithm
// uses to hold its subproblem table: for a threshold k, only cells (x, y) with |x-y| <= k are
// ever read or written, so storing the full n1*n2 matrix would waste memory for no benefit.
package bandmatrix

import "math"

// Matrix stores float64 cells (x, y) for 0 <= x < n1 and |x-y| <= k. Cells outside the band do
// not exist; ReadAt reports them as +Inf, matching "no edit sequence within k edits reaches this
// pairing" semantics, and At panics if asked for one.
type Matrix struct {
	n1, k int
	cells []float64
}

// New allocates a Matrix for row count n1 and band half-width k. Every in-band cell starts at
// positive infinity.
func New(n1, k int) *Matrix {
	m := &Matrix{n1: n1, k: k}
	m.Reset(n1, k)
	return m
}

// Reset resizes m in place to row count n1 and band half-width k, reusing the existing backing
// array when it is already large enough. Every in-band cell is reinitialized to positive
// infinity.
func (m *Matrix) Reset(n1, k int) {
	m.n1, m.k = n1, k
	width := 2*k + 1
	need := n1 * width
	if cap(m.cells) < need {
		m.cells = make([]float64, need)
	} else {
		m.cells = m.cells[:need]
	}
	for i := range m.cells {
		m.cells[i] = inf
	}
}

var inf = math.Inf(1)

func (m *Matrix) inBand(x, y int) bool {
	if x < 0 || x >= m.n1 {
		return false
	}
	d := x - y
	if d < 0 {
		d = -d
	}
	return d <= m.k
}

func (m *Matrix) offset(x, y int) int {
	return x*(2*m.k+1) + (y - x + m.k)
}

// At returns a pointer to the cell (x, y), which the caller may read or write through. It panics
// if (x, y) is outside the band, since such a cell was never allocated.
func (m *Matrix) At(x, y int) *float64 {
	if !m.inBand(x, y) {
		panic("bandmatrix: cell out of band")
	}
	return &m.cells[m.offset(x, y)]
}

// ReadAt returns the value stored at (x, y), or +Inf if (x, y) falls outside the band.
func (m *Matrix) ReadAt(x, y int) float64 {
	if !m.inBand(x, y) {
		return inf
	}
	return m.cells[m.offset(x, y)]
}

// K returns the band half-width the matrix was constructed with.
func (m *Matrix) K() int { return m.k }

// Rows returns the row count the matrix was constructed with.
func (m *Matrix) Rows() int { return m.n1 }
