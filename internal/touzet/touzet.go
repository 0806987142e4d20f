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

// Package touzet computes tree edit distance using the Zhang-Shasha forest-distance recurrence,
// exposing a distance-threshold band matrix in the shape the Touzet family of algorithms (on
// which the public API's retry behavior is modeled) describes: for a given threshold k, cells
// (x, y) with |x-y| > k are never relevant and cells that are in-band but provably unreachable
// within k edits are left at +Inf.
//
// The baseline TedK always computes the exact tree distance; k only bounds which cells are
// exposed through the band matrix and whether the distance is reported as found (<= k) or not
// (the caller, [stacey.dev/ted.Driver], grows k and retries when it isn't). DynamicTedK additionally
// copies into its band matrix, from a previous run's band matrix, the cells of subtree pairs known
// through [Preserved] maps (derived from [stacey.dev/ted/bracket.Retain] maps) to be unchanged, and
// counts them as hits. It still computes the full forest-distance table for the current pair, so
// a hit does not reduce Subproblems.
package touzet

import (
	"math"

	"stacey.dev/ted/cost"
	"stacey.dev/ted/internal/bandmatrix"
	"stacey.dev/ted/treeindex"
)

// Result is the outcome of one threshold-bounded distance computation.
type Result struct {
	// Distance is the tree edit distance, or +Inf if it exceeds the threshold k the caller
	// supplied and should retry with a larger one.
	Distance float64

	// Matrix holds every in-band, k-relevant subproblem distance computed along the way, keyed
	// by (x, y) postorder positions. It is nil if the two trees' sizes already differ by more
	// than k.
	Matrix *bandmatrix.Matrix

	// Subproblems counts the forest-distance cells actually computed, the same bookkeeping the
	// original algorithm exposes to let callers judge how much work a query took.
	Subproblems int64

	// Hit and Missed count, for [DynamicTedK] only, how many in-band cells were satisfied from
	// the previous run's cache versus recomputed from scratch.
	Hit, Missed int64
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// kRelevant reports whether the subproblem (x, y) can possibly participate in an optimal
// alignment within budget k. The edits already forced by what lies outside the two subtrees must
// not themselves exceed k, and whatever they leave of the budget (eBudget) must still be enough
// to cover the subtrees' own size difference.
func kRelevant[L comparable](t1, t2 *treeindex.Index[L], x, y, k int) bool {
	if absInt(x-y) > k {
		return false
	}
	n1, n2 := t1.Size, t2.Size
	outside1 := n1 - t1.SubtreeSize[x]
	outside2 := n2 - t2.SubtreeSize[y]
	if absInt(outside1-outside2) > k {
		return false
	}
	sizeDiff := absInt(t1.SubtreeSize[x] - t2.SubtreeSize[y])
	return sizeDiff <= eBudget(t1, t2, x, y, k)
}

// eBudget returns the remaining edit budget available to subproblem (x, y) given the global
// threshold k: the edits already forced by the size mismatch of what lies outside the two
// subtrees.
func eBudget[L comparable](t1, t2 *treeindex.Index[L], x, y, k int) int {
	n1, n2 := t1.Size, t2.Size
	outside1 := n1 - t1.SubtreeSize[x]
	outside2 := n2 - t2.SubtreeSize[y]
	spent := absInt(outside1 - outside2)
	remaining := k - spent
	if remaining < 0 {
		return 0
	}
	return remaining
}

// dense holds the full Zhang-Shasha subproblem table, computed once without regard to any
// threshold. TedK and DynamicTedK read from it to populate their band matrices; the threshold
// only ever decides which cells get exposed and whether the final answer counts as "found".
type dense[L comparable] struct {
	t1, t2      *treeindex.Index[L]
	cm          cost.Model[L]
	td          [][]float64
	subproblems int64
}

func buildDense[L comparable](t1, t2 *treeindex.Index[L], cm cost.Model[L]) *dense[L] {
	d := &dense[L]{t1: t1, t2: t2, cm: cm}
	d.td = make([][]float64, t1.Size)
	for i := range d.td {
		d.td[i] = make([]float64, t2.Size)
	}
	for _, i := range t1.Keyroots {
		for _, j := range t2.Keyroots {
			d.treeDist(i, j)
		}
	}
	return d
}

func (d *dense[L]) deleteCost(x int) float64 {
	return d.cm.Delete(d.t1.PostlToLabel[x])
}

func (d *dense[L]) insertCost(y int) float64 {
	return d.cm.Insert(d.t2.PostlToLabel[y])
}

func (d *dense[L]) renameCost(x, y int) float64 {
	return d.cm.Rename(d.t1.PostlToLabel[x], d.t2.PostlToLabel[y])
}

// treeDist fills d.td for every (x, y) pair that lies within the forests bounded above by
// keyroots i and j, following the classic Zhang-Shasha forest-distance recurrence.
func (d *dense[L]) treeDist(i, j int) {
	li := d.t1.LeftLeaf[i]
	lj := d.t2.LeftLeaf[j]

	rows := i - li + 2
	cols := j - lj + 2
	fd := make([][]float64, rows)
	for r := range fd {
		fd[r] = make([]float64, cols)
	}

	for x := li; x <= i; x++ {
		fd[x-li+1][0] = fd[x-li][0] + d.deleteCost(x)
	}
	for y := lj; y <= j; y++ {
		fd[0][y-lj+1] = fd[0][y-lj] + d.insertCost(y)
	}

	for x := li; x <= i; x++ {
		for y := lj; y <= j; y++ {
			r, c := x-li+1, y-lj+1
			d.subproblems++
			if d.t1.LeftLeaf[x] == li && d.t2.LeftLeaf[y] == lj {
				fd[r][c] = minOf3(
					fd[r-1][c]+d.deleteCost(x),
					fd[r][c-1]+d.insertCost(y),
					fd[r-1][c-1]+d.renameCost(x, y),
				)
				d.td[x][y] = fd[r][c]
			} else {
				p := d.t1.LeftLeaf[x] - li // row of forest with subtree x removed
				q := d.t2.LeftLeaf[y] - lj
				fd[r][c] = minOf3(
					fd[r-1][c]+d.deleteCost(x),
					fd[r][c-1]+d.insertCost(y),
					fd[p][q]+d.td[x][y],
				)
			}
		}
	}
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// TedK computes the tree edit distance between t1 and t2, bounded by threshold k. If the true
// distance exceeds k, Distance is +Inf and the caller should retry with a larger k.
func TedK[L comparable](t1, t2 *treeindex.Index[L], cm cost.Model[L], k int) Result {
	if k < 0 {
		panic("touzet: TedK called with k < 0")
	}
	n1, n2 := t1.Size, t2.Size
	if absInt(n1-n2) > k {
		return Result{Distance: math.Inf(1)}
	}

	d := buildDense(t1, t2, cm)
	band := bandmatrix.New(n1, k)
	for x := 0; x < n1; x++ {
		lo := maxInt(0, x-k)
		hi := minInt(x+k, n2-1)
		for y := lo; y <= hi; y++ {
			if kRelevant(t1, t2, x, y, k) {
				*band.At(x, y) = d.td[x][y]
			}
		}
	}

	distance := d.td[n1-1][n2-1]
	res := Result{Matrix: band, Subproblems: d.subproblems}
	if float64(k) < distance {
		res.Distance = math.Inf(1)
	} else {
		res.Distance = distance
	}
	return res
}

// Preserved maps a postorder position in the new tree to the postorder position of the node it
// was retained from in the old tree, for whichever tree changed.
type Preserved map[int]int

// DynamicTedK computes the tree edit distance between t1 and t2 the way [TedK] does, and fills its
// band matrix from old, the previous run's band matrix, for any in-band cell (x, y) where both x (if
// t1Same is false) and y (if t2Same is false) correspond, through t1Preserved/t2Preserved, to a
// cell old is known to already hold correctly. t1Same and t2Same mean "this side of the pair did
// not change at all", in which case that side's raw postorder position is used directly
// instead of going through the preserved-subtree map.
func DynamicTedK[L comparable](
	t1, t2 *treeindex.Index[L], cm cost.Model[L], k int,
	old *bandmatrix.Matrix, oldK int,
	t1Preserved, t2Preserved Preserved, t1Same, t2Same bool,
) Result {
	if k < 0 {
		panic("touzet: DynamicTedK called with k < 0")
	}
	n1, n2 := t1.Size, t2.Size
	if absInt(n1-n2) > k {
		return Result{Distance: math.Inf(1)}
	}

	d := buildDense(t1, t2, cm)
	band := bandmatrix.New(n1, k)

	var hit, missed int64
	for x := 0; x < n1; x++ {
		lo := maxInt(0, x-k)
		hi := minInt(x+k, n2-1)
		for y := lo; y <= hi; y++ {
			if cached, ok := lookupPreserved(old, oldK, t1Preserved, t2Preserved, t1Same, t2Same, x, y); ok {
				*band.At(x, y) = cached
				hit++
				continue
			}
			if kRelevant(t1, t2, x, y, k) {
				*band.At(x, y) = d.td[x][y]
				missed++
			}
		}
	}

	distance := d.td[n1-1][n2-1]
	res := Result{Matrix: band, Subproblems: d.subproblems, Hit: hit, Missed: missed}
	if float64(k) < distance {
		res.Distance = math.Inf(1)
	} else {
		res.Distance = distance
	}
	return res
}

// readCached returns the value old holds for (x, y), rejecting it if the cell was never actually
// proven k-relevant at oldK: such a cell still holds its +Inf initialization sentinel, which means
// "not computed", not "provably unreachable", and must not be trusted as a cached distance.
func readCached(old *bandmatrix.Matrix, x, y int) (float64, bool) {
	v := old.ReadAt(x, y)
	if math.IsInf(v, 1) {
		return 0, false
	}
	return v, true
}

func lookupPreserved(old *bandmatrix.Matrix, oldK int, t1p, t2p Preserved, t1Same, t2Same bool, x, y int) (float64, bool) {
	if old == nil {
		return 0, false
	}
	switch {
	case !t1Same && !t2Same:
		ox, ok1 := t1p[x]
		oy, ok2 := t2p[y]
		if !ok1 || !ok2 || absInt(ox-oy) > oldK {
			return 0, false
		}
		return readCached(old, ox, oy)
	case t1Same:
		oy, ok := t2p[y]
		if !ok || absInt(x-oy) > oldK {
			return 0, false
		}
		return readCached(old, x, oy)
	case t2Same:
		ox, ok := t1p[x]
		if !ok || absInt(ox-y) > oldK {
			return 0, false
		}
		return readCached(old, ox, y)
	default:
		return 0, false
	}
}
