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

package ted

import (
	"math"
	"time"

	"stacey.dev/ted/bracket"
	"stacey.dev/ted/cost"
	"stacey.dev/ted/internal/bandmatrix"
	"stacey.dev/ted/internal/config"
	"stacey.dev/ted/internal/touzet"
	"stacey.dev/ted/tree"
	"stacey.dev/ted/treeindex"
)

// Stats reports the bookkeeping the last call to a [Driver] method produced: how much work it
// did and, for incremental calls, how effectively it reused the previous call's results.
type Stats struct {
	// Kind identifies which Driver method produced these stats.
	Kind UpdateKind

	// Subproblems counts the forest-distance cells computed for the cross-tree distance itself.
	Subproblems int64

	// T1Distance and T2Distance are the distances between tree 1's (or tree 2's) previous and
	// current versions, as discovered while looking for preserved subtrees. They are 0 for
	// [KindBaseline].
	T1Distance, T2Distance float64

	// T1Subproblems and T2Subproblems count the forest-distance cells spent discovering
	// T1Distance and T2Distance.
	T1Subproblems, T2Subproblems int64

	// T1Elapsed and T2Elapsed are how long discovering T1Distance and T2Distance took.
	T1Elapsed, T2Elapsed time.Duration

	// Hit and Missed count, across the in-band cells of the cross-tree distance, how many were
	// satisfied from the previous call's cache versus recomputed from scratch.
	Hit, Missed int64

	// K is the distance threshold the search ultimately succeeded with.
	K int

	// Elapsed is how long the cross-tree distance computation took, excluding T1/T2 preprocessing.
	Elapsed time.Duration
}

// HitRate returns Hit / (Hit + Missed), or 0 if no cells were looked up.
func (s Stats) HitRate() float64 {
	total := s.Hit + s.Missed
	if total == 0 {
		return 0
	}
	return float64(s.Hit) / float64(total)
}

// Driver holds the cache a single incremental tree edit distance session needs: the label
// dictionary shared across every tree seen so far, the most recently indexed version of each
// tree, and the cross-tree band matrix from the last distance computation.
//
// A Driver is not safe for concurrent use; each incremental session should own its own Driver.
type Driver[L comparable] struct {
	cm  cost.Model[L]
	cfg config.Config

	dict treeindex.LabelDictionary[L]

	t1, t2 *treeindex.Index[L]

	crossMatrix *bandmatrix.Matrix
	crossK      int
	distance    float64

	Stats Stats
}

// NewDriver creates a Driver that uses cm to cost edit operations.
func NewDriver[L comparable](cm cost.Model[L], opts ...Option) *Driver[L] {
	return &Driver[L]{
		cm:  cm,
		cfg: config.FromOptions(opts, config.GrowthFactor),
	}
}

// retryTedK runs [touzet.TedK] with an escalating threshold, starting at the triangle-inequality
// lower bound |n1-n2|+1 and multiplying by the driver's growth factor each time the search comes
// back unbounded, until it finds the true distance. The returned Subproblems counts every attempt.
func (d *Driver[L]) retryTedK(t1, t2 *treeindex.Index[L]) (touzet.Result, int) {
	k := abs(t1.Size-t2.Size) + 1
	res := touzet.TedK(t1, t2, d.cm, k)
	spent := res.Subproblems
	for math.IsInf(res.Distance, 1) {
		k *= d.cfg.GrowthFactor
		res = touzet.TedK(t1, t2, d.cm, k)
		spent += res.Subproblems
	}
	res.Subproblems = spent
	return res, k
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// T1Label returns the label of the node at preorder position prel in the tree most recently
// given to [Driver.Baseline], [Driver.Update] or [Driver.UpdateT1], so that callers can resolve
// the label of a retained node they chose not to repeat in incremental input. It reports false if
// no baseline has been computed yet or prel is out of range.
func (d *Driver[L]) T1Label(prel int) (label L, ok bool) {
	return driverLabel(d.t1, prel)
}

// T2Label is [Driver.T1Label] for tree 2.
func (d *Driver[L]) T2Label(prel int) (label L, ok bool) {
	return driverLabel(d.t2, prel)
}

func driverLabel[L comparable](idx *treeindex.Index[L], prel int) (label L, ok bool) {
	if idx == nil || prel < 0 || prel >= idx.Size {
		return label, false
	}
	return idx.PostlToLabel[idx.PrelToPostl[prel]], true
}

// Baseline computes the tree edit distance between t1 and t2 from scratch, establishing the
// cache that [Driver.Update], [Driver.UpdateT1] and [Driver.UpdateT2] build on.
func (d *Driver[L]) Baseline(t1, t2 *tree.Node[L]) (float64, error) {
	start := time.Now()

	t1idx := treeindex.Build(t1, &d.dict)
	t2idx := treeindex.Build(t2, &d.dict)
	res, k := d.retryTedK(t1idx, t2idx)

	d.t1, d.t2 = t1idx, t2idx
	d.crossMatrix, d.crossK, d.distance = res.Matrix, k, res.Distance

	d.Stats = Stats{
		Kind:        KindBaseline,
		Subproblems: res.Subproblems,
		K:           d.crossK,
		Elapsed:     time.Since(start),
	}
	return res.Distance, nil
}

func buildPreserved[L comparable](retain bracket.Retain, oldIdx, newIdx *treeindex.Index[L], selfMatrix *bandmatrix.Matrix) touzet.Preserved {
	preserved := touzet.Preserved{}
	if selfMatrix == nil {
		return preserved
	}
	for newPrel, oldPrel := range retain {
		newPostl := newIdx.PrelToPostl[newPrel]
		oldPostl := oldIdx.PrelToPostl[oldPrel]
		if selfMatrix.ReadAt(oldPostl, newPostl) == 0 {
			preserved[newPostl] = oldPostl
		}
	}
	return preserved
}

// Update recomputes the tree edit distance after both trees may have changed. t1Retain and
// t2Retain are the [bracket.Retain] maps [bracket.ParseIncremental] produced when parsing the new
// versions of t1 and t2, and let Update recognize subtrees that survived unchanged.
func (d *Driver[L]) Update(t1, t2 *tree.Node[L], t1Retain, t2Retain bracket.Retain) (float64, error) {
	if d.t1 == nil {
		return 0, ErrNoBaseline
	}

	newT1 := treeindex.Build(t1, &d.dict)
	newT2 := treeindex.Build(t2, &d.dict)

	t1Start := time.Now()
	t1Res, _ := d.retryTedK(d.t1, newT1)
	t1Elapsed := time.Since(t1Start)
	t1Preserved := buildPreserved(t1Retain, d.t1, newT1, t1Res.Matrix)

	t2Start := time.Now()
	t2Res, _ := d.retryTedK(d.t2, newT2)
	t2Elapsed := time.Since(t2Start)
	t2Preserved := buildPreserved(t2Retain, d.t2, newT2, t2Res.Matrix)

	t1Same := t1Res.Distance == 0
	t2Same := t2Res.Distance == 0

	k := int(math.Ceil(t1Res.Distance + t2Res.Distance + d.distance))

	crossStart := time.Now()
	var res touzet.Result
	if t1Same && t2Same {
		res = touzet.Result{Distance: d.distance, Matrix: d.crossMatrix}
	} else {
		res = touzet.DynamicTedK(newT1, newT2, d.cm, k, d.crossMatrix, d.crossK, t1Preserved, t2Preserved, t1Same, t2Same)
	}
	crossElapsed := time.Since(crossStart)

	d.t1, d.t2 = newT1, newT2
	if !t1Same || !t2Same {
		d.crossMatrix, d.crossK = res.Matrix, k
	}
	d.distance = res.Distance

	d.Stats = Stats{
		Kind:          KindUpdate,
		Subproblems:   res.Subproblems,
		T1Distance:    t1Res.Distance,
		T2Distance:    t2Res.Distance,
		T1Subproblems: t1Res.Subproblems,
		T2Subproblems: t2Res.Subproblems,
		T1Elapsed:     t1Elapsed,
		T2Elapsed:     t2Elapsed,
		Hit:           res.Hit,
		Missed:        res.Missed,
		K:             k,
		Elapsed:       crossElapsed,
	}
	return res.Distance, nil
}

// UpdateT1 recomputes the tree edit distance after only t1 changed; t2 is assumed identical to
// the tree passed to the previous call.
func (d *Driver[L]) UpdateT1(t1 *tree.Node[L], t1Retain bracket.Retain) (float64, error) {
	if d.t1 == nil {
		return 0, ErrNoBaseline
	}

	newT1 := treeindex.Build(t1, &d.dict)

	start := time.Now()
	t1Res, _ := d.retryTedK(d.t1, newT1)
	t1Elapsed := time.Since(start)
	t1Preserved := buildPreserved(t1Retain, d.t1, newT1, t1Res.Matrix)

	t1Same := t1Res.Distance == 0
	k := int(math.Ceil(t1Res.Distance + d.distance))

	crossStart := time.Now()
	var res touzet.Result
	if t1Same {
		res = touzet.Result{Distance: d.distance, Matrix: d.crossMatrix}
	} else {
		res = touzet.DynamicTedK(newT1, d.t2, d.cm, k, d.crossMatrix, d.crossK, t1Preserved, nil, false, true)
	}
	crossElapsed := time.Since(crossStart)

	d.t1 = newT1
	if !t1Same {
		d.crossMatrix, d.crossK = res.Matrix, k
	}
	d.distance = res.Distance

	d.Stats = Stats{
		Kind:          KindUpdateT1,
		Subproblems:   res.Subproblems,
		T1Distance:    t1Res.Distance,
		T1Subproblems: t1Res.Subproblems,
		T1Elapsed:     t1Elapsed,
		Hit:           res.Hit,
		Missed:        res.Missed,
		K:             k,
		Elapsed:       crossElapsed,
	}
	return res.Distance, nil
}

// UpdateT2 recomputes the tree edit distance after only t2 changed; t1 is assumed identical to
// the tree passed to the previous call.
func (d *Driver[L]) UpdateT2(t2 *tree.Node[L], t2Retain bracket.Retain) (float64, error) {
	if d.t2 == nil {
		return 0, ErrNoBaseline
	}

	newT2 := treeindex.Build(t2, &d.dict)

	start := time.Now()
	t2Res, _ := d.retryTedK(d.t2, newT2)
	t2Elapsed := time.Since(start)
	t2Preserved := buildPreserved(t2Retain, d.t2, newT2, t2Res.Matrix)

	t2Same := t2Res.Distance == 0
	k := int(math.Ceil(t2Res.Distance + d.distance))

	crossStart := time.Now()
	var res touzet.Result
	if t2Same {
		res = touzet.Result{Distance: d.distance, Matrix: d.crossMatrix}
	} else {
		res = touzet.DynamicTedK(d.t1, newT2, d.cm, k, d.crossMatrix, d.crossK, nil, t2Preserved, true, false)
	}
	crossElapsed := time.Since(crossStart)

	d.t2 = newT2
	if !t2Same {
		d.crossMatrix, d.crossK = res.Matrix, k
	}
	d.distance = res.Distance

	d.Stats = Stats{
		Kind:          KindUpdateT2,
		Subproblems:   res.Subproblems,
		T2Distance:    t2Res.Distance,
		T2Subproblems: t2Res.Subproblems,
		T2Elapsed:     t2Elapsed,
		Hit:           res.Hit,
		Missed:        res.Missed,
		K:             k,
		Elapsed:       crossElapsed,
	}
	return res.Distance, nil
}
