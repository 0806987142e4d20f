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
	"testing"

	"stacey.dev/ted/bracket"
	"stacey.dev/ted/cost"
	"stacey.dev/ted/tree"
)

func parseOrFatal(t *testing.T, src string) *tree.Node[string] {
	t.Helper()
	root, err := bracket.Parse(src, func(s string) string { return s })
	if err != nil {
		t.Fatalf("bracket.Parse(%q) = %v", src, err)
	}
	return root
}

func TestDriverBaselineIdentity(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}{(c)}}")
	t2 := parseOrFatal(t, "{(a){(b)}{(c)}}")

	dist, err := d.Baseline(t1, t2)
	if err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}
	if dist != 0 {
		t.Errorf("Baseline = %v, want 0", dist)
	}
}

func TestDriverBaselineSingleRelabel(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}{(c)}}")
	t2 := parseOrFatal(t, "{(a){(x)}{(c)}}")

	dist, err := d.Baseline(t1, t2)
	if err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}
	if dist != 1 {
		t.Errorf("Baseline = %v, want 1", dist)
	}
}

func TestDriverUpdateBeforeBaselineErrors(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a)}")
	t2 := parseOrFatal(t, "{(a)}")
	if _, err := d.Update(t1, t2, bracket.Retain{}, bracket.Retain{}); err != ErrNoBaseline {
		t.Errorf("Update before Baseline = %v, want ErrNoBaseline", err)
	}
	if _, err := d.UpdateT1(t1, bracket.Retain{}); err != ErrNoBaseline {
		t.Errorf("UpdateT1 before Baseline = %v, want ErrNoBaseline", err)
	}
	if _, err := d.UpdateT2(t2, bracket.Retain{}); err != ErrNoBaseline {
		t.Errorf("UpdateT2 before Baseline = %v, want ErrNoBaseline", err)
	}
}

func TestDriverUpdateT1UnchangedPair(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}}")
	t2 := parseOrFatal(t, "{(a){(c)}}")
	base, err := d.Baseline(t1, t2)
	if err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}

	// Re-submit t1 unchanged, every node retained from itself; the omitted labels are resolved
	// through d.T1Label, the same way a real caller would.
	newT1, retain, err := bracket.ParseIncremental("{[0]{[1]}}", func(s string) string { return s }, d.T1Label)
	if err != nil {
		t.Fatalf("ParseIncremental = _, _, %v", err)
	}

	dist, err := d.UpdateT1(newT1, retain)
	if err != nil {
		t.Fatalf("UpdateT1 = _, %v", err)
	}
	if dist != base {
		t.Errorf("UpdateT1(unchanged) = %v, want %v (unchanged from baseline)", dist, base)
	}
	if d.Stats.T1Distance != 0 {
		t.Errorf("Stats.T1Distance = %v, want 0 for an unchanged tree", d.Stats.T1Distance)
	}
}

func TestDriverUpdateT1Relabel(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}}")
	t2 := parseOrFatal(t, "{(a){(b)}}")
	if _, err := d.Baseline(t1, t2); err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}

	// t1's child "b" is relabeled to "z"; "a" is retained from its old position.
	newT1, retain, err := bracket.ParseIncremental("{[0]{(z)}}", func(s string) string { return s }, d.T1Label)
	if err != nil {
		t.Fatalf("ParseIncremental = _, _, %v", err)
	}

	dist, err := d.UpdateT1(newT1, retain)
	if err != nil {
		t.Fatalf("UpdateT1 = _, %v", err)
	}
	if dist != 1 {
		t.Errorf("UpdateT1(relabel) = %v, want 1", dist)
	}
	if d.Stats.T1Distance != 1 {
		t.Errorf("Stats.T1Distance = %v, want 1 (one rename)", d.Stats.T1Distance)
	}
}

func TestDriverUpdateT2Insert(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}}")
	t2 := parseOrFatal(t, "{(a){(b)}}")
	if _, err := d.Baseline(t1, t2); err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}

	// t2 grows a new child "c"; "a" and "b" are retained from their old positions.
	newT2, retain, err := bracket.ParseIncremental("{[0]{[1]}{(c)}}", func(s string) string { return s }, d.T2Label)
	if err != nil {
		t.Fatalf("ParseIncremental = _, _, %v", err)
	}

	dist, err := d.UpdateT2(newT2, retain)
	if err != nil {
		t.Fatalf("UpdateT2 = _, %v", err)
	}
	if dist != 1 {
		t.Errorf("UpdateT2(insert) = %v, want 1", dist)
	}
	if d.Stats.Kind != KindUpdateT2 {
		t.Errorf("Stats.Kind = %v, want %v", d.Stats.Kind, KindUpdateT2)
	}
}

func TestDriverUpdateBothChange(t *testing.T) {
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}}")
	t2 := parseOrFatal(t, "{(a){(x)}}")
	if _, err := d.Baseline(t1, t2); err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}

	// t1 gains a sibling "d"; t2's "x" becomes "y".
	newT1, t1Retain, err := bracket.ParseIncremental("{[0]{[1]}{(d)}}", func(s string) string { return s }, d.T1Label)
	if err != nil {
		t.Fatalf("ParseIncremental(t1) = _, _, %v", err)
	}
	newT2, t2Retain, err := bracket.ParseIncremental("{[0]{(y)}}", func(s string) string { return s }, d.T2Label)
	if err != nil {
		t.Fatalf("ParseIncremental(t2) = _, _, %v", err)
	}

	dist, err := d.Update(newT1, newT2, t1Retain, t2Retain)
	if err != nil {
		t.Fatalf("Update = _, %v", err)
	}
	// t1 vs t2 is now {a{b}{d}} vs {a{y}}: rename b->y (or d->y) plus delete the other, distance 2.
	if dist != 2 {
		t.Errorf("Update = %v, want 2", dist)
	}
	if d.Stats.Kind != KindUpdate {
		t.Errorf("Stats.Kind = %v, want %v", d.Stats.Kind, KindUpdate)
	}
}

func TestDriverRetryEscalation(t *testing.T) {
	// A large unit-cost distance forces the escalating retry loop to run more than once: two
	// five-node trees of the same shape that share no label, so the initial threshold
	// |n1-n2|+1 == 1 fails, the next one (4) fails too, and the search succeeds at 16.
	d := NewDriver[string](cost.Unit[string]{})
	t1 := parseOrFatal(t, "{(a){(b)}{(c)}{(d)}{(e)}}")
	t2 := parseOrFatal(t, "{(v){(w)}{(x)}{(y)}{(z)}}")

	dist, err := d.Baseline(t1, t2)
	if err != nil {
		t.Fatalf("Baseline = _, %v", err)
	}
	if dist != 5 {
		t.Errorf("Baseline = %v, want 5 (every label differs)", dist)
	}
	if d.Stats.K < int(dist) {
		t.Errorf("Stats.K = %d, want >= distance %v", d.Stats.K, dist)
	}
}
