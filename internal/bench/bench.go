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

// Package bench compares the cost of recomputing a tree edit distance from scratch against
// recomputing it incrementally from a cached previous run, over fixture sequences of tree
// versions loaded from txtar archives.
package bench

import (
	"fmt"
	"path/filepath"

	"golang.org/x/tools/txtar"
	"stacey.dev/ted"
	"stacey.dev/ted/bracket"
	"stacey.dev/ted/cost"
)

// Version is one step of a bench.Sequence: the bracketed-text form of tree 1 and/or tree 2 at
// this point in time. Either may be empty, meaning that side didn't change from the previous
// version (mirroring the blank-line convention in [stacey.dev/ted/cmd/ted]).
type Version struct {
	T1, T2 string
}

// Sequence is a named list of tree versions loaded from one txtar archive: Versions[0] is the
// baseline pair, and every later entry is an incremental update.
type Sequence struct {
	Name     string
	Versions []Version
}

// LoadSequences reads every "*.txtar" archive in dir into a [Sequence]. Each archive's files are
// named "t1.0", "t2.0", "t1.1", "t2.1", and so on; a missing file at a given step means that side
// is unchanged for that step.
func LoadSequences(dir string) ([]Sequence, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}
	var seqs []Sequence
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		files := map[string]string{}
		for _, f := range ar.Files {
			files[f.Name] = string(f.Data)
		}
		var versions []Version
		for i := 0; ; i++ {
			t1, ok1 := files[fmt.Sprintf("t1.%d", i)]
			t2, ok2 := files[fmt.Sprintf("t2.%d", i)]
			if !ok1 && !ok2 {
				break
			}
			versions = append(versions, Version{T1: t1, T2: t2})
		}
		if len(versions) == 0 {
			return nil, fmt.Errorf("%s: no t1.0/t2.0 files found", path)
		}
		seqs = append(seqs, Sequence{Name: filepath.Base(path), Versions: versions})
	}
	return seqs, nil
}

// Result summarizes running a [Sequence] one way: total subproblems spent across every step, and
// the final distance, for cross-checking that baseline and incremental replay agree.
type Result struct {
	Subproblems   int64
	FinalDistance float64
}

func parseLabel(s string) string { return s }

// RunIncremental replays seq through one [ted.Driver], using [ted.Driver.Update],
// [ted.Driver.UpdateT1] or [ted.Driver.UpdateT2] for every version after the first.
func RunIncremental(seq Sequence) (Result, error) {
	d := ted.NewDriver[string](cost.Unit[string]{})

	t1, err := bracket.Parse(seq.Versions[0].T1, parseLabel)
	if err != nil {
		return Result{}, fmt.Errorf("%s: parsing initial t1: %w", seq.Name, err)
	}
	t2, err := bracket.Parse(seq.Versions[0].T2, parseLabel)
	if err != nil {
		return Result{}, fmt.Errorf("%s: parsing initial t2: %w", seq.Name, err)
	}
	distance, err := d.Baseline(t1, t2)
	if err != nil {
		return Result{}, fmt.Errorf("%s: baseline: %w", seq.Name, err)
	}
	var total int64 = d.Stats.Subproblems

	for i := 1; i < len(seq.Versions); i++ {
		v := seq.Versions[i]
		switch {
		case v.T1 != "" && v.T2 != "":
			newT1, r1, err := bracket.ParseIncremental(v.T1, parseLabel, d.T1Label)
			if err != nil {
				return Result{}, fmt.Errorf("%s: step %d: parsing t1: %w", seq.Name, i, err)
			}
			newT2, r2, err := bracket.ParseIncremental(v.T2, parseLabel, d.T2Label)
			if err != nil {
				return Result{}, fmt.Errorf("%s: step %d: parsing t2: %w", seq.Name, i, err)
			}
			distance, err = d.Update(newT1, newT2, r1, r2)
		case v.T1 != "":
			newT1, r1, perr := bracket.ParseIncremental(v.T1, parseLabel, d.T1Label)
			if perr != nil {
				return Result{}, fmt.Errorf("%s: step %d: parsing t1: %w", seq.Name, i, perr)
			}
			distance, err = d.UpdateT1(newT1, r1)
		case v.T2 != "":
			newT2, r2, perr := bracket.ParseIncremental(v.T2, parseLabel, d.T2Label)
			if perr != nil {
				return Result{}, fmt.Errorf("%s: step %d: parsing t2: %w", seq.Name, i, perr)
			}
			distance, err = d.UpdateT2(newT2, r2)
		default:
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("%s: step %d: %w", seq.Name, i, err)
		}
		total += d.Stats.Subproblems + d.Stats.T1Subproblems + d.Stats.T2Subproblems
	}

	return Result{Subproblems: total, FinalDistance: distance}, nil
}

// RunBaseline replays seq by calling [ted.Driver.Baseline] from scratch at every step, ignoring
// the retain annotations entirely. This is the "no caching" comparison point for RunIncremental.
func RunBaseline(seq Sequence) (Result, error) {
	var total int64
	var distance float64
	var lastT1, lastT2 string

	for i, v := range seq.Versions {
		t1Src, t2Src := v.T1, v.T2
		if t1Src == "" {
			t1Src = lastT1
		}
		if t2Src == "" {
			t2Src = lastT2
		}
		lastT1, lastT2 = t1Src, t2Src

		// bracket.Parse skips a '[old_prel]' annotation syntactically without assigning it any
		// meaning, so it can read these fixtures' retain annotations without building a Retain map.
		t1, err := bracket.Parse(t1Src, parseLabel)
		if err != nil {
			return Result{}, fmt.Errorf("%s: step %d: parsing t1: %w", seq.Name, i, err)
		}
		t2, err := bracket.Parse(t2Src, parseLabel)
		if err != nil {
			return Result{}, fmt.Errorf("%s: step %d: parsing t2: %w", seq.Name, i, err)
		}

		d := ted.NewDriver[string](cost.Unit[string]{})
		distance, err = d.Baseline(t1, t2)
		if err != nil {
			return Result{}, fmt.Errorf("%s: step %d: baseline: %w", seq.Name, i, err)
		}
		total += d.Stats.Subproblems
	}

	return Result{Subproblems: total, FinalDistance: distance}, nil
}
