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

// ted is a REPL-style command line tool that drives a [stacey.dev/ted.Driver] from stdin.
//
// The first line of stdin is the path to tree 1's bracketed-text file, and the second is tree
// 2's; ted parses both, computes the baseline distance, and prints a report line. Every pair of
// lines after that is treated as an incremental update: either path may be left blank (an empty
// line) to mean "this tree is unchanged", and a non-blank path is parsed with
// [stacey.dev/ted/bracket.ParseIncremental] so that '[old_prel]' annotations can mark retained
// subtrees. ted exits when both lines of a pair are blank or stdin is exhausted.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"stacey.dev/ted"
	"stacey.dev/ted/bracket"
	"stacey.dev/ted/cost"
	"stacey.dev/ted/tree"
)

// errMissingInitialTrees is returned by run when stdin doesn't supply both initial tree paths; it
// exits with status 1, distinct from the status 2 used for parse and other operational errors.
var errMissingInitialTrees = errors.New("first two lines must be the paths to tree 1 and tree 2")

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		if errors.Is(err, errMissingInitialTrees) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func run(stdin *os.File, stdout, stderr *os.File) error {
	sc := bufio.NewScanner(stdin)

	t1Path, ok1 := readLine(sc)
	t2Path, ok2 := readLine(sc)
	if !ok1 || !ok2 || t1Path == "" || t2Path == "" {
		return errMissingInitialTrees
	}

	t1Src, err := os.ReadFile(t1Path)
	if err != nil {
		return fmt.Errorf("reading tree 1: %w", err)
	}
	t2Src, err := os.ReadFile(t2Path)
	if err != nil {
		return fmt.Errorf("reading tree 2: %w", err)
	}

	t1, err := bracket.Parse(string(t1Src), label)
	if err != nil {
		return fmt.Errorf("parsing tree 1: %w", err)
	}
	t2, err := bracket.Parse(string(t2Src), label)
	if err != nil {
		return fmt.Errorf("parsing tree 2: %w", err)
	}

	d := ted.NewDriver[string](cost.Unit[string]{})

	distance, err := d.Baseline(t1, t2)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	fmt.Fprintln(stdout, "Instance: Distance, Subproblems, Time (ms), Hit, Missed")
	printBaseline(stdout, distance, d.Stats)

	for {
		p1, ok1 := readLine(sc)
		if !ok1 {
			return nil
		}
		p2, ok2 := readLine(sc)
		if !ok2 {
			return nil
		}
		if p1 == "" && p2 == "" {
			return nil
		}

		var err error
		distance, err = applyUpdate(d, p1, p2)
		if err != nil {
			return err
		}
		printUpdate(stdout, stderr, distance, d.Stats)
	}
}

func applyUpdate(d *ted.Driver[string], p1, p2 string) (float64, error) {
	switch {
	case p1 != "" && p2 != "":
		t1, r1, err := parseIncrementalFile(p1, d.T1Label)
		if err != nil {
			return 0, err
		}
		t2, r2, err := parseIncrementalFile(p2, d.T2Label)
		if err != nil {
			return 0, err
		}
		return d.Update(t1, t2, r1, r2)
	case p1 != "":
		t1, r1, err := parseIncrementalFile(p1, d.T1Label)
		if err != nil {
			return 0, err
		}
		return d.UpdateT1(t1, r1)
	case p2 != "":
		t2, r2, err := parseIncrementalFile(p2, d.T2Label)
		if err != nil {
			return 0, err
		}
		return d.UpdateT2(t2, r2)
	default:
		return 0, fmt.Errorf("neither tree changed")
	}
}

func parseIncrementalFile(path string, lookup func(int) (string, bool)) (root *tree.Node[string], retain bracket.Retain, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, retain, err = bracket.ParseIncremental(string(src), label, lookup)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, retain, nil
}

func readLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return sc.Text(), true
}

func label(s string) string { return s }

func printBaseline(w *os.File, distance float64, s ted.Stats) {
	fmt.Fprintf(w, "Baseline: %v %d %dms\n", distance, s.Subproblems, s.Elapsed.Milliseconds())
}

func printUpdate(w, errw *os.File, distance float64, s ted.Stats) {
	fmt.Fprintf(w, "T1 Preprocessing: %v %d %dms\n", s.T1Distance, s.T1Subproblems, s.T1Elapsed.Milliseconds())
	fmt.Fprintf(w, "T2 Preprocessing: %v %d %dms\n", s.T2Distance, s.T2Subproblems, s.T2Elapsed.Milliseconds())
	fmt.Fprintf(w, "Dynamic Touzet: %v %d %dms %d %d\n", distance, s.Subproblems, s.Elapsed.Milliseconds(), s.Hit, s.Missed)
	if s.Hit+s.Missed > 0 {
		fmt.Fprintf(errw, "Hit %.1f%% of subtree pairs\n", s.HitRate()*100)
	}
}
