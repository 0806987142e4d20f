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

// Package ted computes the tree edit distance (TED) between two ordered, labeled trees and
// supports an incremental mode that reuses previously computed subtree-pair distances when a
// tree's successor shares structurally identical subtrees with its predecessor.
//
// The main type is [Driver], which holds the cache a single incremental session needs. Use
// [NewDriver] to create one, [Driver.Baseline] to compute a first distance from scratch, and
// [Driver.Update], [Driver.UpdateT1] or [Driver.UpdateT2] to recompute the distance after one or
// both trees change.
//
// Trees are built with [stacey.dev/ted/bracket], which parses the bracketed text format described
// in that package's documentation and, in incremental mode, produces the retain map the driver
// needs to find preserved subtrees.
//
// Performance: [Driver.Baseline] searches with a distance threshold k that starts at |n1-n2|+1
// and is multiplied by 4 (by default) after every attempt that fails. Each attempt computes the
// full Zhang-Shasha forest-distance table for the pair, so its cost does not shrink with k; k
// decides only whether the attempt counts as found and which subproblem distances are kept for
// later calls. The cross-tree pass of an incremental call bounds k by the triangle inequality
// using the previous distance, so it never retries; the passes that compare each tree with its
// previous version use the same escalating search as Baseline.
//
// [stacey.dev/ted/bracket]: https://pkg.go.dev/stacey.dev/ted/bracket
package ted
