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

// Package tree defines the in-memory representation of a rooted, ordered, labeled tree.
//
// A Label can be any comparable type; the caller's [stacey.dev/ted/cost.Model] decides what
// equality and renaming mean for it. Nodes own their children, so a tree is freed by the garbage
// collector like any other Go value graph; there is no separate arena or handle table.
package tree

// Node is one node of a rooted, ordered, labeled tree. The zero value is a single-node tree with
// the zero value of L as its label.
type Node[L comparable] struct {
	Label    L
	Children []*Node[L]
}

// New returns a leaf node with the given label.
func New[L comparable](label L) *Node[L] {
	return &Node[L]{Label: label}
}

// AddChild appends a new child with the given label and returns it, so that callers can chain
// into the returned node to build a tree top-down.
func (n *Node[L]) AddChild(label L) *Node[L] {
	child := New(label)
	n.Children = append(n.Children, child)
	return child
}

// Size returns the number of nodes in the subtree rooted at n, including n itself.
func (n *Node[L]) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}
