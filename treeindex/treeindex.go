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

// Package treeindex builds the flattened, array-based representation of a [stacey.dev/ted/tree.Node]
// that the Touzet tree distance algorithm operates over: preorder and postorder numberings, the
// leftmost leaf descendant of every node, subtree sizes and depths, and the keyroot set. Building
// the index once up front means the distance algorithm itself never has to walk pointers.
package treeindex

import "stacey.dev/ted/tree"

// LabelDictionary interns labels of type L into small contiguous integers, which [Build] records
// in Index.PostlToLabelID. The distance algorithm in this module does not read these ids: it
// compares labels by passing the original L values to the cost model. The zero value is ready to
// use.
type LabelDictionary[L comparable] struct {
	ids map[L]int32
}

// Intern returns the integer id for label, assigning it the next unused id on first sight.
func (d *LabelDictionary[L]) Intern(label L) int32 {
	if d.ids == nil {
		d.ids = make(map[L]int32)
	}
	if id, ok := d.ids[label]; ok {
		return id
	}
	id := int32(len(d.ids))
	d.ids[label] = id
	return id
}

// Index is the flattened representation of a tree, indexed by postorder position (the "postl"
// numbering used throughout the tree edit distance literature). Every slice except Keyroots has
// length Size.
type Index[L comparable] struct {
	Size int

	// PostlToPrel and PrelToPostl convert between the postorder and preorder numberings of the
	// same n nodes.
	PostlToPrel []int
	PrelToPostl []int

	// PostlToLabel and PostlToLabelID give the original and interned label of the node at each
	// postorder position.
	PostlToLabel   []L
	PostlToLabelID []int32

	// LeftLeaf holds, for each postorder position x, the postorder position of the leftmost leaf
	// descendant of the node at x (a leaf is its own leftmost leaf descendant).
	LeftLeaf []int

	// SubtreeSize holds the number of nodes in the subtree rooted at each postorder position.
	SubtreeSize []int

	// Depth holds the number of edges from the root to each postorder position.
	Depth []int

	// Parent holds the postorder position of the parent of each postorder position, or -1 for the
	// root.
	Parent []int

	// Keyroots lists the postorder positions that are keyroots: the root, and every node that has
	// a left sibling. Keyroots are listed in increasing postorder order, which is also a valid
	// processing order for the classic forest-distance recurrence.
	Keyroots []int
}

// IsLeaf reports whether the node at postorder position x has no children.
func (idx *Index[L]) IsLeaf(x int) bool {
	return idx.LeftLeaf[x] == x
}

// Build flattens root into an [Index], interning every label through dict so that indexes built
// from different trees but sharing a dictionary can compare labels by integer id.
func Build[L comparable](root *tree.Node[L], dict *LabelDictionary[L]) *Index[L] {
	n := root.Size()
	idx := &Index[L]{
		Size:           n,
		PostlToPrel:    make([]int, n),
		PrelToPostl:    make([]int, n),
		PostlToLabel:   make([]L, n),
		PostlToLabelID: make([]int32, n),
		LeftLeaf:       make([]int, n),
		SubtreeSize:    make([]int, n),
		Depth:          make([]int, n),
		Parent:         make([]int, n),
	}

	prel := 0
	postl := 0
	var visit func(n *tree.Node[L], depth int) (leftLeaf, size, selfPostl int)
	visit = func(n *tree.Node[L], depth int) (int, int, int) {
		myPrel := prel
		prel++

		size := 1
		leftLeaf := -1
		var childPostls []int
		for _, c := range n.Children {
			cLeftLeaf, cSize, cPostl := visit(c, depth+1)
			if leftLeaf == -1 {
				leftLeaf = cLeftLeaf
			}
			size += cSize
			childPostls = append(childPostls, cPostl)
		}

		myPostl := postl
		postl++

		idx.PostlToPrel[myPostl] = myPrel
		idx.PrelToPostl[myPrel] = myPostl
		idx.PostlToLabel[myPostl] = n.Label
		idx.PostlToLabelID[myPostl] = dict.Intern(n.Label)
		idx.SubtreeSize[myPostl] = size
		idx.Depth[myPostl] = depth
		for _, cp := range childPostls {
			idx.Parent[cp] = myPostl
		}

		if leftLeaf == -1 {
			leftLeaf = myPostl // this node is a leaf
		}
		idx.LeftLeaf[myPostl] = leftLeaf

		return leftLeaf, size, myPostl
	}
	_, _, rootPostl := visit(root, 0)
	idx.Parent[rootPostl] = -1

	idx.Keyroots = keyroots(idx)
	return idx
}

func keyroots[L comparable](idx *Index[L]) []int {
	// A node is a keyroot if it is the root or has a left sibling. Equivalently: it is the root,
	// or its leftmost leaf descendant differs from its parent's leftmost leaf descendant.
	var ks []int
	for x := 0; x < idx.Size; x++ {
		p := idx.Parent[x]
		if p == -1 || idx.LeftLeaf[x] != idx.LeftLeaf[p] {
			ks = append(ks, x)
		}
	}
	return ks
}
