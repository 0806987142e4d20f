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

// Package bracket parses and serializes the bracketed tree text format used throughout this
// module's tests and command-line tool:
//
//	tree       := node
//	node       := '{' preamble child* '}'
//	preamble   := annotation? label?
//	annotation := '[' digits ']'        // incremental mode only; ignored by [Parse]
//	label      := '(' char*-except-')' ')'
//
// Whitespace outside '(...)' and '[...]' is not significant. [Parse] reads the baseline form and
// ignores any annotation present (a label is required on every node). [ParseIncremental]
// additionally gives the '[old_prel]' annotation meaning: it marks a node as descended from the
// node at that preorder index in whatever tree was indexed previously, and the returned [Retain]
// map lets [stacey.dev/ted.Driver] find which subtrees survived unchanged between two parses. A
// node with an annotation but no label has its label resolved through the lookup function
// instead, so callers don't need to repeat the text of labels that didn't change.
package bracket

import (
	"fmt"
	"strconv"
	"strings"

	"stacey.dev/ted/tree"
)

// Retain maps a new node's preorder index to the preorder index of the node it was annotated as
// retained from. It is produced by [ParseIncremental] and consumed by [stacey.dev/ted.Driver].
type Retain map[int]int

// span reads up to the next occurrence of close starting at src[pos]. It returns the content
// between pos and the match, and the index just past close.
func span(src string, pos int, close byte) (content string, next int, ok bool) {
	end := strings.IndexByte(src[pos:], close)
	if end < 0 {
		return "", 0, false
	}
	return src[pos : pos+end], pos + end + 1, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func skipSpace(src string, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

func trailingCheck(src string, pos int) error {
	for ; pos < len(src); pos++ {
		if !isSpace(src[pos]) {
			return fmt.Errorf("%w: unexpected %q at byte %d", ErrTrailingInput, src[pos], pos)
		}
	}
	return nil
}

// Parse parses the baseline bracketed-tree form into a tree, translating each label's literal
// text with parseLabel. Any '[...]' annotation present is skipped without being interpreted.
func Parse[L comparable](src string, parseLabel func(string) L) (*tree.Node[L], error) {
	pos := skipSpace(src, 0)
	if pos >= len(src) || src[pos] != '{' {
		return nil, fmt.Errorf("%w: expected '{' at byte %d", ErrUnmatchedBracket, pos)
	}
	root, pos, err := parseNode(src, pos, parseLabel)
	if err != nil {
		return nil, err
	}
	if err := trailingCheck(src, pos); err != nil {
		return nil, err
	}
	return root, nil
}

// parseNode parses one node starting at src[pos] == '{' and returns it along with the index just
// past its matching '}'.
func parseNode[L comparable](src string, pos int, parseLabel func(string) L) (*tree.Node[L], int, error) {
	pos++ // consume '{'
	pos = skipSpace(src, pos)

	if pos < len(src) && src[pos] == '[' {
		_, next, ok := span(src, pos+1, ']')
		if !ok {
			return nil, 0, fmt.Errorf("%w: unterminated annotation at byte %d", ErrUnmatchedBracket, pos)
		}
		pos = skipSpace(src, next)
	}

	if pos >= len(src) || src[pos] != '(' {
		return nil, 0, fmt.Errorf("%w: missing label at byte %d", ErrMissingLabel, pos)
	}
	raw, pos, ok := span(src, pos+1, ')')
	if !ok {
		return nil, 0, fmt.Errorf("%w: unterminated label at byte %d", ErrUnmatchedBracket, pos)
	}
	node := tree.New(parseLabel(raw))

	for {
		pos = skipSpace(src, pos)
		if pos >= len(src) {
			return nil, 0, fmt.Errorf("%w: unterminated node", ErrUnmatchedBracket)
		}
		if src[pos] == '}' {
			return node, pos + 1, nil
		}
		if src[pos] != '{' {
			return nil, 0, fmt.Errorf("%w: unexpected %q at byte %d", ErrUnmatchedBracket, src[pos], pos)
		}
		child, next, err := parseNode(src, pos, parseLabel)
		if err != nil {
			return nil, 0, err
		}
		node.Children = append(node.Children, child)
		pos = next
	}
}

// ParseIncremental parses the annotated bracketed-tree form into a tree and a [Retain] map.
func ParseIncremental[L comparable](src string, parseLabel func(string) L, lookup func(oldPrel int) (L, bool)) (*tree.Node[L], Retain, error) {
	retain := Retain{}
	pos := skipSpace(src, 0)
	if pos >= len(src) || src[pos] != '{' {
		return nil, nil, fmt.Errorf("%w: expected '{' at byte %d", ErrUnmatchedBracket, pos)
	}
	newPrel := 0
	root, pos, err := parseIncNode(src, pos, parseLabel, lookup, retain, &newPrel)
	if err != nil {
		return nil, nil, err
	}
	if err := trailingCheck(src, pos); err != nil {
		return nil, nil, err
	}
	return root, retain, nil
}

func parseIncNode[L comparable](src string, pos int, parseLabel func(string) L, lookup func(int) (L, bool), retain Retain, newPrel *int) (*tree.Node[L], int, error) {
	myPrel := *newPrel
	*newPrel++

	pos++ // consume '{'
	pos = skipSpace(src, pos)

	var oldPrel int
	haveOld := false
	if pos < len(src) && src[pos] == '[' {
		raw, next, ok := span(src, pos+1, ']')
		if !ok {
			return nil, 0, fmt.Errorf("%w: unterminated annotation at byte %d", ErrUnmatchedBracket, pos)
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, 0, fmt.Errorf("%w: %q at byte %d", ErrInvalidAnnotation, raw, pos)
		}
		oldPrel, haveOld, pos = v, true, next
		pos = skipSpace(src, pos)
	}

	var label L
	haveLabel := false
	if pos < len(src) && src[pos] == '(' {
		raw, next, ok := span(src, pos+1, ')')
		if !ok {
			return nil, 0, fmt.Errorf("%w: unterminated label at byte %d", ErrUnmatchedBracket, pos)
		}
		label, haveLabel, pos = parseLabel(raw), true, next
	}

	if haveOld {
		retain[myPrel] = oldPrel
		if !haveLabel {
			l, ok := lookup(oldPrel)
			if !ok {
				return nil, 0, fmt.Errorf("%w: no lookup entry for old_prel %d", ErrMissingLabel, oldPrel)
			}
			label, haveLabel = l, true
		}
	}
	if !haveLabel {
		return nil, 0, fmt.Errorf("%w: missing label at byte %d (new_prel=%d)", ErrMissingLabel, pos, myPrel)
	}

	node := tree.New(label)
	for {
		pos = skipSpace(src, pos)
		if pos >= len(src) {
			return nil, 0, fmt.Errorf("%w: unterminated node", ErrUnmatchedBracket)
		}
		if src[pos] == '}' {
			return node, pos + 1, nil
		}
		if src[pos] != '{' {
			return nil, 0, fmt.Errorf("%w: unexpected %q at byte %d", ErrUnmatchedBracket, src[pos], pos)
		}
		child, next, err := parseIncNode(src, pos, parseLabel, lookup, retain, newPrel)
		if err != nil {
			return nil, 0, err
		}
		node.Children = append(node.Children, child)
		pos = next
	}
}

// Serialize renders a tree back into the baseline bracketed-tree form (no annotations), using
// formatLabel to render each label's literal text. Serialize followed by Parse with inverse
// label functions reproduces the original tree; this is the parser round-trip property.
func Serialize[L comparable](root *tree.Node[L], formatLabel func(L) string) string {
	var b strings.Builder
	writeNode(&b, root, formatLabel)
	return b.String()
}

func writeNode[L comparable](b *strings.Builder, n *tree.Node[L], formatLabel func(L) string) {
	b.WriteByte('{')
	b.WriteByte('(')
	b.WriteString(formatLabel(n.Label))
	b.WriteByte(')')
	for _, c := range n.Children {
		writeNode(b, c, formatLabel)
	}
	b.WriteByte('}')
}
