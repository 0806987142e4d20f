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

package bracket

import (
	"errors"
	"testing"

	"stacey.dev/ted/tree"
)

func identity(s string) string { return s }

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *tree.Node[string]
	}{
		{
			name: "leaf",
			src:  "{(a)}",
			want: tree.New("a"),
		},
		{
			name: "children",
			src:  "{(a){(b)}{(c)}}",
			want: func() *tree.Node[string] {
				n := tree.New("a")
				n.AddChild("b")
				n.AddChild("c")
				return n
			}(),
		},
		{
			name: "whitespace is insignificant",
			src:  "  { (a)  { (b) }  }  ",
			want: func() *tree.Node[string] {
				n := tree.New("a")
				n.AddChild("b")
				return n
			}(),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.src, identity)
			if err != nil {
				t.Fatalf("Parse(%q) = _, %v, want nil error", tc.src, err)
			}
			gotStr := Serialize(got, identity)
			wantStr := Serialize(tc.want, identity)
			if gotStr != wantStr {
				t.Errorf("Parse(%q) = %s, want %s", tc.src, gotStr, wantStr)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrUnmatchedBracket},
		{"no root label", "{}", ErrMissingLabel},
		{"unmatched open", "{(a)", ErrUnmatchedBracket},
		{"unmatched close", "{(a)}}", ErrTrailingInput},
		{"child with no label", "{(a){}}", ErrMissingLabel},
		{"trailing garbage", "{(a)}x", ErrTrailingInput},
		{"unterminated label", "{(a", ErrUnmatchedBracket},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src, identity)
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse(%q) error = %v, want wrapping %v", tc.src, err, tc.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	srcs := []string{
		"{(a)}",
		"{(a){(b)}{(c){(d)}}}",
		"{(root){(x)}{(y)}{(z){(w)}}}",
	}
	for _, src := range srcs {
		root, err := Parse(src, identity)
		if err != nil {
			t.Fatalf("Parse(%q) = _, %v", src, err)
		}
		got := Serialize(root, identity)
		if got != src {
			t.Errorf("Serialize(Parse(%q)) = %q, want %q", src, got, src)
		}
	}
}

func TestParseIncremental(t *testing.T) {
	// old tree: {(a){(b)}{(c)}}  preorder: 0=a 1=b 2=c
	oldLabels := map[int]string{0: "a", 1: "b", 2: "c"}
	lookup := func(oldPrel int) (string, bool) {
		l, ok := oldLabels[oldPrel]
		return l, ok
	}

	// new tree retains "a" (0->0) and "b" (1->1) without re-supplying their labels, and adds a
	// freshly labeled node "d".
	src := "{[0]{[1]}{(d)}}"
	root, retain, err := ParseIncremental(src, identity, lookup)
	if err != nil {
		t.Fatalf("ParseIncremental(%q) = _, _, %v", src, err)
	}
	if root.Label != "a" {
		t.Errorf("root label = %q, want %q", root.Label, "a")
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if root.Children[0].Label != "b" {
		t.Errorf("child[0] label = %q, want %q", root.Children[0].Label, "b")
	}
	if root.Children[1].Label != "d" {
		t.Errorf("child[1] label = %q, want %q", root.Children[1].Label, "d")
	}

	want := Retain{0: 0, 1: 1}
	if len(retain) != len(want) {
		t.Fatalf("retain = %v, want %v", retain, want)
	}
	for k, v := range want {
		if retain[k] != v {
			t.Errorf("retain[%d] = %d, want %d", k, retain[k], v)
		}
	}
}

func TestParseIncrementalErrors(t *testing.T) {
	lookup := func(int) (string, bool) { return "", false }

	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad annotation", "{[x]}", ErrInvalidAnnotation},
		{"negative annotation", "{[-1]}", ErrInvalidAnnotation},
		{"annotation with failing lookup", "{[5]}", ErrMissingLabel},
		{"unterminated annotation", "{[0", ErrUnmatchedBracket},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseIncremental(tc.src, identity, lookup)
			if !errors.Is(err, tc.want) {
				t.Errorf("ParseIncremental(%q) error = %v, want wrapping %v", tc.src, err, tc.want)
			}
		})
	}
}

func TestSerializeEmpty(t *testing.T) {
	n := tree.New(42)
	got := Serialize(n, func(v int) string { return "" })
	if got != "{()}" {
		t.Errorf("Serialize(leaf) = %q, want %q", got, "{()}")
	}
}
