// Copyright 2024 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stmttestutil contains helpers for comparing effective statement
// trees within tests.
package stmttestutil

import (
	"strings"

	"github.com/kr/pretty"
	"github.com/openconfig/yangmodel/effective"
)

// Node is a comparable summary of an effective statement and its
// descendants.
type Node struct {
	Keyword    string
	Argument   string
	Path       string
	Flags      string
	Undeclared bool
	Children   []*Node
}

// Tree returns the summary of s and all of its descendants.
func Tree(s effective.Statement) *Node {
	return tree(s, func(effective.Statement) bool { return true })
}

// SchemaTree returns the summary of the schema tree nodes within s, which
// are the statements with a path. s itself is always included.
func SchemaTree(s effective.Statement) *Node {
	return tree(s, func(c effective.Statement) bool { return !c.Path().IsZero() })
}

func tree(s effective.Statement, keep func(effective.Statement) bool) *Node {
	n := &Node{
		Keyword:    s.Kind().Keyword(),
		Argument:   effective.ArgumentString(s),
		Undeclared: effective.IsUndeclared(s),
	}
	if p := s.Path(); !p.IsZero() {
		n.Path = p.String()
		n.Flags = s.Flags().String()
	}
	for i := 0; i < s.NumSubstatements(); i++ {
		if c := s.Substatement(i); keep(c) {
			n.Children = append(n.Children, tree(c, keep))
		}
	}
	return n
}

// Diff returns a human readable description of the differences between
// got and want, or the empty string if they are equal.
func Diff(got, want *Node) string {
	return strings.Join(pretty.Diff(got, want), "\n")
}

// Sprint returns a multi-line rendering of n for use in test failures.
func Sprint(n *Node) string {
	return pretty.Sprint(n)
}
