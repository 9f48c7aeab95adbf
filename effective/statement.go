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

// Package effective implements the effective form of YANG statements: the
// resolved semantics of each statement at a particular position in the
// schema tree, after groupings, augmentations, deviations and implicit
// nodes have been applied.
//
// Effective statements are built bottom-up by a Factory. Every statement is
// immutable once constructed, and a fully built tree may be read from any
// number of goroutines without synchronisation. The same declared subtree
// may be materialised at several positions within the tree through Copy,
// in which case each copy records the first materialisation as its
// Original.
package effective

import (
	"fmt"

	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/stmt"
)

// Statement is an immutable effective YANG statement. Implementations are
// restricted to this package, and are created through a Factory.
type Statement interface {
	// Kind returns the kind of the statement.
	Kind() *stmt.Kind
	// Argument returns the typed argument of the statement, or nil if it
	// has none.
	Argument() any
	// Declared returns the declared statement from which this statement
	// was built, or nil if the statement was synthesised, e.g., the
	// implicit input of an rpc.
	Declared() declared.Statement
	// Original returns the first materialisation of this statement if it
	// is a copy created through reuse of a grouping or augmentation, and
	// nil otherwise. The returned statement is never itself a copy.
	Original() Statement
	// Path returns the position of the statement in the schema tree.
	Path() Path
	// Flags returns the derived properties of the statement.
	Flags() Flags
	// Substatements returns a copy of the effective substatements, in the
	// order in which they were supplied at construction.
	Substatements() []Statement
	// NumSubstatements returns the number of effective substatements.
	NumSubstatements() int
	// Substatement returns the i-th effective substatement.
	Substatement(i int) Statement
	// Single returns the first substatement of kind k, and false if there
	// is none.
	Single(k *stmt.Kind) (Statement, bool)
	// Multi returns all substatements of kind k in order.
	Multi(k *stmt.Kind) []Statement

	isEffective()
}

// emptyStatement is an effective statement without substatements.
type emptyStatement struct {
	kind  *stmt.Kind
	arg   any
	decl  declared.Statement
	orig  Statement
	path  Path
	flags Flags
}

func (s *emptyStatement) Kind() *stmt.Kind { return s.kind }

func (s *emptyStatement) Argument() any { return s.arg }

func (s *emptyStatement) Declared() declared.Statement { return s.decl }

func (s *emptyStatement) Original() Statement { return s.orig }

func (s *emptyStatement) Path() Path { return s.path }

func (s *emptyStatement) Flags() Flags { return s.flags }

func (*emptyStatement) Substatements() []Statement { return nil }

func (*emptyStatement) NumSubstatements() int { return 0 }

func (*emptyStatement) Substatement(i int) Statement {
	panic(fmt.Sprintf("substatement index %d out of range [0:0]", i))
}

func (*emptyStatement) Single(*stmt.Kind) (Statement, bool) { return nil, false }

func (*emptyStatement) Multi(*stmt.Kind) []Statement { return nil }

func (*emptyStatement) isEffective() {}

// String implements the fmt.Stringer interface.
func (s *emptyStatement) String() string { return describe(s) }

// regularStatement is an effective statement with at least one
// substatement. The substatements and their index may be shared between
// copies of the statement.
type regularStatement struct {
	emptyStatement
	subs []Statement
	idx  *index
}

func (s *regularStatement) Substatements() []Statement {
	return append([]Statement(nil), s.subs...)
}

func (s *regularStatement) NumSubstatements() int { return len(s.subs) }

func (s *regularStatement) Substatement(i int) Statement { return s.subs[i] }

func (s *regularStatement) Single(k *stmt.Kind) (Statement, bool) {
	return s.idx.single(s.subs, k)
}

func (s *regularStatement) Multi(k *stmt.Kind) []Statement {
	return s.idx.multi(s.subs, k)
}

// String implements the fmt.Stringer interface.
func (s *regularStatement) String() string {
	return fmt.Sprintf("%s {...%d}", describe(s), len(s.subs))
}

// describe returns a short description of s for use in errors and logs.
func describe(s Statement) string {
	d := s.Kind().Keyword()
	if a := s.Argument(); a != nil {
		d = fmt.Sprintf("%s %v", d, a)
	}
	if p := s.Path(); !p.IsZero() {
		d = fmt.Sprintf("%s (%s)", d, p)
	}
	return d
}

// IsUndeclared returns true if s was synthesised rather than built from a
// declared statement.
func IsUndeclared(s Statement) bool {
	return s.Declared() == nil
}

// SameSchemaNode returns true if a and b are materialisations of the same
// statement, i.e., they are identical, or one is a copy of the other, or
// both are copies of the same original.
func SameSchemaNode(a, b Statement) bool {
	return origin(a) == origin(b)
}

// origin returns the first materialisation of s.
func origin(s Statement) Statement {
	if o := s.Original(); o != nil {
		return o
	}
	return s
}

// ArgumentString returns the argument of s formatted as a string, or the
// empty string if s has no argument.
func ArgumentString(s Statement) string {
	switch a := s.Argument().(type) {
	case nil:
		return ""
	case string:
		return a
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprint(a)
	}
}

// Walk calls fn for s and each of its effective descendants in pre-order.
// If fn returns false, the descendants of the statement are not visited.
func Walk(s Statement, fn func(Statement) bool) {
	if !fn(s) {
		return
	}
	for i := 0; i < s.NumSubstatements(); i++ {
		Walk(s.Substatement(i), fn)
	}
}
