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

// Package declared implements the declared form of YANG statements: the
// syntax of a statement as written in YANG source, consisting of its kind,
// its argument, and the ordered set of statements nested within it.
//
// Declared statements carry no semantic information. They are created once
// from parser output and never modified, such that they may be shared
// between any number of effective statements and goroutines.
package declared

import (
	"fmt"

	"github.com/openconfig/yangmodel/stmt"
)

// Statement is an immutable declared YANG statement. Implementations are
// restricted to this package.
type Statement interface {
	// Kind returns the kind of the statement.
	Kind() *stmt.Kind
	// RawArgument returns the argument text as it appeared in the source,
	// and false if the statement has no argument.
	RawArgument() (string, bool)
	// Argument returns the typed argument of the statement, or nil if the
	// statement has no argument. The Go type of the argument is determined
	// by the ArgType of the statement's kind.
	Argument() any
	// Substatements returns a copy of the statements nested within the
	// statement, in declaration order.
	Substatements() []Statement
	// NumSubstatements returns the number of nested statements.
	NumSubstatements() int
	// Substatement returns the i-th nested statement.
	Substatement(i int) Statement

	isDeclared()
}

// emptyStatement is a declared statement without substatements. The
// majority of statements in a schema tree are leaves of this form, hence
// it omits storage for substatements entirely.
type emptyStatement struct {
	kind *stmt.Kind
	raw  string
	arg  any
}

func (s *emptyStatement) Kind() *stmt.Kind { return s.kind }

func (s *emptyStatement) RawArgument() (string, bool) { return s.raw, s.arg != nil }

func (s *emptyStatement) Argument() any { return s.arg }

func (*emptyStatement) Substatements() []Statement { return nil }

func (*emptyStatement) NumSubstatements() int { return 0 }

func (*emptyStatement) Substatement(i int) Statement {
	panic(fmt.Sprintf("substatement index %d out of range [0:0]", i))
}

func (*emptyStatement) isDeclared() {}

// String implements the fmt.Stringer interface.
func (s *emptyStatement) String() string { return header(s) }

// regularStatement is a declared statement with at least one substatement.
type regularStatement struct {
	emptyStatement
	subs []Statement
}

func (s *regularStatement) Substatements() []Statement {
	return append([]Statement(nil), s.subs...)
}

func (s *regularStatement) NumSubstatements() int { return len(s.subs) }

func (s *regularStatement) Substatement(i int) Statement { return s.subs[i] }

// String implements the fmt.Stringer interface.
func (s *regularStatement) String() string {
	return fmt.Sprintf("%s {...%d}", header(s), len(s.subs))
}

// header returns the keyword and quoted argument of s.
func header(s Statement) string {
	raw, ok := s.RawArgument()
	if !ok {
		return s.Kind().Keyword()
	}
	return fmt.Sprintf("%s %q", s.Kind().Keyword(), raw)
}

// New returns a declared statement of the supplied kind. raw is the
// argument text as written in the source, and arg is its typed value; arg
// is nil if and only if the statement has no argument. The substatements
// are retained in the order supplied.
//
// When subs is empty and kind has a closed argument domain, New returns a
// shared, interned statement rather than allocating. New only validates
// that the argument is consistent with kind; the grammar of substatements
// is validated when effective statements are built.
func New(kind *stmt.Kind, raw string, arg any, subs []Statement) (Statement, error) {
	if kind == nil {
		return nil, fmt.Errorf("declared statement with nil kind")
	}
	if err := kind.CheckArgument(arg); err != nil {
		return nil, err
	}
	if arg == nil && raw != "" {
		return nil, &stmt.ArgumentError{Kind: kind, Value: raw, Reason: "raw argument supplied without a value"}
	}
	for i, sub := range subs {
		if sub == nil {
			return nil, fmt.Errorf("%s: nil substatement at index %d", kind, i)
		}
	}
	if len(subs) == 0 {
		if s, ok := interned(kind, arg); ok {
			if r, _ := s.RawArgument(); r == raw {
				return s, nil
			}
		}
		return &emptyStatement{kind: kind, raw: raw, arg: arg}, nil
	}
	return newRegular(kind, raw, arg, subs), nil
}

// newRegular returns the general representation of a statement regardless
// of the number of substatements.
func newRegular(kind *stmt.Kind, raw string, arg any, subs []Statement) *regularStatement {
	return &regularStatement{
		emptyStatement: emptyStatement{kind: kind, raw: raw, arg: arg},
		subs:           append([]Statement(nil), subs...),
	}
}

// Parse returns a declared statement whose argument is parsed from raw
// according to the argument type of kind. hasArg indicates whether the
// statement had an argument in the source.
func Parse(kind *stmt.Kind, raw string, hasArg bool, subs []Statement) (Statement, error) {
	if kind == nil {
		return nil, fmt.Errorf("declared statement with nil kind")
	}
	if !hasArg {
		if kind.ArgumentRequired() {
			return nil, &stmt.ArgumentError{Kind: kind, Reason: "argument is required"}
		}
		return New(kind, "", nil, subs)
	}
	arg, err := kind.ParseArgument(raw)
	if err != nil {
		return nil, err
	}
	return New(kind, raw, arg, subs)
}

// MustNew is like New, but panics if the statement cannot be constructed.
// It is intended for statements built from constants.
func MustNew(kind *stmt.Kind, raw string, arg any, subs ...Statement) Statement {
	s, err := New(kind, raw, arg, subs)
	if err != nil {
		panic(err)
	}
	return s
}

// Walk calls fn for s and each of its descendants in pre-order. If fn
// returns false, the descendants of the statement are not visited.
func Walk(s Statement, fn func(Statement) bool) {
	if !fn(s) {
		return
	}
	for i := 0; i < s.NumSubstatements(); i++ {
		Walk(s.Substatement(i), fn)
	}
}
