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

package effective

import (
	"errors"
	"fmt"
	"sync"

	"github.com/openconfig/yangmodel/stmt"
)

// ErrSubstatementIndexing is matched by errors returned when the
// substatements of a statement violate the cardinality of its grammar.
var ErrSubstatementIndexing = errors.New("substatement indexing failed")

// IndexingError is returned when a substatement that may appear at most
// once appears more than once within its parent.
type IndexingError struct {
	// Parent is the kind of the statement being constructed.
	Parent *stmt.Kind
	// Argument is the argument of the statement being constructed.
	Argument any
	// Path is the path of the statement being constructed.
	Path Path
	// Kind is the kind of the substatement that is repeated.
	Kind *stmt.Kind
	// Count is the number of times that the substatement appears.
	Count int
}

// Error implements the error interface.
func (e *IndexingError) Error() string {
	parent := e.Parent.Keyword()
	if e.Argument != nil {
		parent = fmt.Sprintf("%s %v", parent, e.Argument)
	}
	if !e.Path.IsZero() {
		parent = fmt.Sprintf("%s (%s)", parent, e.Path)
	}
	return fmt.Sprintf("%s: substatement %s appears %d times, at most one is allowed", parent, e.Kind, e.Count)
}

// Is allows IndexingError to be matched against ErrSubstatementIndexing.
func (e *IndexingError) Is(target error) bool {
	return target == ErrSubstatementIndexing
}

// checkCardinality ensures that no kind whose cardinality within parent is
// at most one appears more than once within subs. It performs a single
// scan of subs.
func checkCardinality(parent *stmt.Kind, arg any, path Path, v stmt.Version, subs []Statement) error {
	var counts map[*stmt.Kind]int
	for _, s := range subs {
		c, ok := parent.Cardinality(s.Kind(), v)
		if !ok || !c.Singleton() {
			continue
		}
		if counts == nil {
			counts = map[*stmt.Kind]int{}
		}
		counts[s.Kind()]++
	}
	for _, s := range subs {
		if n := counts[s.Kind()]; n > 1 {
			return &IndexingError{Parent: parent, Argument: arg, Path: path, Kind: s.Kind(), Count: n}
		}
	}
	return nil
}

// index provides lookup of substatements by kind. Statements with few
// substatements are scanned linearly; for larger statements a map is built
// on first use.
type index struct {
	scan   bool
	once   sync.Once
	byKind map[*stmt.Kind][]Statement
}

func newIndex(n, threshold int) *index {
	return &index{scan: n <= threshold}
}

func (x *index) build(subs []Statement) {
	x.once.Do(func() {
		m := make(map[*stmt.Kind][]Statement, len(subs))
		for _, s := range subs {
			m[s.Kind()] = append(m[s.Kind()], s)
		}
		x.byKind = m
	})
}

func (x *index) single(subs []Statement, k *stmt.Kind) (Statement, bool) {
	if x.scan {
		for _, s := range subs {
			if s.Kind() == k {
				return s, true
			}
		}
		return nil, false
	}
	x.build(subs)
	if m := x.byKind[k]; len(m) > 0 {
		return m[0], true
	}
	return nil, false
}

func (x *index) multi(subs []Statement, k *stmt.Kind) []Statement {
	var out []Statement
	if x.scan {
		for _, s := range subs {
			if s.Kind() == k {
				out = append(out, s)
			}
		}
		return out
	}
	x.build(subs)
	return append(out, x.byKind[k]...)
}
