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

package build

import (
	"context"
	"fmt"

	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/effective"
	"github.com/openconfig/yangmodel/stmt"
)

type groupingState int

const (
	unresolved groupingState = iota
	resolving
	resolved
)

// scope holds the groupings defined by a single statement. Groupings are
// resolved when the scope is created, after which the scope is only read
// and may be shared between goroutines.
type scope struct {
	parent *scope
	decls  map[string]declared.Statement
	state  map[string]groupingState
	built  map[string]effective.Statement
}

// newScope returns the scope of groupings defined within d, or parent if d
// defines none.
func (b *builder) newScope(ctx context.Context, d declared.Statement, parent *scope) (*scope, error) {
	var s *scope
	for _, sub := range d.Substatements() {
		if sub.Kind() != stmt.GroupingKind {
			continue
		}
		if s == nil {
			s = &scope{
				parent: parent,
				decls:  map[string]declared.Statement{},
				state:  map[string]groupingState{},
				built:  map[string]effective.Statement{},
			}
		}
		name := sub.Argument().(string)
		if _, ok := s.decls[name]; ok {
			return nil, fmt.Errorf("%s: duplicate grouping %s", describe(d), name)
		}
		s.decls[name] = sub
	}
	if s == nil {
		return parent, nil
	}
	for _, sub := range d.Substatements() {
		if sub.Kind() != stmt.GroupingKind {
			continue
		}
		if _, err := b.resolve(ctx, s, sub.Argument().(string)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// lookup returns the grouping named name that is visible from s.
func (b *builder) lookup(ctx context.Context, s *scope, name string) (effective.Statement, error) {
	for ; s != nil; s = s.parent {
		if _, ok := s.decls[name]; ok {
			return b.resolve(ctx, s, name)
		}
	}
	return nil, fmt.Errorf("grouping %s not found", name)
}

// resolve returns the effective form of the grouping name defined in s,
// building it if required.
func (b *builder) resolve(ctx context.Context, s *scope, name string) (effective.Statement, error) {
	switch s.state[name] {
	case resolved:
		return s.built[name], nil
	case resolving:
		return nil, fmt.Errorf("grouping %s: %w", name, ErrGroupingCycle)
	}
	s.state[name] = resolving
	g, err := b.buildOne(ctx, s.decls[name], frame{detached: true, scope: s})
	if err != nil {
		return nil, err
	}
	s.built[name], s.state[name] = g, resolved
	return g, nil
}
