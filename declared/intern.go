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

package declared

import (
	"fmt"

	"github.com/openconfig/yangmodel/stmt"
)

type internKey struct {
	kind *stmt.Kind
	arg  any
}

// singletons holds the preallocated instances of substatement-free
// statements whose argument has a closed domain, e.g., "config true".
var singletons = newSingletons()

func newSingletons() map[internKey]*emptyStatement {
	m := map[internKey]*emptyStatement{}
	add := func(k *stmt.Kind, args ...any) {
		for _, a := range args {
			m[internKey{k, a}] = &emptyStatement{kind: k, raw: canonical(a), arg: a}
		}
	}
	for _, k := range []*stmt.Kind{stmt.ConfigKind, stmt.MandatoryKind, stmt.RequireInstanceKind, stmt.YINElementKind} {
		add(k, true, false)
	}
	add(stmt.StatusKind, stmt.StatusCurrent, stmt.StatusDeprecated, stmt.StatusObsolete)
	add(stmt.OrderedByKind, stmt.OrderedBySystem, stmt.OrderedByUser)
	add(stmt.YANGVersionKind, stmt.Version1, stmt.Version11)
	add(stmt.ModifierKind, stmt.InvertMatch)
	add(stmt.DeviateKind, stmt.DeviateNotSupported, stmt.DeviateAdd, stmt.DeviateReplace, stmt.DeviateDelete)
	return m
}

// canonical returns the source text of a closed-domain argument.
func canonical(a any) string {
	if b, ok := a.(bool); ok {
		if b {
			return "true"
		}
		return "false"
	}
	return fmt.Sprint(a)
}

// interned returns the shared instance of the substatement-free statement
// of kind k with argument arg, if one exists.
func interned(k *stmt.Kind, arg any) (Statement, bool) {
	if !k.ClosedDomain() || arg == nil {
		return nil, false
	}
	s, ok := singletons[internKey{k, arg}]
	if !ok {
		return nil, false
	}
	return s, true
}

// Interned returns the shared instance of the substatement-free statement
// of kind k with argument arg, and false if statements of kind k with the
// argument arg are not interned.
func Interned(k *stmt.Kind, arg any) (Statement, bool) {
	return interned(k, arg)
}

// IsInterned returns true if s is one of the shared, preallocated
// statement instances.
func IsInterned(s Statement) bool {
	e, ok := s.(*emptyStatement)
	if !ok || !e.kind.ClosedDomain() {
		return false
	}
	return singletons[internKey{e.kind, e.arg}] == e
}

// InternedStatements returns every shared, preallocated statement instance.
func InternedStatements() []Statement {
	out := make([]Statement, 0, len(singletons))
	for _, s := range singletons {
		out = append(out, s)
	}
	return out
}
