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
	"github.com/openconfig/yangmodel/declared"
)

// singletons maps each interned declared statement to the effective
// statement that is built from it when it has no path, flags or original.
var singletons = map[declared.Statement]*emptyStatement{}

func init() {
	for _, d := range declared.InternedStatements() {
		singletons[d] = &emptyStatement{kind: d.Kind(), arg: d.Argument(), decl: d}
	}
}

// internedEffective returns the shared effective statement for decl if
// decl is interned and the statement carries no position-specific data.
func internedEffective(decl declared.Statement, path Path, flags Flags, orig Statement) (Statement, bool) {
	if decl == nil || !path.IsZero() || flags != 0 || orig != nil {
		return nil, false
	}
	if !declared.IsInterned(decl) {
		return nil, false
	}
	s, ok := singletons[decl]
	return s, ok
}

// IsInterned returns true if s is one of the shared, preallocated
// effective statement instances.
func IsInterned(s Statement) bool {
	e, ok := s.(*emptyStatement)
	if !ok || e.decl == nil {
		return false
	}
	return singletons[e.decl] == e
}
