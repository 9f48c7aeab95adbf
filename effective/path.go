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
	"strings"

	"github.com/openconfig/yangmodel/stmt"
)

// Path identifies the position of a statement within the schema tree. It
// is an immutable, persistent list of qualified names; deriving a child
// path shares all elements with its parent, and a Path is a single
// pointer in size.
//
// The zero Path is used for statements that are not nodes of the schema
// tree, such as description or type.
type Path struct {
	last *pathElem
}

type pathElem struct {
	parent *pathElem
	name   stmt.QName
	depth  int
}

// NewPath returns the absolute path made up of elems.
func NewPath(elems ...stmt.QName) Path {
	var p Path
	for _, e := range elems {
		p = p.Child(e)
	}
	return p
}

// Child returns the path of a child of p named q.
func (p Path) Child(q stmt.QName) Path {
	d := 1
	if p.last != nil {
		d = p.last.depth + 1
	}
	return Path{last: &pathElem{parent: p.last, name: q, depth: d}}
}

// Parent returns the path of the parent of p. The parent of a single
// element path is the zero Path.
func (p Path) Parent() Path {
	if p.last == nil {
		return p
	}
	return Path{last: p.last.parent}
}

// IsZero returns true if p is the zero Path.
func (p Path) IsZero() bool { return p.last == nil }

// Len returns the number of elements in p.
func (p Path) Len() int {
	if p.last == nil {
		return 0
	}
	return p.last.depth
}

// Last returns the final element of p, and false if p is the zero Path.
func (p Path) Last() (stmt.QName, bool) {
	if p.last == nil {
		return stmt.QName{}, false
	}
	return p.last.name, true
}

// Elements returns the elements of p from the root downwards.
func (p Path) Elements() []stmt.QName {
	elems := make([]stmt.QName, p.Len())
	for e := p.last; e != nil; e = e.parent {
		elems[e.depth-1] = e.name
	}
	return elems
}

// Equal returns true if p and o contain the same elements.
func (p Path) Equal(o Path) bool {
	a, b := p.last, o.last
	for a != nil && b != nil {
		if a == b {
			return true
		}
		if a.depth != b.depth || a.name != b.name {
			return false
		}
		a, b = a.parent, b.parent
	}
	return a == nil && b == nil
}

// String returns p in the form /module:name/name, where an element is
// qualified only if its module differs from that of its parent.
func (p Path) String() string {
	if p.last == nil {
		return ""
	}
	var b strings.Builder
	prev := ""
	for _, e := range p.Elements() {
		b.WriteByte('/')
		if e.Module != "" && e.Module != prev {
			b.WriteString(e.Module)
			b.WriteByte(':')
		}
		b.WriteString(e.Name)
		prev = e.Module
	}
	return b.String()
}
