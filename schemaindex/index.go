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

// Package schemaindex provides lookup of the schema tree nodes of built
// effective trees by their schema node identifier.
package schemaindex

import (
	"strings"

	"github.com/derekparker/trie"
	"github.com/openconfig/yangmodel/effective"
	"golang.org/x/exp/slices"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	gpb "github.com/openconfig/gnmi/proto/gnmi"
)

// Index maps the path of every schema tree node within a set of effective
// trees to the node. An Index is immutable once created and may be read
// concurrently.
type Index struct {
	t *trie.Trie
	n int
}

// New returns an Index of the schema tree nodes within roots. An error
// with code AlreadyExists is returned if two nodes share a path.
func New(roots ...effective.Statement) (*Index, error) {
	x := &Index{t: trie.New()}
	for _, r := range roots {
		var err error
		effective.Walk(r, func(s effective.Statement) bool {
			if err != nil {
				return false
			}
			if s.Path().IsZero() {
				return true
			}
			p := s.Path().String()
			if _, ok := x.t.Find(p); ok {
				err = status.Errorf(codes.AlreadyExists, "duplicate schema node %s", p)
				return false
			}
			x.t.Add(p, s)
			x.n++
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Len returns the number of schema tree nodes in x.
func (x *Index) Len() int { return x.n }

// Get returns the schema tree node at path, in the form returned by
// effective.Path.String. An error with code NotFound is returned if there
// is no such node.
func (x *Index) Get(path string) (effective.Statement, error) {
	n, ok := x.t.Find(path)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no schema node at %s", path)
	}
	return n.Meta().(effective.Statement), nil
}

// GetGNMI returns the schema tree node identified by the gNMI path p. Keys
// within p are ignored. Elements that are not qualified by a module are in
// the module of their parent; an unqualified first element is qualified
// by the origin of p. As with schema node identifiers, choice and case
// nodes are elements of the path.
func (x *Index) GetGNMI(p *gpb.Path) (effective.Statement, error) {
	if len(p.GetElem()) == 0 {
		return nil, status.Errorf(codes.InvalidArgument, "empty path %v", p)
	}
	var b strings.Builder
	for i, e := range p.GetElem() {
		b.WriteByte('/')
		if i == 0 && !strings.Contains(e.GetName(), ":") && p.GetOrigin() != "" {
			b.WriteString(p.GetOrigin())
			b.WriteByte(':')
		}
		b.WriteString(e.GetName())
	}
	return x.Get(b.String())
}

// PrefixSearch returns the sorted paths of the nodes whose path begins
// with prefix.
func (x *Index) PrefixSearch(prefix string) []string {
	keys := x.t.PrefixSearch(prefix)
	slices.Sort(keys)
	return keys
}

// Paths returns the sorted paths of every node in x.
func (x *Index) Paths() []string {
	keys := x.t.Keys()
	slices.Sort(keys)
	return keys
}
