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

// Package modeldata derives the gNMI ModelData advertised for a set of
// YANG modules from their effective trees.
package modeldata

import (
	"fmt"
	"strings"

	"github.com/openconfig/yangmodel/effective"
	"github.com/openconfig/yangmodel/stmt"
	"golang.org/x/exp/slices"

	gpb "github.com/openconfig/gnmi/proto/gnmi"
)

// Find returns the gNMI ModelData that corresponds with each of the
// effective module statements mods, sorted by name.
//
// The version of a module is taken from its openconfig-version extension
// statement if present, and otherwise from its most recent revision.
func Find(mods []effective.Statement) ([]*gpb.ModelData, error) {
	var mds []*gpb.ModelData
	for _, m := range mods {
		if m == nil || m.Kind() != stmt.ModuleKind {
			return nil, fmt.Errorf("nil statement, or not a module: %v", m)
		}
		md := &gpb.ModelData{
			Name: effective.ArgumentString(m),
		}
		if o, ok := m.Single(stmt.OrganizationKind); ok {
			md.Organization = effective.ArgumentString(o)
		}
		md.Version = version(m)
		mds = append(mds, md)
	}
	slices.SortFunc(mds, func(a, b *gpb.ModelData) int {
		return strings.Compare(a.GetName(), b.GetName())
	})
	return mds, nil
}

// version returns the version of the module m.
func version(m effective.Statement) string {
	var latest string
	for i := 0; i < m.NumSubstatements(); i++ {
		s := m.Substatement(i)
		k := s.Kind()
		if (k.IsExtension() || k.IsUnrecognized()) && k.Name().Name == "openconfig-version" {
			return effective.ArgumentString(s)
		}
		if k == stmt.RevisionKind {
			// Revision dates compare lexically.
			if d := effective.ArgumentString(s); d > latest {
				latest = d
			}
		}
	}
	return latest
}
