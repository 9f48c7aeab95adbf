// Copyright 2017 Google Inc.
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

// Package testutil contains a set of utilities that are useful within
// tests of YANG statement trees and the gNMI data derived from them.
package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pmezard/go-difflib/difflib"
	"google.golang.org/protobuf/testing/protocmp"

	gnmipb "github.com/openconfig/gnmi/proto/gnmi"
)

// GenerateUnifiedDiff takes two strings and generates a diff that can be
// shown to the user in a test error message.
func GenerateUnifiedDiff(want, got string) (string, error) {
	diffl := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
		Eol:      "\n",
	}
	return difflib.GetUnifiedDiffString(diffl)
}

// ModelDataSetEqual compares the contents of a and b and returns true if
// they are equal. Order of the slices is ignored.
func ModelDataSetEqual(a, b []*gnmipb.ModelData) bool {
	return cmp.Equal(a, b, cmpopts.SortSlices(ModelDataLess), cmpopts.EquateEmpty(), protocmp.Transform())
}

// ModelDataLess compares the ModelData messages a and b, returning true if
// a is less than b. Messages are ordered by name, then by version, then by
// organization. A nil message is less than a non-nil one. If all fields are
// equal, false is returned to implement the irreflexive property required by
// cmpopts.SortSlices.
func ModelDataLess(a, b *gnmipb.ModelData) bool {
	switch {
	case a == nil && b != nil:
		return true
	case a == nil && b == nil, b == nil:
		return false
	}

	if a.GetName() != b.GetName() {
		return a.GetName() < b.GetName()
	}
	if a.GetVersion() != b.GetVersion() {
		return a.GetVersion() < b.GetVersion()
	}
	return a.GetOrganization() < b.GetOrganization()
}
