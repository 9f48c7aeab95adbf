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

package testutil

import (
	"strings"
	"testing"

	gnmipb "github.com/openconfig/gnmi/proto/gnmi"
)

func TestGenerateUnifiedDiff(t *testing.T) {
	tests := []struct {
		name           string
		inWant         string
		inGot          string
		wantDiffSubstr string
	}{{
		name:           "basic",
		inWant:         "hello, world!",
		inGot:          "Hello, world",
		wantDiffSubstr: "-hello, world!\n+Hello, world",
	}, {
		name:           "multiline",
		inWant:         "leaf a\nleaf b\nleaf c\n",
		inGot:          "leaf a\nleaf c\n",
		wantDiffSubstr: " leaf a\n-leaf b\n leaf c\n",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff, _ := GenerateUnifiedDiff(tt.inWant, tt.inGot); !strings.Contains(diff, tt.wantDiffSubstr) {
				t.Errorf("expected diff to contain %q\nbut got %q", tt.wantDiffSubstr, diff)
			}
		})
	}
}

func TestModelDataLess(t *testing.T) {
	tests := []struct {
		name string
		inA  *gnmipb.ModelData
		inB  *gnmipb.ModelData
		want bool
	}{{
		name: "both nil",
	}, {
		name: "a nil",
		inB:  &gnmipb.ModelData{Name: "a"},
		want: true,
	}, {
		name: "b nil",
		inA:  &gnmipb.ModelData{Name: "a"},
	}, {
		name: "name less",
		inA:  &gnmipb.ModelData{Name: "a", Version: "2"},
		inB:  &gnmipb.ModelData{Name: "b", Version: "1"},
		want: true,
	}, {
		name: "version less",
		inA:  &gnmipb.ModelData{Name: "a", Version: "1.0.0"},
		inB:  &gnmipb.ModelData{Name: "a", Version: "1.1.0"},
		want: true,
	}, {
		name: "organization less",
		inA:  &gnmipb.ModelData{Name: "a", Organization: "A"},
		inB:  &gnmipb.ModelData{Name: "a", Organization: "B"},
		want: true,
	}, {
		name: "equal",
		inA:  &gnmipb.ModelData{Name: "a", Version: "1"},
		inB:  &gnmipb.ModelData{Name: "a", Version: "1"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelDataLess(tt.inA, tt.inB); got != tt.want {
				t.Errorf("ModelDataLess(%v, %v): got %v, want %v", tt.inA, tt.inB, got, tt.want)
			}
		})
	}
}

func TestModelDataSetEqual(t *testing.T) {
	a := &gnmipb.ModelData{Name: "a", Version: "1"}
	b := &gnmipb.ModelData{Name: "b", Organization: "B"}

	tests := []struct {
		name string
		inA  []*gnmipb.ModelData
		inB  []*gnmipb.ModelData
		want bool
	}{{
		name: "equal",
		inA:  []*gnmipb.ModelData{a, b},
		inB:  []*gnmipb.ModelData{a, b},
		want: true,
	}, {
		name: "different order",
		inA:  []*gnmipb.ModelData{b, a},
		inB:  []*gnmipb.ModelData{a, b},
		want: true,
	}, {
		name: "nil and empty",
		inA:  nil,
		inB:  []*gnmipb.ModelData{},
		want: true,
	}, {
		name: "missing",
		inA:  []*gnmipb.ModelData{a},
		inB:  []*gnmipb.ModelData{a, b},
	}, {
		name: "different version",
		inA:  []*gnmipb.ModelData{{Name: "a", Version: "2"}},
		inB:  []*gnmipb.ModelData{a},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelDataSetEqual(tt.inA, tt.inB); got != tt.want {
				t.Errorf("ModelDataSetEqual(%v, %v): got %v, want %v", tt.inA, tt.inB, got, tt.want)
			}
		})
	}
}
