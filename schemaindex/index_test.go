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

package schemaindex

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/yangmodel/build"
	"github.com/openconfig/yangmodel/effective"
	"github.com/openconfig/yangmodel/stmt"
	"github.com/openconfig/yangmodel/stmtparse"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	gpb "github.com/openconfig/gnmi/proto/gnmi"
)

const testModule = `
module acme {
  namespace "urn:acme";
  prefix a;

  container interfaces {
    list interface {
      key name;
      leaf name { type string; }
      leaf mtu { type uint16; }
    }
  }
  container system {
    leaf hostname { type string; }
  }
}
`

func buildModule(t *testing.T) effective.Statement {
	t.Helper()
	d, err := stmtparse.NewParser(nil).ParseModule(testModule, "acme.yang")
	if err != nil {
		t.Fatalf("cannot parse test module: %v", err)
	}
	m, err := build.Build(context.Background(), d, build.Options{})
	if err != nil {
		t.Fatalf("cannot build test module: %v", err)
	}
	return m
}

func TestIndex(t *testing.T) {
	x, err := New(buildModule(t))
	if err != nil {
		t.Fatalf("New: got unexpected error: %v", err)
	}
	wantPaths := []string{
		"/acme:interfaces",
		"/acme:interfaces/interface",
		"/acme:interfaces/interface/mtu",
		"/acme:interfaces/interface/name",
		"/acme:system",
		"/acme:system/hostname",
	}
	if diff := cmp.Diff(x.Paths(), wantPaths); diff != "" {
		t.Errorf("Paths() (-got, +want):\n%s", diff)
	}
	if got := x.Len(); got != len(wantPaths) {
		t.Errorf("Len(): got %d, want %d", got, len(wantPaths))
	}
	if diff := cmp.Diff(x.PrefixSearch("/acme:interfaces/interface/"), wantPaths[2:4]); diff != "" {
		t.Errorf("PrefixSearch() (-got, +want):\n%s", diff)
	}
}

func TestGet(t *testing.T) {
	x, err := New(buildModule(t))
	if err != nil {
		t.Fatalf("New: got unexpected error: %v", err)
	}

	tests := []struct {
		desc     string
		in       string
		wantKind *stmt.Kind
		wantCode codes.Code
	}{{
		desc:     "list",
		in:       "/acme:interfaces/interface",
		wantKind: stmt.ListKind,
	}, {
		desc:     "leaf",
		in:       "/acme:system/hostname",
		wantKind: stmt.LeafKind,
	}, {
		desc:     "missing",
		in:       "/acme:system/domain",
		wantCode: codes.NotFound,
	}, {
		desc:     "unqualified",
		in:       "/system",
		wantCode: codes.NotFound,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := x.Get(tt.in)
			if status.Code(err) != tt.wantCode {
				t.Fatalf("Get(%s): got error %v, want code %s", tt.in, err, tt.wantCode)
			}
			if err != nil {
				return
			}
			if got.Kind() != tt.wantKind || got.Path().String() != tt.in {
				t.Errorf("Get(%s): got %v at %s, want %s", tt.in, got.Kind(), got.Path(), tt.wantKind)
			}
		})
	}
}

func TestGetGNMI(t *testing.T) {
	x, err := New(buildModule(t))
	if err != nil {
		t.Fatalf("New: got unexpected error: %v", err)
	}

	tests := []struct {
		desc     string
		in       *gpb.Path
		wantPath string
		wantCode codes.Code
	}{{
		desc: "origin qualified",
		in: &gpb.Path{
			Origin: "acme",
			Elem: []*gpb.PathElem{
				{Name: "interfaces"},
				{Name: "interface", Key: map[string]string{"name": "eth0"}},
				{Name: "mtu"},
			},
		},
		wantPath: "/acme:interfaces/interface/mtu",
	}, {
		desc: "element qualified",
		in: &gpb.Path{
			Elem: []*gpb.PathElem{{Name: "acme:system"}, {Name: "hostname"}},
		},
		wantPath: "/acme:system/hostname",
	}, {
		desc:     "empty",
		in:       &gpb.Path{},
		wantCode: codes.InvalidArgument,
	}, {
		desc: "unknown",
		in: &gpb.Path{
			Origin: "other",
			Elem:   []*gpb.PathElem{{Name: "system"}},
		},
		wantCode: codes.NotFound,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := x.GetGNMI(tt.in)
			if status.Code(err) != tt.wantCode {
				t.Fatalf("GetGNMI(%v): got error %v, want code %s", tt.in, err, tt.wantCode)
			}
			if err != nil {
				return
			}
			if got.Path().String() != tt.wantPath {
				t.Errorf("GetGNMI(%v): got node at %s, want %s", tt.in, got.Path(), tt.wantPath)
			}
		})
	}
}

func TestDuplicatePath(t *testing.T) {
	f := effective.NewFactory(effective.FactoryOptions{})
	p := effective.NewPath(stmt.QName{Module: "m", Name: "x"})
	a, err := f.CreateUndeclared(stmt.LeafKind, "x", p, 0, nil)
	if err != nil {
		t.Fatalf("cannot create leaf: %v", err)
	}
	b, err := f.Copy(a, p, 0)
	if err != nil {
		t.Fatalf("cannot copy leaf: %v", err)
	}
	if _, err := New(a, b); status.Code(err) != codes.AlreadyExists {
		t.Errorf("New with duplicate paths: got error %v, want code AlreadyExists", err)
	}
}
