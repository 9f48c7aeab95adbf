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
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/openconfig/gnmi/errdiff"
	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/effective"
	"github.com/openconfig/yangmodel/internal/stmttestutil"
	"github.com/openconfig/yangmodel/stmt"
	"github.com/openconfig/yangmodel/stmtparse"
)

const exampleModule = `
module example {
  yang-version 1.1;
  namespace "urn:example";
  prefix ex;

  grouping endpoint {
    leaf address { type string; }
    leaf port { type uint16; mandatory true; }
  }

  container system {
    leaf hostname { type string; }
    container server {
      presence "enables the server";
      uses endpoint;
    }
    container client {
      config false;
      uses ex:endpoint;
    }
    list user {
      key name;
      ordered-by user;
      min-elements 1;
      leaf name { type string; }
    }
    choice transport {
      leaf tcp { type empty; }
      case udp {
        leaf udp { type empty; }
      }
    }
  }

  rpc reboot {
    status deprecated;
  }

  rpc ping {
    input {
      leaf host { type string; }
    }
  }
}
`

func parse(t *testing.T, src string) declared.Statement {
	t.Helper()
	m, err := stmtparse.NewParser(nil).ParseModule(src, "test.yang")
	if err != nil {
		t.Fatalf("cannot parse test module: %v", err)
	}
	return m
}

// schemaNodes returns the flags of each schema tree node within s, keyed
// by path.
func schemaNodes(s effective.Statement) map[string]string {
	m := map[string]string{}
	effective.Walk(s, func(n effective.Statement) bool {
		if !n.Path().IsZero() {
			m[n.Path().String()] = n.Flags().String()
		}
		return true
	})
	return m
}

func TestBuild(t *testing.T) {
	want := map[string]string{
		"/example:system":                   "status=current config=true",
		"/example:system/hostname":          "status=current config=true",
		"/example:system/server":            "status=current config=true presence",
		"/example:system/server/address":    "status=current config=true added-by-uses",
		"/example:system/server/port":       "status=current config=true mandatory added-by-uses",
		"/example:system/client":            "status=current config=false",
		"/example:system/client/address":    "status=current config=false added-by-uses",
		"/example:system/client/port":       "status=current config=false mandatory added-by-uses",
		"/example:system/user":              "status=current config=true mandatory user-ordered",
		"/example:system/user/name":         "status=current config=true",
		"/example:system/transport":         "status=current config=true",
		"/example:system/transport/tcp":     "status=current config=true",
		"/example:system/transport/tcp/tcp": "status=current config=true",
		"/example:system/transport/udp":     "status=current config=true",
		"/example:system/transport/udp/udp": "status=current config=true",
		"/example:reboot":                   "status=deprecated",
		"/example:reboot/input":             "status=deprecated",
		"/example:reboot/output":            "status=deprecated",
		"/example:ping":                     "status=current",
		"/example:ping/input":               "status=current",
		"/example:ping/input/host":          "status=current",
		"/example:ping/output":              "status=current",
	}

	for _, workers := range []int{1, 8} {
		m, err := Build(context.Background(), parse(t, exampleModule), Options{Workers: workers})
		if err != nil {
			t.Fatalf("Build(workers: %d): got unexpected error: %v", workers, err)
		}
		if diff := pretty.Compare(schemaNodes(m), want); diff != "" {
			t.Errorf("Build(workers: %d): schema nodes diff (-got, +want):\n%s", workers, diff)
		}
	}
}

// find returns the schema tree node at path p within s.
func find(t *testing.T, s effective.Statement, p string) effective.Statement {
	t.Helper()
	var got effective.Statement
	effective.Walk(s, func(n effective.Statement) bool {
		if n.Path().String() == p {
			got = n
		}
		return got == nil
	})
	if got == nil {
		t.Fatalf("no schema node at %s", p)
	}
	return got
}

func TestBuildProvenance(t *testing.T) {
	m, err := Build(context.Background(), parse(t, exampleModule), Options{})
	if err != nil {
		t.Fatalf("Build: got unexpected error: %v", err)
	}
	g, ok := m.Single(stmt.GroupingKind)
	if !ok {
		t.Fatalf("module has no grouping")
	}
	gAddr, ok := g.Single(stmt.LeafKind)
	if !ok || gAddr.Argument() != "address" {
		t.Fatalf("grouping has no leaf address, got %v", gAddr)
	}
	if !gAddr.Path().IsZero() {
		t.Errorf("grouping leaf has path %s, want zero path", gAddr.Path())
	}

	server := find(t, m, "/example:system/server/address")
	client := find(t, m, "/example:system/client/address")
	for _, c := range []effective.Statement{server, client} {
		if c.Original() != gAddr {
			t.Errorf("%s: got original %v, want grouping leaf", c.Path(), c.Original())
		}
		if c.Declared() != gAddr.Declared() {
			t.Errorf("%s: copy does not share declared statement", c.Path())
		}
		ct, _ := c.Single(stmt.TypeKind)
		gt, _ := gAddr.Single(stmt.TypeKind)
		if ct != gt {
			t.Errorf("%s: copy does not share type statement", c.Path())
		}
	}
	if !effective.SameSchemaNode(server, client) {
		t.Errorf("copies of the same grouping leaf are not the same schema node")
	}

	tcpCase := find(t, m, "/example:system/transport/tcp")
	if tcpCase.Kind() != stmt.CaseKind || !effective.IsUndeclared(tcpCase) {
		t.Errorf("got %v (undeclared: %v), want implicit case", tcpCase, effective.IsUndeclared(tcpCase))
	}
	udpCase := find(t, m, "/example:system/transport/udp")
	if effective.IsUndeclared(udpCase) {
		t.Errorf("explicit case is undeclared")
	}
	in := find(t, m, "/example:reboot/input")
	if !effective.IsUndeclared(in) || in.NumSubstatements() != 0 {
		t.Errorf("got %v, want empty undeclared input", in)
	}
	if in := find(t, m, "/example:ping/input"); effective.IsUndeclared(in) {
		t.Errorf("explicit input is undeclared")
	}
}

func TestBuildNestedGroupings(t *testing.T) {
	m, err := Build(context.Background(), parse(t, `
module nested {
  namespace "urn:nested";
  prefix n;

  grouping inner {
    leaf deep { type string; }
  }

  grouping outer {
    container wrap {
      uses inner;
    }
    choice c {
      container deep {
        uses inner;
      }
    }
  }

  container top {
    uses outer;
  }
}
`), Options{})
	if err != nil {
		t.Fatalf("Build: got unexpected error: %v", err)
	}

	var inner effective.Statement
	for _, g := range m.Multi(stmt.GroupingKind) {
		if g.Argument() == "inner" {
			inner = g
		}
	}
	innerDeep, ok := inner.Single(stmt.LeafKind)
	if !ok {
		t.Fatalf("grouping inner has no leaf")
	}

	deep := find(t, m, "/nested:top/wrap/deep")
	if deep.Original() != innerDeep {
		t.Errorf("got original %v, want leaf of grouping inner", deep.Original())
	}
	if !deep.Flags().AddedByUses() {
		t.Errorf("expanded leaf is not added by uses")
	}

	sc := find(t, m, "/nested:top/c/deep")
	if sc.Kind() != stmt.CaseKind || !effective.IsUndeclared(sc) {
		t.Errorf("got %v, want implicit case", sc)
	}
	if l := find(t, m, "/nested:top/c/deep/deep/deep"); l.Original() != innerDeep {
		t.Errorf("got original %v, want leaf of grouping inner", l.Original())
	}
}

func TestBuildSchemaTree(t *testing.T) {
	m, err := Build(context.Background(), parse(t, `
module t {
  namespace "urn:t";
  prefix t;
  grouping g { leaf a { type string; } }
  container c {
    uses g;
    choice ch { leaf x { type empty; } }
  }
}
`), Options{})
	if err != nil {
		t.Fatalf("Build: got unexpected error: %v", err)
	}

	const cfg = "status=current config=true"
	want := &stmttestutil.Node{
		Keyword:  "module",
		Argument: "t",
		Children: []*stmttestutil.Node{{
			Keyword:  "container",
			Argument: "c",
			Path:     "/t:c",
			Flags:    cfg,
			Children: []*stmttestutil.Node{{
				Keyword:  "leaf",
				Argument: "a",
				Path:     "/t:c/a",
				Flags:    cfg + " added-by-uses",
			}, {
				Keyword:  "choice",
				Argument: "ch",
				Path:     "/t:c/ch",
				Flags:    cfg,
				Children: []*stmttestutil.Node{{
					Keyword:    "case",
					Argument:   "x",
					Path:       "/t:c/ch/x",
					Flags:      cfg,
					Undeclared: true,
					Children: []*stmttestutil.Node{{
						Keyword:  "leaf",
						Argument: "x",
						Path:     "/t:c/ch/x/x",
						Flags:    cfg,
					}},
				}},
			}},
		}},
	}
	got := stmttestutil.SchemaTree(m)
	if diff := stmttestutil.Diff(got, want); diff != "" {
		t.Errorf("Build: did not get expected schema tree, got:\n%s\ndiff:\n%s", stmttestutil.Sprint(got), diff)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		desc             string
		in               string
		opts             Options
		wantErrSubstring string
		wantErr          error
	}{{
		desc: "grouping cycle",
		in: `module m {
  prefix m;
  grouping a { uses b; }
  grouping b { uses a; }
  container c { uses a; }
}`,
		wantErrSubstring: "grouping cycle",
		wantErr:          ErrGroupingCycle,
	}, {
		desc: "self use",
		in: `module m {
  prefix m;
  grouping a { container x { uses a; } }
}`,
		wantErrSubstring: "grouping cycle",
		wantErr:          ErrGroupingCycle,
	}, {
		desc: "unknown grouping",
		in: `module m {
  prefix m;
  container c { uses missing; }
}`,
		wantErrSubstring: "grouping missing not found",
	}, {
		desc: "grouping out of scope",
		in: `module m {
  prefix m;
  container a { grouping g { leaf x { type string; } } }
  container b { uses g; }
}`,
		wantErrSubstring: "grouping g not found",
	}, {
		desc: "imported grouping",
		in: `module m {
  prefix m;
  container c { uses other:g; }
}`,
		wantErrSubstring: "groupings defined in other modules are not supported",
	}, {
		desc: "duplicate grouping",
		in: `module m {
  prefix m;
  grouping g { leaf x { type string; } }
  grouping g { leaf y { type string; } }
}`,
		wantErrSubstring: "duplicate grouping g",
	}, {
		desc: "repeated singleton substatement",
		in: `module m {
  prefix m;
  container c { leaf l { type string; type int8; } }
}`,
		wantErrSubstring: "substatement type appears 2 times",
		wantErr:          effective.ErrSubstatementIndexing,
	}, {
		desc: "repeated base in YANG 1",
		in: `module m {
  yang-version 1.1;
  prefix m;
  leaf l { type identityref { base a; base b; } }
}`,
		opts:             Options{Version: func() *stmt.Version { v := stmt.Version1; return &v }()},
		wantErrSubstring: "substatement base appears 2 times",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Build(context.Background(), parse(t, tt.in), tt.opts)
			if tt.wantErrSubstring == "" && tt.wantErr == nil {
				if err != nil {
					t.Fatalf("got unexpected error: %v", err)
				}
				return
			}
			if diff := errdiff.Substring(err, tt.wantErrSubstring); diff != "" {
				t.Errorf("did not get expected error, %s", diff)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildMinElements(t *testing.T) {
	m, err := Build(context.Background(), parse(t, `
module m {
  prefix m;
  container c {
    leaf-list none { type string; min-elements 0; max-elements unbounded; }
    leaf-list some { type string; min-elements 2; max-elements 4; }
  }
}
`), Options{})
	if err != nil {
		t.Fatalf("Build: got unexpected error: %v", err)
	}
	if find(t, m, "/m:c/none").Flags().Mandatory() {
		t.Errorf("leaf-list with min-elements 0 is mandatory")
	}
	some := find(t, m, "/m:c/some")
	if !some.Flags().Mandatory() {
		t.Errorf("leaf-list with min-elements 2 is not mandatory")
	}
	maxEl, ok := some.Single(stmt.MaxElementsKind)
	if !ok {
		t.Fatalf("leaf-list has no max-elements")
	}
	if got, ok := maxEl.Argument().(stmt.MaxElements); !ok || got.Unbounded || !got.Allows(4) || got.Allows(5) {
		t.Errorf("max-elements 4: got argument %v (%T)", maxEl.Argument(), maxEl.Argument())
	}
}

func TestBuildVersion(t *testing.T) {
	src := `module m {
  yang-version 1.1;
  prefix m;
  leaf l { type identityref { base a; base b; } }
}`
	if _, err := Build(context.Background(), parse(t, src), Options{}); err != nil {
		t.Errorf("Build with detected YANG 1.1: got unexpected error: %v", err)
	}
}

func TestBuildSubmodule(t *testing.T) {
	m, err := Build(context.Background(), parse(t, `
submodule sub {
  belongs-to parent { prefix p; }
  grouping g { leaf x { type string; } }
  container c { uses p:g; }
}
`), Options{})
	if err != nil {
		t.Fatalf("Build: got unexpected error: %v", err)
	}
	find(t, m, "/parent:c/x")
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, parse(t, exampleModule), Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Build with cancelled context: got error %v, want context.Canceled", err)
	}
}

func TestBuildNotModule(t *testing.T) {
	c := declared.MustNew(stmt.ContainerKind, "c", "c")
	if _, err := Build(context.Background(), c, Options{}); err == nil {
		t.Errorf("Build(container): got nil error, want error")
	}
	if _, err := Build(context.Background(), nil, Options{}); err == nil {
		t.Errorf("Build(nil): got nil error, want error")
	}
}
