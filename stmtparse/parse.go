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

// Package stmtparse converts the statement stream produced by the goyang
// YANG parser into declared statements.
package stmtparse

import (
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/stmt"
	"github.com/openconfig/yangmodel/util"
)

// Parser converts YANG source into declared statements, resolving
// keywords against a catalogue.
type Parser struct {
	catalog *stmt.Catalog
}

// NewParser returns a Parser that resolves keywords using c. If c is nil,
// the built-in catalogue is used.
func NewParser(c *stmt.Catalog) *Parser {
	if c == nil {
		c = stmt.Builtin()
	}
	return &Parser{catalog: c}
}

// Parse parses the YANG source input, read from the file name, and returns
// the declared form of each top-level statement. All argument errors
// within the input are returned as a util.Errors, each prefixed with the
// source location of the offending statement.
func (p *Parser) Parse(input, name string) ([]declared.Statement, error) {
	ss, err := yang.Parse(input, name)
	if err != nil {
		return nil, err
	}
	var (
		out  []declared.Statement
		errs util.Errors
	)
	for _, s := range ss {
		d, err := p.convert(s)
		if err != nil {
			errs = util.AppendErrs(errs, err)
			continue
		}
		out = append(out, d)
	}
	if errs != nil {
		return nil, errs
	}
	log.V(1).Infof("parsed %d top-level statements from %s", len(out), name)
	return out, nil
}

// ParseFile reads and parses the YANG file at path.
func (p *Parser) ParseFile(path string) ([]declared.Statement, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(string(b), path)
}

// ParseModule parses input, which must contain exactly one module or
// submodule statement, and returns it.
func (p *Parser) ParseModule(input, name string) (declared.Statement, error) {
	ss, err := p.Parse(input, name)
	if err != nil {
		return nil, err
	}
	if len(ss) != 1 {
		return nil, fmt.Errorf("%s: got %d top-level statements, want 1", name, len(ss))
	}
	switch ss[0].Kind() {
	case stmt.ModuleKind, stmt.SubmoduleKind:
		return ss[0], nil
	}
	return nil, fmt.Errorf("%s: top-level statement is %s, want module or submodule", name, ss[0].Kind())
}

// convert returns the declared form of s. Substatements are converted
// before s, such that every error within the subtree is reported.
func (p *Parser) convert(s *yang.Statement) (declared.Statement, util.Errors) {
	var (
		subs []declared.Statement
		errs util.Errors
	)
	for _, c := range s.SubStatements() {
		d, err := p.convert(c)
		if err != nil {
			errs = util.AppendErrs(errs, err)
			continue
		}
		subs = append(subs, d)
	}
	if errs != nil {
		return nil, errs
	}
	d, err := declared.Parse(p.catalog.Lookup(s.Keyword), s.Argument, s.HasArgument, subs)
	if err != nil {
		return nil, util.NewErrs(fmt.Errorf("%s: %w", s.Location(), err))
	}
	return d, nil
}

// DetectVersion returns the YANG version declared by the yang-version
// substatement of module, and YANG 1 if there is none.
func DetectVersion(module declared.Statement) stmt.Version {
	for _, s := range module.Substatements() {
		if s.Kind() != stmt.YANGVersionKind {
			continue
		}
		if v, ok := s.Argument().(stmt.Version); ok {
			return v
		}
	}
	return stmt.Version1
}

// Extensions returns the extension definitions within module, qualified by
// the module's own prefix, such that uses of the extensions within the
// module resolve to them when registered with stmt.NewCatalog.
func Extensions(module declared.Statement) []stmt.Extension {
	prefix := modulePrefix(module)
	var exts []stmt.Extension
	for _, s := range module.Substatements() {
		if s.Kind() != stmt.ExtensionKind {
			continue
		}
		e := stmt.Extension{Module: prefix, Name: s.Argument().(string)}
		for _, a := range s.Substatements() {
			if a.Kind() == stmt.ArgumentKind {
				e.Argument = a.Argument().(string)
			}
		}
		exts = append(exts, e)
	}
	return exts
}

// modulePrefix returns the prefix that module uses to refer to itself.
func modulePrefix(module declared.Statement) string {
	for _, s := range module.Substatements() {
		switch s.Kind() {
		case stmt.PrefixKind:
			return s.Argument().(string)
		case stmt.BelongsToKind:
			for _, b := range s.Substatements() {
				if b.Kind() == stmt.PrefixKind {
					return b.Argument().(string)
				}
			}
		}
	}
	return ""
}
