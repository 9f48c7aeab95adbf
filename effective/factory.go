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
	"errors"
	"fmt"

	log "github.com/golang/glog"
	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/stmt"
)

// DefaultIndexScanThreshold is the number of substatements at or below
// which substatement lookups scan linearly rather than building a map.
const DefaultIndexScanThreshold = 8

// ErrUnsupportedOriginal is returned by Copy when the statement to be
// copied was not created by a Factory.
var ErrUnsupportedOriginal = errors.New("unsupported original statement")

// FactoryOptions controls the behaviour of a Factory.
type FactoryOptions struct {
	// Version is the YANG version whose grammar is used to validate the
	// cardinality of substatements.
	Version stmt.Version
	// IndexScanThreshold is the number of substatements at or below which
	// lookups by kind scan the substatements linearly. If zero,
	// DefaultIndexScanThreshold is used.
	IndexScanThreshold int
}

// Factory constructs effective statements. A Factory holds no mutable
// state and may be used concurrently.
type Factory struct {
	version   stmt.Version
	threshold int
}

// NewFactory returns a Factory configured by opts.
func NewFactory(opts FactoryOptions) *Factory {
	t := opts.IndexScanThreshold
	if t <= 0 {
		t = DefaultIndexScanThreshold
	}
	return &Factory{version: opts.Version, threshold: t}
}

// Version returns the YANG version used by the factory.
func (f *Factory) Version() stmt.Version { return f.version }

// CreateOpt is an option that can be supplied to Create.
type CreateOpt interface {
	IsCreateOpt()
}

// CopyOpt is an option that can be supplied to Copy.
type CopyOpt interface {
	IsCopyOpt()
}

// WithOriginal records Original as the first materialisation of the
// statement being created or copied. If Original is itself a copy, its
// own original is recorded instead.
type WithOriginal struct {
	Original Statement
}

// IsCreateOpt marks WithOriginal as a valid CreateOpt.
func (*WithOriginal) IsCreateOpt() {}

// IsCopyOpt marks WithOriginal as a valid CopyOpt.
func (*WithOriginal) IsCopyOpt() {}

// CopySubstatements replaces the substatements of the statement being
// copied, such as with copies of the original's substatements that have
// been re-parented to the new location.
type CopySubstatements struct {
	Substatements []Statement
}

// IsCopyOpt marks CopySubstatements as a valid CopyOpt.
func (*CopySubstatements) IsCopyOpt() {}

// Create returns the effective statement built from decl, located at path
// with the derived properties flags, and with the effective substatements
// subs. The substatements are validated against the cardinality of the
// grammar of decl's kind; an *IndexingError is returned if a substatement
// that may appear at most once is repeated.
//
// Statements of kind rpc or action without an input or output
// substatement are given an undeclared, empty input or output. Data
// definition statements within a choice are wrapped in an undeclared case.
func (f *Factory) Create(decl declared.Statement, path Path, flags Flags, subs []Statement, opts ...CreateOpt) (Statement, error) {
	if decl == nil {
		return nil, fmt.Errorf("cannot create effective statement from nil declared statement")
	}
	var orig Statement
	for _, o := range opts {
		switch v := o.(type) {
		case *WithOriginal:
			if v.Original != nil {
				orig = origin(v.Original)
			}
		}
	}
	return f.assemble(decl.Kind(), decl.Argument(), decl, orig, path, flags, subs)
}

// CreateUndeclared returns an effective statement that has no declared
// counterpart, of kind k with argument arg.
func (f *Factory) CreateUndeclared(k *stmt.Kind, arg any, path Path, flags Flags, subs []Statement) (Statement, error) {
	if k == nil {
		return nil, fmt.Errorf("cannot create undeclared statement with nil kind")
	}
	if err := k.CheckArgument(arg); err != nil {
		return nil, err
	}
	return f.assemble(k, arg, nil, nil, path, flags, subs)
}

// ImplicitInput returns the undeclared, empty input statement of an rpc or
// action located at parent.
func (f *Factory) ImplicitInput(parent Path, flags Flags) (Statement, error) {
	return f.CreateUndeclared(stmt.InputKind, nil, operationChild(parent, "input"), flags.Inherited(), nil)
}

// ImplicitOutput returns the undeclared, empty output statement of an rpc
// or action located at parent.
func (f *Factory) ImplicitOutput(parent Path, flags Flags) (Statement, error) {
	return f.CreateUndeclared(stmt.OutputKind, nil, operationChild(parent, "output"), flags.Inherited(), nil)
}

// ImplicitCase returns the undeclared case that wraps child, a data
// definition statement that appeared directly within a choice. The case
// takes the name of child, and is located at the parent of child's path;
// callers must therefore locate child beneath the shorthand case, as
// schema node identifiers do.
func (f *Factory) ImplicitCase(child Statement) (Statement, error) {
	if child == nil {
		return nil, fmt.Errorf("cannot create implicit case for nil statement")
	}
	return f.CreateUndeclared(stmt.CaseKind, child.Argument(), child.Path().Parent(), child.Flags().Inherited(), []Statement{child})
}

// operationChild returns the path of the input or output of the operation
// at parent, qualified by the operation's module.
func operationChild(parent Path, name string) Path {
	if parent.IsZero() {
		return parent
	}
	q, _ := parent.Last()
	return parent.Child(stmt.QName{Module: q.Module, Name: name})
}

// Copy returns a copy of src located at path with the properties flags.
// The copy shares src's declared statement, argument and substatements,
// and records the first materialisation of src as its Original, such
// that provenance never refers to a copy of a copy.
//
// ErrUnsupportedOriginal is returned if src was not created by a Factory.
func (f *Factory) Copy(src Statement, path Path, flags Flags, opts ...CopyOpt) (Statement, error) {
	var (
		orig    Statement
		subs    []Statement
		newSubs bool
	)
	for _, o := range opts {
		switch v := o.(type) {
		case *WithOriginal:
			if v.Original != nil {
				orig = origin(v.Original)
			}
		case *CopySubstatements:
			subs, newSubs = v.Substatements, true
		}
	}

	switch s := src.(type) {
	case *emptyStatement:
		if s == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedOriginal, src)
		}
		if orig == nil {
			orig = origin(s)
		}
		if newSubs {
			return f.assemble(s.kind, s.arg, s.decl, orig, path, flags, subs)
		}
		return &emptyStatement{kind: s.kind, arg: s.arg, decl: s.decl, orig: orig, path: path, flags: flags}, nil
	case *regularStatement:
		if s == nil {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedOriginal, src)
		}
		if orig == nil {
			orig = origin(s)
		}
		if newSubs {
			return f.assemble(s.kind, s.arg, s.decl, orig, path, flags, subs)
		}
		return &regularStatement{
			emptyStatement: emptyStatement{kind: s.kind, arg: s.arg, decl: s.decl, orig: orig, path: path, flags: flags},
			subs:           s.subs,
			idx:            s.idx,
		}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedOriginal, src)
}

// assemble applies the implicit node rules for k, validates the
// substatements and selects the representation of the statement.
func (f *Factory) assemble(k *stmt.Kind, arg any, decl declared.Statement, orig Statement, path Path, flags Flags, subs []Statement) (Statement, error) {
	for i, s := range subs {
		if s == nil {
			return nil, fmt.Errorf("%s: nil substatement at index %d", k, i)
		}
	}

	var err error
	switch k {
	case stmt.RPCKind, stmt.ActionKind:
		if subs, err = f.addImplicitIO(path, flags, subs); err != nil {
			return nil, err
		}
	case stmt.ChoiceKind:
		if subs, err = f.wrapShorthandCases(subs); err != nil {
			return nil, err
		}
	}

	if len(subs) == 0 {
		if s, ok := internedEffective(decl, path, flags, orig); ok {
			return s, nil
		}
		return &emptyStatement{kind: k, arg: arg, decl: decl, orig: orig, path: path, flags: flags}, nil
	}

	if err := checkCardinality(k, arg, path, f.version, subs); err != nil {
		return nil, err
	}
	return &regularStatement{
		emptyStatement: emptyStatement{kind: k, arg: arg, decl: decl, orig: orig, path: path, flags: flags},
		subs:           append([]Statement(nil), subs...),
		idx:            newIndex(len(subs), f.threshold),
	}, nil
}

// addImplicitIO appends an undeclared input and output to the
// substatements of an operation if they are not present.
func (f *Factory) addImplicitIO(path Path, flags Flags, subs []Statement) ([]Statement, error) {
	var hasInput, hasOutput bool
	for _, s := range subs {
		switch s.Kind() {
		case stmt.InputKind:
			hasInput = true
		case stmt.OutputKind:
			hasOutput = true
		}
	}
	if hasInput && hasOutput {
		return subs, nil
	}
	out := append(make([]Statement, 0, len(subs)+2), subs...)
	if !hasInput {
		in, err := f.ImplicitInput(path, flags)
		if err != nil {
			return nil, err
		}
		log.V(2).Infof("synthesized implicit input for operation at %s", path)
		out = append(out, in)
	}
	if !hasOutput {
		o, err := f.ImplicitOutput(path, flags)
		if err != nil {
			return nil, err
		}
		log.V(2).Infof("synthesized implicit output for operation at %s", path)
		out = append(out, o)
	}
	return out, nil
}

// wrapShorthandCases replaces each data definition statement within the
// substatements of a choice with an undeclared case containing it.
func (f *Factory) wrapShorthandCases(subs []Statement) ([]Statement, error) {
	var out []Statement
	for i, s := range subs {
		if !s.Kind().IsDataDefinition() {
			continue
		}
		if out == nil {
			out = append([]Statement(nil), subs...)
		}
		c, err := f.ImplicitCase(s)
		if err != nil {
			return nil, err
		}
		log.V(2).Infof("synthesized implicit case for %s", describe(s))
		out[i] = c
	}
	if out == nil {
		return subs, nil
	}
	return out, nil
}
