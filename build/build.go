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

// Package build constructs the effective statement tree of a single YANG
// module from its declared form.
//
// The builder computes the schema node identifier and derived flags of
// each schema tree node, expands uses of groupings defined within the
// module by copying the effective form of the grouping to each use site,
// and places data nodes that appear directly within a choice beneath their
// shorthand case. Top-level statements of the module are built
// concurrently.
//
// Groupings imported from other modules, augment, deviation, refine and
// if-feature evaluation are retained in the tree as statements but not
// applied.
package build

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/openconfig/yangmodel/declared"
	"github.com/openconfig/yangmodel/effective"
	"github.com/openconfig/yangmodel/stmt"
	"github.com/openconfig/yangmodel/stmtparse"
	"github.com/openconfig/yangmodel/util"
	"github.com/sourcegraph/conc/pool"
)

// ErrGroupingCycle is returned when a grouping uses itself, directly or
// through other groupings.
var ErrGroupingCycle = errors.New("grouping cycle")

// Options controls the construction of an effective tree.
type Options struct {
	// Version overrides the YANG version declared by the module's
	// yang-version statement.
	Version *stmt.Version
	// Workers is the maximum number of top-level statements that are built
	// concurrently. If zero, runtime.GOMAXPROCS is used.
	Workers int
	// IndexScanThreshold is passed to the effective.Factory.
	IndexScanThreshold int
}

// builder holds the per-module state of a build. It is not modified once
// the build has started.
type builder struct {
	f      *effective.Factory
	module string
	prefix string
}

// frame describes the position within the tree at which a statement is
// being built.
type frame struct {
	// parent is the kind of the enclosing statement.
	parent *stmt.Kind
	// path is the path of the enclosing schema tree node.
	path effective.Path
	// flags are the flags of the enclosing schema tree node.
	flags effective.Flags
	// detached is set within statements that are not instantiated in the
	// schema tree, such as groupings, whose descendants have no path.
	detached bool
	// noConfig is set within operations and notifications.
	noConfig bool
	// scope holds the groupings visible at this position.
	scope *scope
}

// Build returns the effective tree of module, which must be a module or
// submodule statement.
func Build(ctx context.Context, module declared.Statement, opts Options) (effective.Statement, error) {
	if module == nil {
		return nil, fmt.Errorf("nil module")
	}
	name, prefix, err := moduleIdentity(module)
	if err != nil {
		return nil, err
	}

	v := stmtparse.DetectVersion(module)
	if opts.Version != nil {
		v = *opts.Version
	}
	b := &builder{
		f:      effective.NewFactory(effective.FactoryOptions{Version: v, IndexScanThreshold: opts.IndexScanThreshold}),
		module: name,
		prefix: prefix,
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.V(1).Infof("building module %s (YANG %s) with %d workers", name, v, workers)

	sc, err := b.newScope(ctx, module, nil)
	if err != nil {
		return nil, err
	}
	fr := frame{parent: module.Kind(), scope: sc}

	results := make([][]effective.Statement, module.NumSubstatements())
	p := pool.New().WithErrors().WithMaxGoroutines(workers)
	for i := 0; i < module.NumSubstatements(); i++ {
		i, sub := i, module.Substatement(i)
		p.Go(func() error {
			ss, err := b.build(ctx, sub, fr)
			if err != nil {
				return err
			}
			results[i] = ss
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var subs []effective.Statement
	for _, r := range results {
		subs = append(subs, r...)
	}
	m, err := b.f.Create(module, effective.Path{}, 0, subs)
	if err != nil {
		return nil, err
	}
	log.V(1).Infof("built module %s", name)
	return m, nil
}

// moduleIdentity returns the name of the module that defines the schema
// nodes of module, and the prefix used within it to refer to itself.
func moduleIdentity(module declared.Statement) (string, string, error) {
	switch module.Kind() {
	case stmt.ModuleKind:
		var prefix string
		for _, s := range module.Substatements() {
			if s.Kind() == stmt.PrefixKind {
				prefix = s.Argument().(string)
			}
		}
		return module.Argument().(string), prefix, nil
	case stmt.SubmoduleKind:
		for _, s := range module.Substatements() {
			if s.Kind() != stmt.BelongsToKind {
				continue
			}
			var prefix string
			for _, p := range s.Substatements() {
				if p.Kind() == stmt.PrefixKind {
					prefix = p.Argument().(string)
				}
			}
			return s.Argument().(string), prefix, nil
		}
		return "", "", fmt.Errorf("submodule %v has no belongs-to statement", module.Argument())
	}
	return "", "", fmt.Errorf("cannot build %s statement, want module or submodule", module.Kind())
}

// build returns the effective statements that d contributes to its
// parent. This is d itself, followed by the expansion of d if it is a
// uses statement.
func (b *builder) build(ctx context.Context, d declared.Statement, fr frame) ([]effective.Statement, error) {
	if d.Kind() == stmt.GroupingKind {
		// Resolved when the enclosing scope was created.
		g, err := b.lookup(ctx, fr.scope, d.Argument().(string))
		if err != nil {
			return nil, err
		}
		return []effective.Statement{g}, nil
	}
	s, err := b.buildOne(ctx, d, fr)
	if err != nil {
		return nil, err
	}
	if d.Kind() != stmt.UsesKind {
		return []effective.Statement{s}, nil
	}
	exp, err := b.expand(ctx, d, fr)
	if err != nil {
		return nil, err
	}
	return append([]effective.Statement{s}, exp...), nil
}

// buildOne returns the effective form of d at the position fr.
func (b *builder) buildOne(ctx context.Context, d declared.Statement, fr frame) (effective.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, flags := b.position(d.Kind(), nodeName(d.Kind(), d.Argument()), d, fr)
	util.DbgPrint("building %s %s at %q", d.Kind(), util.ValueStr(d.Argument()), path)

	sc, err := b.newScope(ctx, d, fr.scope)
	if err != nil {
		return nil, err
	}
	child := b.childFrame(d.Kind(), path, flags, fr)
	child.scope = sc

	var subs []effective.Statement
	for _, sub := range d.Substatements() {
		ss, err := b.build(ctx, sub, child)
		if err != nil {
			return nil, err
		}
		subs = append(subs, ss...)
	}
	s, err := b.f.Create(d, path, flags, subs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", describe(d), err)
	}
	return s, nil
}

// childFrame returns the frame in which the substatements of a statement
// of kind k, located at path with flags, are built.
func (b *builder) childFrame(k *stmt.Kind, path effective.Path, flags effective.Flags, fr frame) frame {
	child := frame{parent: k, path: path, flags: flags, detached: fr.detached, noConfig: fr.noConfig}
	switch {
	case k == stmt.GroupingKind:
		child.detached = true
	case k == stmt.ModuleKind || k == stmt.SubmoduleKind:
	case !k.IsSchemaTree():
		child.detached = true
	}
	switch k {
	case stmt.RPCKind, stmt.ActionKind, stmt.NotificationKind:
		child.noConfig = true
	}
	return child
}

// position returns the path and flags of a statement of kind k named name
// at the position fr. d supplies the substatements that determine the
// flags, and is nil for statements without a declared form.
func (b *builder) position(k *stmt.Kind, name string, d declared.Statement, fr frame) (effective.Path, effective.Flags) {
	if fr.detached || !k.IsSchemaTree() || k == stmt.GroupingKind {
		return effective.Path{}, 0
	}
	q := stmt.QName{Module: b.module, Name: name}
	path := fr.path
	if fr.parent == stmt.ChoiceKind && k.IsDataDefinition() {
		// Shorthand case.
		path = path.Child(q)
	}
	path = path.Child(q)
	return path, b.flags(k, d, fr)
}

// flags computes the flags of a schema tree node of kind k declared as d
// within fr.
func (b *builder) flags(k *stmt.Kind, d declared.Statement, fr frame) effective.Flags {
	f := fr.flags.Inherited()
	switch {
	case fr.noConfig, k == stmt.RPCKind, k == stmt.ActionKind, k == stmt.NotificationKind:
		f = f.WithConfig(yang.TSUnset)
	case f.Config() == yang.TSUnset:
		f = f.WithConfig(yang.TSTrue)
	}
	if d == nil {
		return f
	}
	for _, s := range d.Substatements() {
		switch s.Kind() {
		case stmt.StatusKind:
			f = f.WithStatus(s.Argument().(stmt.Status))
		case stmt.ConfigKind:
			if !fr.noConfig {
				if s.Argument().(bool) {
					f = f.WithConfig(yang.TSTrue)
				} else {
					f = f.WithConfig(yang.TSFalse)
				}
			}
		case stmt.MandatoryKind:
			f = f.WithMandatory(s.Argument().(bool))
		case stmt.MinElementsKind:
			if n := s.Argument().(yang.Number); !n.Negative && n.Value > 0 {
				f = f.WithMandatory(true)
			}
		case stmt.OrderedByKind:
			f = f.WithUserOrdered(s.Argument().(stmt.OrderedBy) == stmt.OrderedByUser)
		case stmt.PresenceKind:
			f = f.WithPresence(true)
		}
	}
	return f
}

// expand returns copies of the schema tree nodes of the grouping used by
// u, located beneath the parent of u.
func (b *builder) expand(ctx context.Context, u declared.Statement, fr frame) ([]effective.Statement, error) {
	q := u.Argument().(stmt.QName)
	if q.Module != "" && q.Module != b.prefix {
		return nil, fmt.Errorf("%s: groupings defined in other modules are not supported", describe(u))
	}
	g, err := b.lookup(ctx, fr.scope, q.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", describe(u), err)
	}
	util.DbgPrint("expanding grouping %s at %q", q.Name, fr.path)
	var out []effective.Statement
	for _, s := range g.Substatements() {
		if !s.Kind().IsSchemaTree() || s.Kind() == stmt.GroupingKind {
			continue
		}
		c, err := b.copyTree(ctx, s, fr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", describe(u), err)
		}
		out = append(out, c)
	}
	return out, nil
}

// copyTree returns a copy of the schema tree node s, and its schema tree
// descendants, located at fr. Statements that are not schema tree nodes
// are shared with s.
func (b *builder) copyTree(ctx context.Context, s effective.Statement, fr frame) (effective.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Kind().IsSchemaTree() {
		return s, nil
	}
	path, flags := b.position(s.Kind(), nodeName(s.Kind(), s.Argument()), s.Declared(), fr)
	if !fr.detached {
		flags = flags.WithAddedByUses(true)
	}
	child := b.childFrame(s.Kind(), path, flags, fr)

	var opts []effective.CopyOpt
	if s.NumSubstatements() != 0 {
		subs := make([]effective.Statement, 0, s.NumSubstatements())
		for _, sub := range s.Substatements() {
			c, err := b.copyTree(ctx, sub, child)
			if err != nil {
				return nil, err
			}
			subs = append(subs, c)
		}
		opts = append(opts, &effective.CopySubstatements{Substatements: subs})
	}
	return b.f.Copy(s, path, flags, opts...)
}

// nodeName returns the name of the schema node defined by a statement of
// kind k with the argument arg.
func nodeName(k *stmt.Kind, arg any) string {
	switch k {
	case stmt.InputKind, stmt.OutputKind:
		return k.Keyword()
	}
	if s, ok := arg.(string); ok {
		return s
	}
	return ""
}

func describe(d declared.Statement) string {
	if a := d.Argument(); a != nil {
		return fmt.Sprintf("%s %v", d.Kind(), a)
	}
	return d.Kind().String()
}
