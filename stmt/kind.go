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

// Package stmt contains the catalogue of YANG statement kinds. Each Kind
// describes a single YANG keyword (built-in, extension-defined or
// unrecognized), the semantic type of its argument, and the substatements
// that it may contain in each version of the YANG language.
//
// Kinds are immutable once a Catalog has been constructed, and are shared
// by identity: two statements are of the same kind if and only if their
// *Kind pointers are equal.
package stmt

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Version is a version of the YANG language.
type Version int

const (
	// Version1 is YANG version 1, as defined by RFC6020.
	Version1 Version = iota
	// Version11 is YANG version 1.1, as defined by RFC7950.
	Version11
	// numVersions is the number of YANG versions that are supported.
	numVersions
)

// String returns the argument of the yang-version statement corresponding
// to v.
func (v Version) String() string {
	switch v {
	case Version1:
		return "1"
	case Version11:
		return "1.1"
	}
	return fmt.Sprintf("unknown-version-%d", int(v))
}

// ParseVersion returns the Version corresponding to the argument of a
// yang-version statement.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1":
		return Version1, nil
	case "1.1":
		return Version11, nil
	}
	return Version1, fmt.Errorf("invalid yang-version %q", s)
}

// Cardinality describes how many times a substatement may appear within
// its parent. A Max of -1 indicates that there is no upper bound.
type Cardinality struct {
	Min int
	Max int
}

// Singleton returns true if the substatement may appear at most once.
func (c Cardinality) Singleton() bool {
	return c.Max == 1
}

// String returns the RFC7950 notation for c, e.g., "0..1" or "1..n".
func (c Cardinality) String() string {
	switch {
	case c.Min == c.Max:
		return fmt.Sprintf("%d", c.Min)
	case c.Max < 0:
		return fmt.Sprintf("%d..n", c.Min)
	}
	return fmt.Sprintf("%d..%d", c.Min, c.Max)
}

// kindClass is a bitset of classifications that apply to a Kind.
type kindClass uint8

const (
	// schemaTree is set for statements that define a node in the schema
	// tree, and hence are assigned a schema node identifier.
	schemaTree kindClass = 1 << iota
	// dataDef is set for data definition statements, which may appear as
	// shorthand cases directly within a choice.
	dataDef
	// builtin is set for statements defined by RFC7950.
	builtin
	// extension is set for statements defined by an extension statement.
	extension
	// unrecognized is set for statements whose keyword is not known.
	unrecognized
)

// Kind describes a single type of YANG statement.
type Kind struct {
	name     QName
	argType  ArgType
	argName  string
	optional bool
	class    kindClass
	// grammar is indexed by Version, and maps the kinds of allowed
	// substatements to their cardinality.
	grammar [numVersions]map[*Kind]Cardinality
}

// Keyword returns the keyword used for the statement in YANG source. For
// extension and unrecognized statements, it is of the form prefix:name.
func (k *Kind) Keyword() string {
	return k.name.String()
}

// Name returns the qualified name of the statement. Built-in statements
// have an empty Module.
func (k *Kind) Name() QName {
	return k.name
}

// String implements the fmt.Stringer interface.
func (k *Kind) String() string {
	if k == nil {
		return "<nil kind>"
	}
	return k.Keyword()
}

// ArgType returns the semantic type of the statement's argument.
func (k *Kind) ArgType() ArgType {
	return k.argType
}

// ArgumentName returns the name of the argument as used by YIN, e.g.,
// "name" for a container, or "value" for a description.
func (k *Kind) ArgumentName() string {
	return k.argName
}

// ArgumentRequired returns true if a statement of kind k must have an
// argument.
func (k *Kind) ArgumentRequired() bool {
	return k.argType != NoArgument && !k.optional
}

// IsBuiltin returns true if k is a statement defined by RFC7950.
func (k *Kind) IsBuiltin() bool { return k.class&builtin != 0 }

// IsExtension returns true if k was registered from an extension
// definition.
func (k *Kind) IsExtension() bool { return k.class&extension != 0 }

// IsUnrecognized returns true if k was created for a keyword that is not
// known to the catalogue.
func (k *Kind) IsUnrecognized() bool { return k.class&unrecognized != 0 }

// IsSchemaTree returns true if statements of kind k are nodes in the
// schema tree.
func (k *Kind) IsSchemaTree() bool { return k.class&schemaTree != 0 }

// IsDataDefinition returns true if statements of kind k are data
// definition statements.
func (k *Kind) IsDataDefinition() bool { return k.class&dataDef != 0 }

// ClosedDomain returns true if the argument of k has a small, closed set
// of values, such that statements of this kind can be interned.
func (k *Kind) ClosedDomain() bool {
	return k.argType.closedDomain()
}

// Cardinality returns the cardinality of child within statements of kind
// k in YANG version v. It returns false if child is not a valid
// substatement. Statements that do not define a grammar (extensions and
// unrecognized statements) accept any substatement with no bound on its
// cardinality.
func (k *Kind) Cardinality(child *Kind, v Version) (Cardinality, bool) {
	if !k.hasGrammar() || child.IsExtension() || child.IsUnrecognized() {
		return Cardinality{Min: 0, Max: -1}, true
	}
	if v < 0 || v >= numVersions {
		return Cardinality{}, false
	}
	c, ok := k.grammar[v][child]
	return c, ok
}

// Substatements returns the set of kinds that are valid substatements of
// k in YANG version v, sorted by keyword.
func (k *Kind) Substatements(v Version) []*Kind {
	if v < 0 || v >= numVersions {
		return nil
	}
	kinds := maps.Keys(k.grammar[v])
	slices.SortFunc(kinds, func(a, b *Kind) int {
		return strings.Compare(a.Keyword(), b.Keyword())
	})
	return kinds
}

// hasGrammar returns true if k restricts its substatements.
func (k *Kind) hasGrammar() bool {
	return k.class&builtin != 0
}

// QName is a namespace-qualified name. For names that have not yet been
// resolved against the import statements of a module, Module holds the
// prefix that was used in the source.
type QName struct {
	Module string
	Name   string
}

// String returns q in the module:name form used in YANG source.
func (q QName) String() string {
	if q.Module == "" {
		return q.Name
	}
	return q.Module + ":" + q.Name
}

// ParseQName parses s, which is of the form [prefix:]identifier.
func ParseQName(s string) (QName, error) {
	var q QName
	if i := strings.IndexByte(s, ':'); i >= 0 {
		q.Module, q.Name = s[:i], s[i+1:]
		if !isIdentifier(q.Module) {
			return QName{}, fmt.Errorf("invalid prefix %q in %q", q.Module, s)
		}
	} else {
		q.Name = s
	}
	if !isIdentifier(q.Name) {
		return QName{}, fmt.Errorf("invalid identifier %q in %q", q.Name, s)
	}
	return q, nil
}

// isIdentifier returns true if s is a valid YANG identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c == '-' || c == '.' || c >= '0' && c <= '9'):
		default:
			return false
		}
	}
	return true
}
