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

package stmt

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Extension describes a statement defined by a YANG extension statement,
// which is to be registered in a Catalog.
type Extension struct {
	// Module is the name (or prefix) used to qualify the extension's
	// keyword in YANG source.
	Module string
	// Name is the identifier of the extension.
	Name string
	// Argument is the name of the extension's argument. It is empty if
	// the extension takes no argument.
	Argument string
}

// Catalog is an immutable set of statement kinds, which is used to map
// keywords in YANG source to Kinds.
type Catalog struct {
	byKeyword map[string]*Kind
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog

	// unrecognizedKinds interns the kinds created for unrecognized keywords
	// across all catalogues, such that every lookup of the same keyword
	// returns the same Kind.
	unrecognizedKinds sync.Map
)

// Builtin returns the catalogue containing the statements defined by
// RFC7950. The returned catalogue is shared and safe for concurrent use.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		kinds, err := newBuiltinKinds()
		if err != nil {
			// The built-in table is static, so an error here cannot be
			// caused by input data.
			panic(fmt.Sprintf("invalid built-in statement table: %v", err))
		}
		builtinCatalog = &Catalog{byKeyword: kinds}
	})
	return builtinCatalog
}

// NewCatalog returns a catalogue containing the built-in statements and
// the supplied extensions. Kinds of built-in statements are shared with
// the catalogue returned by Builtin.
func NewCatalog(exts ...Extension) (*Catalog, error) {
	b := Builtin()
	kinds := make(map[string]*Kind, len(b.byKeyword)+len(exts))
	for kw, k := range b.byKeyword {
		kinds[kw] = k
	}
	for _, e := range exts {
		if e.Module == "" || !isIdentifier(e.Module) || !isIdentifier(e.Name) {
			return nil, fmt.Errorf("invalid extension name %s:%s", e.Module, e.Name)
		}
		k := &Kind{
			name:    QName{Module: e.Module, Name: e.Name},
			argType: NoArgument,
			class:   extension,
		}
		if e.Argument != "" {
			k.argType, k.argName = StringArg, e.Argument
		}
		if _, ok := kinds[k.Keyword()]; ok {
			return nil, fmt.Errorf("duplicate definition of extension %s", k.Keyword())
		}
		kinds[k.Keyword()] = k
	}
	return &Catalog{byKeyword: kinds}, nil
}

// Lookup returns the kind corresponding to keyword. Keywords that are not
// known to the catalogue resolve to an unrecognized kind that carries the
// original, possibly prefixed, keyword. Unrecognized kinds are shared by all
// catalogues. Lookup never returns nil.
func (c *Catalog) Lookup(keyword string) *Kind {
	if k, ok := c.byKeyword[keyword]; ok {
		return k
	}
	if k, ok := unrecognizedKinds.Load(keyword); ok {
		return k.(*Kind)
	}
	var q QName
	if mod, name, ok := strings.Cut(keyword, ":"); ok {
		q = QName{Module: mod, Name: name}
	} else {
		q = QName{Name: keyword}
	}
	k, _ := unrecognizedKinds.LoadOrStore(keyword, &Kind{
		name:     q,
		argType:  StringArg,
		argName:  "value",
		optional: true,
		class:    unrecognized,
	})
	return k.(*Kind)
}

// Known returns the kind corresponding to keyword, and false if the
// keyword is neither built-in nor a registered extension.
func (c *Catalog) Known(keyword string) (*Kind, bool) {
	k, ok := c.byKeyword[keyword]
	return k, ok
}

// MustLookup returns the kind corresponding to keyword, and panics if the
// keyword is not known to the catalogue. It is intended for use with
// keyword constants.
func (c *Catalog) MustLookup(keyword string) *Kind {
	k, ok := c.byKeyword[keyword]
	if !ok {
		panic(fmt.Sprintf("unknown statement keyword %q", keyword))
	}
	return k
}

// AllowedSubstatements returns the kinds that may appear within a
// statement of kind k in YANG version v. Statements without a grammar,
// such as extensions, return nil, indicating that any substatement is
// accepted.
func (c *Catalog) AllowedSubstatements(k *Kind, v Version) []*Kind {
	if !k.hasGrammar() {
		return nil
	}
	return k.Substatements(v)
}

// Kinds returns all kinds registered in the catalogue, sorted by keyword.
// Unrecognized kinds are not included.
func (c *Catalog) Kinds() []*Kind {
	keywords := maps.Keys(c.byKeyword)
	slices.Sort(keywords)
	kinds := make([]*Kind, 0, len(keywords))
	for _, kw := range keywords {
		kinds = append(kinds, c.byKeyword[kw])
	}
	return kinds
}
