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
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
	"github.com/openconfig/yangmodel/stmt"
)

// Flags is a compact encoding of the derived boolean and enumerated
// properties of an effective statement. The zero value describes a
// current statement with no config, mandatory or ordering properties set.
//
// Bit layout:
//
//	0-1  status (stmt.Status)
//	2-3  config (yang.TriState)
//	4    mandatory
//	5    ordered-by user
//	6    presence container
//	7    added by uses
//	8    augmenting
type Flags uint16

const (
	statusMask  Flags = 0x3
	configShift       = 2
	configMask  Flags = 0x3 << configShift
)

const (
	flagMandatory Flags = 1 << (4 + iota)
	flagUserOrdered
	flagPresence
	flagAddedByUses
	flagAugmenting
)

// Status returns the status of the statement.
func (f Flags) Status() stmt.Status {
	return stmt.Status(f & statusMask)
}

// WithStatus returns f with the status set to s.
func (f Flags) WithStatus(s stmt.Status) Flags {
	return f&^statusMask | Flags(s)&statusMask
}

// Config returns whether the statement represents configuration, or
// yang.TSUnset if this is not known.
func (f Flags) Config() yang.TriState {
	return yang.TriState((f & configMask) >> configShift)
}

// WithConfig returns f with the config property set to c.
func (f Flags) WithConfig(c yang.TriState) Flags {
	return f&^configMask | (Flags(c)<<configShift)&configMask
}

// Mandatory returns true if the statement is mandatory.
func (f Flags) Mandatory() bool { return f&flagMandatory != 0 }

// WithMandatory returns f with the mandatory property set to b.
func (f Flags) WithMandatory(b bool) Flags { return f.with(flagMandatory, b) }

// UserOrdered returns true if the statement is a list or leaf-list that is
// ordered by the user.
func (f Flags) UserOrdered() bool { return f&flagUserOrdered != 0 }

// WithUserOrdered returns f with the ordered-by user property set to b.
func (f Flags) WithUserOrdered(b bool) Flags { return f.with(flagUserOrdered, b) }

// Presence returns true if the statement is a presence container.
func (f Flags) Presence() bool { return f&flagPresence != 0 }

// WithPresence returns f with the presence property set to b.
func (f Flags) WithPresence(b bool) Flags { return f.with(flagPresence, b) }

// AddedByUses returns true if the statement was instantiated from a
// grouping.
func (f Flags) AddedByUses() bool { return f&flagAddedByUses != 0 }

// WithAddedByUses returns f with the added-by-uses property set to b.
func (f Flags) WithAddedByUses(b bool) Flags { return f.with(flagAddedByUses, b) }

// Augmenting returns true if the statement was added to its parent by an
// augment statement.
func (f Flags) Augmenting() bool { return f&flagAugmenting != 0 }

// WithAugmenting returns f with the augmenting property set to b.
func (f Flags) WithAugmenting(b bool) Flags { return f.with(flagAugmenting, b) }

func (f Flags) with(bit Flags, b bool) Flags {
	if b {
		return f | bit
	}
	return f &^ bit
}

// Inherited returns the subset of f that is inherited by child statements:
// the status and config properties.
func (f Flags) Inherited() Flags {
	return f & (statusMask | configMask)
}

// String returns a human readable representation of f.
func (f Flags) String() string {
	parts := []string{"status=" + f.Status().String()}
	if c := f.Config(); c != yang.TSUnset {
		parts = append(parts, "config="+c.String())
	}
	for _, b := range []struct {
		set  bool
		name string
	}{
		{f.Mandatory(), "mandatory"},
		{f.UserOrdered(), "user-ordered"},
		{f.Presence(), "presence"},
		{f.AddedByUses(), "added-by-uses"},
		{f.Augmenting(), "augmenting"},
	} {
		if b.set {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, " ")
}
