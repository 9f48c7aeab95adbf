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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openconfig/goyang/pkg/yang"
)

// ArgType is the semantic type of a statement's argument.
type ArgType int

const (
	// NoArgument is used for statements that do not take an argument.
	NoArgument ArgType = iota
	// IdentifierArg is a YANG identifier, stored as a string.
	IdentifierArg
	// StringArg is a free-form string.
	StringArg
	// BooleanArg is "true" or "false", stored as a bool.
	BooleanArg
	// QNameArg is an identifier with an optional prefix, stored as a QName.
	QNameArg
	// NumberArg is an integer, stored as a yang.Number.
	NumberArg
	// UnboundedArg is an integer or "unbounded", stored as a MaxElements.
	UnboundedArg
	// StatusArg is the argument of the status statement.
	StatusArg
	// OrderedByArg is the argument of the ordered-by statement.
	OrderedByArg
	// DeviateArg is the argument of the deviate statement.
	DeviateArg
	// VersionArg is the argument of the yang-version statement.
	VersionArg
	// ModifierArg is the argument of the modifier statement.
	ModifierArg
	// SchemaNodeIDArg is an absolute or descendant schema node identifier.
	SchemaNodeIDArg
	// XPathArg is an XPath expression, stored unevaluated as a string.
	XPathArg
	// RangeArg is a range or length expression, stored as a string.
	RangeArg
	// IfFeatureArg is an if-feature expression, stored as a string.
	IfFeatureArg
	// URIArg is a URI, stored as a string.
	URIArg
	// DateArg is a revision date of the form YYYY-MM-DD, stored as a string.
	DateArg
	// NameListArg is a space separated list of names, as used by the key
	// and unique statements, stored as a NameList.
	NameListArg
)

var argTypeNames = map[ArgType]string{
	NoArgument:      "none",
	IdentifierArg:   "identifier",
	StringArg:       "string",
	BooleanArg:      "boolean",
	QNameArg:        "qname",
	NumberArg:       "number",
	UnboundedArg:    "unbounded-number",
	StatusArg:       "status",
	OrderedByArg:    "ordered-by",
	DeviateArg:      "deviate",
	VersionArg:      "yang-version",
	ModifierArg:     "modifier",
	SchemaNodeIDArg: "schema-nodeid",
	XPathArg:        "xpath",
	RangeArg:        "range",
	IfFeatureArg:    "if-feature-expr",
	URIArg:          "uri",
	DateArg:         "date",
	NameListArg:     "name-list",
}

// String implements the fmt.Stringer interface.
func (a ArgType) String() string {
	if s, ok := argTypeNames[a]; ok {
		return s
	}
	return fmt.Sprintf("unknown-argtype-%d", int(a))
}

// closedDomain returns true if the argument type has a small set of
// possible values.
func (a ArgType) closedDomain() bool {
	switch a {
	case BooleanArg, StatusArg, OrderedByArg, DeviateArg, VersionArg, ModifierArg:
		return true
	}
	return false
}

// ErrArgumentMismatch is matched by errors returned when a statement's
// argument is inconsistent with its kind.
var ErrArgumentMismatch = errors.New("argument does not match statement kind")

// ArgumentError is returned when an argument cannot be parsed, or a value
// is supplied that is not consistent with the ArgType of a Kind.
type ArgumentError struct {
	Kind   *Kind
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %v (%T) for %s statement, argument type %s: %s", e.Value, e.Value, e.Kind, e.Kind.ArgType(), e.Reason)
}

// Is allows ArgumentError to be matched against ErrArgumentMismatch.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgumentMismatch
}

func (k *Kind) argErr(v any, format string, args ...any) error {
	return &ArgumentError{Kind: k, Value: v, Reason: fmt.Sprintf(format, args...)}
}

// ParseArgument converts the raw argument text of a statement of kind k
// into the value stored in the argument slot of a statement.
func (k *Kind) ParseArgument(raw string) (any, error) {
	switch k.argType {
	case NoArgument:
		if raw != "" {
			return nil, k.argErr(raw, "statement takes no argument")
		}
		return nil, nil
	case IdentifierArg:
		if !isIdentifier(raw) {
			return nil, k.argErr(raw, "not a valid identifier")
		}
		return raw, nil
	case StringArg, XPathArg, IfFeatureArg, RangeArg:
		return raw, nil
	case URIArg:
		if raw == "" {
			return nil, k.argErr(raw, "empty URI")
		}
		return raw, nil
	case BooleanArg:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, k.argErr(raw, `must be "true" or "false"`)
	case QNameArg:
		q, err := ParseQName(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return q, nil
	case NumberArg:
		n, err := yang.ParseInt(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return n, nil
	case UnboundedArg:
		if raw == "unbounded" {
			return Unbounded, nil
		}
		n, err := yang.ParseInt(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		if n.Negative {
			return nil, k.argErr(raw, "must not be negative")
		}
		return MaxElements{N: n}, nil
	case StatusArg:
		s, err := ParseStatus(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return s, nil
	case OrderedByArg:
		o, err := ParseOrderedBy(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return o, nil
	case DeviateArg:
		d, err := ParseDeviate(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return d, nil
	case VersionArg:
		v, err := ParseVersion(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return v, nil
	case ModifierArg:
		m, err := ParseModifier(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return m, nil
	case SchemaNodeIDArg:
		id, err := ParseSchemaNodeID(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return id, nil
	case DateArg:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return nil, k.argErr(raw, "not a valid revision date")
		}
		return raw, nil
	case NameListArg:
		l, err := ParseNameList(raw)
		if err != nil {
			return nil, k.argErr(raw, "%v", err)
		}
		return l, nil
	}
	return nil, k.argErr(raw, "unhandled argument type")
}

// CheckArgument returns an error if v is not a valid value for the
// argument slot of a statement of kind k. A nil v is valid only when the
// argument of k is not required.
func (k *Kind) CheckArgument(v any) error {
	if v == nil {
		if k.ArgumentRequired() {
			return k.argErr(v, "argument is required")
		}
		return nil
	}
	var ok bool
	switch k.argType {
	case NoArgument:
		return k.argErr(v, "statement takes no argument")
	case IdentifierArg, StringArg, XPathArg, IfFeatureArg, RangeArg, URIArg, DateArg:
		_, ok = v.(string)
	case BooleanArg:
		_, ok = v.(bool)
	case QNameArg:
		_, ok = v.(QName)
	case NumberArg:
		_, ok = v.(yang.Number)
	case UnboundedArg:
		_, ok = v.(MaxElements)
	case StatusArg:
		_, ok = v.(Status)
	case OrderedByArg:
		_, ok = v.(OrderedBy)
	case DeviateArg:
		_, ok = v.(Deviate)
	case VersionArg:
		_, ok = v.(Version)
	case ModifierArg:
		_, ok = v.(Modifier)
	case SchemaNodeIDArg:
		_, ok = v.(SchemaNodeID)
	case NameListArg:
		_, ok = v.(NameList)
	}
	if !ok {
		return k.argErr(v, "unexpected Go type")
	}
	return nil
}

// MaxElements is the argument of a max-elements statement.
type MaxElements struct {
	// Unbounded is set for the argument "unbounded", in which case N is
	// unused.
	Unbounded bool
	// N is the maximum number of elements.
	N yang.Number
}

// Unbounded is the value of a max-elements statement with the argument
// "unbounded".
var Unbounded = MaxElements{Unbounded: true}

// String returns m as it appears in YANG source.
func (m MaxElements) String() string {
	if m.Unbounded {
		return "unbounded"
	}
	return m.N.String()
}

// Allows reports whether n elements are within the bound m.
func (m MaxElements) Allows(n uint64) bool {
	return m.Unbounded || n <= m.N.Value
}

// Status is the argument of a status statement.
type Status uint8

const (
	// StatusCurrent is the default status of a definition.
	StatusCurrent Status = iota
	// StatusDeprecated marks a definition that is still valid but should
	// not be used in new definitions.
	StatusDeprecated
	// StatusObsolete marks a definition that should no longer be used.
	StatusObsolete
)

var statusNames = []string{"current", "deprecated", "obsolete"}

// String implements the fmt.Stringer interface.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("unknown-status-%d", s)
}

// ParseStatus returns the Status corresponding to s.
func ParseStatus(s string) (Status, error) {
	for i, n := range statusNames {
		if n == s {
			return Status(i), nil
		}
	}
	return StatusCurrent, fmt.Errorf("invalid status %q", s)
}

// OrderedBy is the argument of an ordered-by statement.
type OrderedBy uint8

const (
	// OrderedBySystem is the default ordering of lists and leaf-lists.
	OrderedBySystem OrderedBy = iota
	// OrderedByUser indicates that the user controls entry ordering.
	OrderedByUser
)

// String implements the fmt.Stringer interface.
func (o OrderedBy) String() string {
	switch o {
	case OrderedBySystem:
		return "system"
	case OrderedByUser:
		return "user"
	}
	return fmt.Sprintf("unknown-ordered-by-%d", o)
}

// ParseOrderedBy returns the OrderedBy corresponding to s.
func ParseOrderedBy(s string) (OrderedBy, error) {
	switch s {
	case "system":
		return OrderedBySystem, nil
	case "user":
		return OrderedByUser, nil
	}
	return OrderedBySystem, fmt.Errorf("invalid ordered-by %q", s)
}

// Deviate is the argument of a deviate statement.
type Deviate uint8

const (
	DeviateNotSupported Deviate = iota
	DeviateAdd
	DeviateReplace
	DeviateDelete
)

var deviateNames = []string{"not-supported", "add", "replace", "delete"}

// String implements the fmt.Stringer interface.
func (d Deviate) String() string {
	if int(d) < len(deviateNames) {
		return deviateNames[d]
	}
	return fmt.Sprintf("unknown-deviate-%d", d)
}

// ParseDeviate returns the Deviate corresponding to s.
func ParseDeviate(s string) (Deviate, error) {
	for i, n := range deviateNames {
		if n == s {
			return Deviate(i), nil
		}
	}
	return DeviateNotSupported, fmt.Errorf("invalid deviate %q", s)
}

// Modifier is the argument of a modifier statement.
type Modifier uint8

const (
	// InvertMatch is the only modifier defined by RFC7950.
	InvertMatch Modifier = iota
)

// String implements the fmt.Stringer interface.
func (m Modifier) String() string {
	if m == InvertMatch {
		return "invert-match"
	}
	return fmt.Sprintf("unknown-modifier-%d", m)
}

// ParseModifier returns the Modifier corresponding to s.
func ParseModifier(s string) (Modifier, error) {
	if s == "invert-match" {
		return InvertMatch, nil
	}
	return InvertMatch, fmt.Errorf("invalid modifier %q", s)
}

// SchemaNodeID is an absolute or descendant schema node identifier, as
// used as the argument of augment, deviation and refine statements. It is
// an immutable value.
type SchemaNodeID struct {
	absolute bool
	path     []QName
}

// ParseSchemaNodeID parses s as an absolute (leading "/") or descendant
// schema node identifier.
func ParseSchemaNodeID(s string) (SchemaNodeID, error) {
	id := SchemaNodeID{absolute: strings.HasPrefix(s, "/")}
	trimmed := strings.TrimPrefix(s, "/")
	if trimmed == "" {
		return SchemaNodeID{}, fmt.Errorf("empty schema node identifier %q", s)
	}
	for _, p := range strings.Split(trimmed, "/") {
		q, err := ParseQName(strings.TrimSpace(p))
		if err != nil {
			return SchemaNodeID{}, err
		}
		id.path = append(id.path, q)
	}
	return id, nil
}

// Absolute returns true if the identifier is rooted at the top of the
// schema tree.
func (s SchemaNodeID) Absolute() bool { return s.absolute }

// Elements returns a copy of the path elements of the identifier.
func (s SchemaNodeID) Elements() []QName {
	return append([]QName(nil), s.path...)
}

// String returns the identifier in YANG source form.
func (s SchemaNodeID) String() string {
	var b strings.Builder
	for i, q := range s.path {
		if i > 0 || s.absolute {
			b.WriteByte('/')
		}
		b.WriteString(q.String())
	}
	return b.String()
}

// NameList is the whitespace separated list of names used as the argument
// of key and unique statements. It is an immutable value.
type NameList struct {
	names []string
}

// ParseNameList splits s into its component names.
func ParseNameList(s string) (NameList, error) {
	names := strings.Fields(s)
	if len(names) == 0 {
		return NameList{}, fmt.Errorf("empty name list")
	}
	return NameList{names: names}, nil
}

// Names returns a copy of the names within the list.
func (l NameList) Names() []string {
	return append([]string(nil), l.names...)
}

// Len returns the number of names within the list.
func (l NameList) Len() int { return len(l.names) }

// String returns the names joined by a single space.
func (l NameList) String() string {
	return strings.Join(l.names, " ")
}
