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
	"strconv"
	"strings"
)

// builtinDef describes a statement defined by RFC7950. The rules field
// contains one substatement rule per line, of the form:
//
//	keyword cardinality [1.1] [v1=cardinality]
//
// where "1.1" marks a substatement that is only valid in YANG 1.1, and
// v1= overrides the cardinality for YANG 1.
type builtinDef struct {
	keyword string
	argType ArgType
	argName string
	class   kindClass
	rules   string
}

// Rule fragments shared between statements.
const (
	docRules = `
description 0..1
reference 0..1
`
	statusRules = `
status 0..1
`
	dataDefRules = `
anydata 0..n 1.1
anyxml 0..n
choice 0..n
container 0..n
leaf 0..n
leaf-list 0..n
list 0..n
uses 0..n
`
	restrictionRules = docRules + `
error-app-tag 0..1
error-message 0..1
`
	operationIORules = dataDefRules + `
grouping 0..n
must 0..n 1.1
typedef 0..n
`
	moduleBodyRules = dataDefRules + docRules + `
augment 0..n
contact 0..1
deviation 0..n
extension 0..n
feature 0..n
grouping 0..n
identity 0..n
import 0..n
include 0..n
notification 0..n
organization 0..1
revision 0..n
rpc 0..n
typedef 0..n
yang-version 0..1
`
	nodeCommonRules = docRules + statusRules + `
if-feature 0..n
when 0..1
`
)

var builtinDefs = []builtinDef{
	{"action", IdentifierArg, "name", schemaTree, docRules + statusRules + `
grouping 0..n
if-feature 0..n
input 0..1
output 0..1
typedef 0..n
`},
	{"anydata", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + `
config 0..1
mandatory 0..1
must 0..n
`},
	{"anyxml", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + `
config 0..1
mandatory 0..1
must 0..n
`},
	{"argument", IdentifierArg, "name", 0, `
yin-element 0..1
`},
	{"augment", SchemaNodeIDArg, "target-node", 0, nodeCommonRules + dataDefRules + `
action 0..n 1.1
case 0..n
notification 0..n 1.1
`},
	{"base", QNameArg, "name", 0, ``},
	{"belongs-to", IdentifierArg, "module", 0, `
prefix 1
`},
	{"bit", IdentifierArg, "name", 0, docRules + statusRules + `
if-feature 0..n 1.1
position 0..1
`},
	{"case", IdentifierArg, "name", schemaTree, nodeCommonRules + dataDefRules},
	{"choice", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + `
anydata 0..n 1.1
anyxml 0..n
case 0..n
choice 0..n 1.1
config 0..1
container 0..n
default 0..1
leaf 0..n
leaf-list 0..n
list 0..n
mandatory 0..1
`},
	{"config", BooleanArg, "value", 0, ``},
	{"contact", StringArg, "text", 0, ``},
	{"container", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + dataDefRules + `
action 0..n 1.1
config 0..1
grouping 0..n
must 0..n
notification 0..n 1.1
presence 0..1
typedef 0..n
`},
	{"default", StringArg, "value", 0, ``},
	{"description", StringArg, "text", 0, ``},
	{"deviate", DeviateArg, "value", 0, `
config 0..1
default 0..n v1=0..1
mandatory 0..1
max-elements 0..1
min-elements 0..1
must 0..n
type 0..1
unique 0..n
units 0..1
`},
	{"deviation", SchemaNodeIDArg, "target-node", 0, docRules + `
deviate 1..n
`},
	{"enum", StringArg, "name", 0, docRules + statusRules + `
if-feature 0..n 1.1
value 0..1
`},
	{"error-app-tag", StringArg, "value", 0, ``},
	{"error-message", StringArg, "value", 0, ``},
	{"extension", IdentifierArg, "name", 0, docRules + statusRules + `
argument 0..1
`},
	{"feature", IdentifierArg, "name", 0, docRules + statusRules + `
if-feature 0..n
`},
	{"fraction-digits", NumberArg, "value", 0, ``},
	{"grouping", IdentifierArg, "name", schemaTree, docRules + statusRules + dataDefRules + `
action 0..n 1.1
grouping 0..n
notification 0..n 1.1
typedef 0..n
`},
	{"identity", IdentifierArg, "name", 0, docRules + statusRules + `
base 0..n v1=0..1
if-feature 0..n 1.1
`},
	{"if-feature", IfFeatureArg, "name", 0, ``},
	{"import", IdentifierArg, "module", 0, `
description 0..1 1.1
prefix 1
reference 0..1 1.1
revision-date 0..1
`},
	{"include", IdentifierArg, "module", 0, `
description 0..1 1.1
reference 0..1 1.1
revision-date 0..1
`},
	{"input", NoArgument, "", schemaTree, operationIORules},
	{"key", NameListArg, "value", 0, ``},
	{"leaf", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + `
config 0..1
default 0..1
mandatory 0..1
must 0..n
type 1
units 0..1
`},
	{"leaf-list", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + `
config 0..1
default 0..n 1.1
max-elements 0..1
min-elements 0..1
must 0..n
ordered-by 0..1
type 1
units 0..1
`},
	{"length", RangeArg, "value", 0, restrictionRules},
	{"list", IdentifierArg, "name", schemaTree | dataDef, nodeCommonRules + dataDefRules + `
action 0..n 1.1
config 0..1
grouping 0..n
key 0..1
max-elements 0..1
min-elements 0..1
must 0..n
notification 0..n 1.1
ordered-by 0..1
typedef 0..n
unique 0..n
`},
	{"mandatory", BooleanArg, "value", 0, ``},
	{"max-elements", UnboundedArg, "value", 0, ``},
	{"min-elements", NumberArg, "value", 0, ``},
	{"modifier", ModifierArg, "value", 0, ``},
	{"module", IdentifierArg, "name", 0, moduleBodyRules + `
namespace 1
prefix 1
`},
	{"must", XPathArg, "condition", 0, restrictionRules},
	{"namespace", URIArg, "uri", 0, ``},
	{"notification", IdentifierArg, "name", schemaTree, docRules + statusRules + dataDefRules + `
grouping 0..n
if-feature 0..n
must 0..n 1.1
typedef 0..n
`},
	{"ordered-by", OrderedByArg, "value", 0, ``},
	{"organization", StringArg, "text", 0, ``},
	{"output", NoArgument, "", schemaTree, operationIORules},
	{"path", XPathArg, "value", 0, ``},
	{"pattern", StringArg, "value", 0, restrictionRules + `
modifier 0..1 1.1
`},
	{"position", NumberArg, "value", 0, ``},
	{"prefix", IdentifierArg, "value", 0, ``},
	{"presence", StringArg, "value", 0, ``},
	{"range", RangeArg, "value", 0, restrictionRules},
	{"reference", StringArg, "text", 0, ``},
	{"refine", SchemaNodeIDArg, "target-node", 0, docRules + `
config 0..1
default 0..n v1=0..1
if-feature 0..n 1.1
mandatory 0..1
max-elements 0..1
min-elements 0..1
must 0..n
presence 0..1
`},
	{"require-instance", BooleanArg, "value", 0, ``},
	{"revision", DateArg, "date", 0, docRules},
	{"revision-date", DateArg, "date", 0, ``},
	{"rpc", IdentifierArg, "name", schemaTree, docRules + statusRules + `
grouping 0..n
if-feature 0..n
input 0..1
output 0..1
typedef 0..n
`},
	{"status", StatusArg, "value", 0, ``},
	{"submodule", IdentifierArg, "name", 0, moduleBodyRules + `
belongs-to 1
`},
	{"type", QNameArg, "name", 0, `
base 0..n v1=0..1
bit 0..n
enum 0..n
fraction-digits 0..1
length 0..1
path 0..1
pattern 0..n
range 0..1
require-instance 0..1
type 0..n
`},
	{"typedef", IdentifierArg, "name", 0, docRules + statusRules + `
default 0..1
type 1
units 0..1
`},
	{"unique", NameListArg, "tag", 0, ``},
	{"units", StringArg, "name", 0, ``},
	{"uses", QNameArg, "name", 0, nodeCommonRules + `
augment 0..n
refine 0..n
`},
	{"value", NumberArg, "value", 0, ``},
	{"when", XPathArg, "condition", 0, docRules},
	{"yang-version", VersionArg, "value", 0, ``},
	{"yin-element", BooleanArg, "value", 0, ``},
}

// parseCardinality parses the RFC7950 notation for a cardinality.
func parseCardinality(s string) (Cardinality, error) {
	lo, hi, found := strings.Cut(s, "..")
	min, err := strconv.Atoi(lo)
	if err != nil {
		return Cardinality{}, fmt.Errorf("invalid cardinality %q", s)
	}
	if !found {
		return Cardinality{Min: min, Max: min}, nil
	}
	if hi == "n" {
		return Cardinality{Min: min, Max: -1}, nil
	}
	max, err := strconv.Atoi(hi)
	if err != nil {
		return Cardinality{}, fmt.Errorf("invalid cardinality %q", s)
	}
	return Cardinality{Min: min, Max: max}, nil
}

// applyRules parses the substatement rules of d and populates the grammar
// of k, resolving keywords through byKeyword.
func applyRules(k *Kind, d builtinDef, byKeyword map[string]*Kind) error {
	for v := Version(0); v < numVersions; v++ {
		k.grammar[v] = map[*Kind]Cardinality{}
	}
	for _, line := range strings.Split(d.rules, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return fmt.Errorf("%s: malformed rule %q", d.keyword, line)
		}
		child, ok := byKeyword[fields[0]]
		if !ok {
			return fmt.Errorf("%s: unknown substatement %q", d.keyword, fields[0])
		}
		c, err := parseCardinality(fields[1])
		if err != nil {
			return fmt.Errorf("%s: %v", d.keyword, err)
		}
		v1, v11Only := c, false
		for _, f := range fields[2:] {
			switch {
			case f == "1.1":
				v11Only = true
			case strings.HasPrefix(f, "v1="):
				if v1, err = parseCardinality(strings.TrimPrefix(f, "v1=")); err != nil {
					return fmt.Errorf("%s: %v", d.keyword, err)
				}
			default:
				return fmt.Errorf("%s: unknown rule modifier %q", d.keyword, f)
			}
		}
		if _, dup := k.grammar[Version11][child]; dup {
			return fmt.Errorf("%s: duplicate rule for %s", d.keyword, child)
		}
		k.grammar[Version11][child] = c
		if !v11Only {
			k.grammar[Version1][child] = v1
		}
	}
	return nil
}

// newBuiltinKinds constructs the kinds for every statement defined by
// RFC7950, keyed by keyword.
func newBuiltinKinds() (map[string]*Kind, error) {
	byKeyword := make(map[string]*Kind, len(builtinDefs))
	for _, d := range builtinDefs {
		if _, ok := byKeyword[d.keyword]; ok {
			return nil, fmt.Errorf("duplicate built-in statement %s", d.keyword)
		}
		byKeyword[d.keyword] = &Kind{
			name:    QName{Name: d.keyword},
			argType: d.argType,
			argName: d.argName,
			class:   d.class | builtin,
		}
	}
	for _, d := range builtinDefs {
		if err := applyRules(byKeyword[d.keyword], d, byKeyword); err != nil {
			return nil, err
		}
	}
	return byKeyword, nil
}
