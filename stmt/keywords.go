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

// Kinds of the statements defined by RFC7950, as held by the catalogue
// returned by Builtin.
var (
	ActionKind          = builtinKind("action")
	AnyDataKind         = builtinKind("anydata")
	AnyXMLKind          = builtinKind("anyxml")
	ArgumentKind        = builtinKind("argument")
	AugmentKind         = builtinKind("augment")
	BaseKind            = builtinKind("base")
	BelongsToKind       = builtinKind("belongs-to")
	BitKind             = builtinKind("bit")
	CaseKind            = builtinKind("case")
	ChoiceKind          = builtinKind("choice")
	ConfigKind          = builtinKind("config")
	ContactKind         = builtinKind("contact")
	ContainerKind       = builtinKind("container")
	DefaultKind         = builtinKind("default")
	DescriptionKind     = builtinKind("description")
	DeviateKind         = builtinKind("deviate")
	DeviationKind       = builtinKind("deviation")
	EnumKind            = builtinKind("enum")
	ErrorAppTagKind     = builtinKind("error-app-tag")
	ErrorMessageKind    = builtinKind("error-message")
	ExtensionKind       = builtinKind("extension")
	FeatureKind         = builtinKind("feature")
	FractionDigitsKind  = builtinKind("fraction-digits")
	GroupingKind        = builtinKind("grouping")
	IdentityKind        = builtinKind("identity")
	IfFeatureKind       = builtinKind("if-feature")
	ImportKind          = builtinKind("import")
	IncludeKind         = builtinKind("include")
	InputKind           = builtinKind("input")
	KeyKind             = builtinKind("key")
	LeafKind            = builtinKind("leaf")
	LeafListKind        = builtinKind("leaf-list")
	LengthKind          = builtinKind("length")
	ListKind            = builtinKind("list")
	MandatoryKind       = builtinKind("mandatory")
	MaxElementsKind     = builtinKind("max-elements")
	MinElementsKind     = builtinKind("min-elements")
	ModifierKind        = builtinKind("modifier")
	ModuleKind          = builtinKind("module")
	MustKind            = builtinKind("must")
	NamespaceKind       = builtinKind("namespace")
	NotificationKind    = builtinKind("notification")
	OrderedByKind       = builtinKind("ordered-by")
	OrganizationKind    = builtinKind("organization")
	OutputKind          = builtinKind("output")
	PathKind            = builtinKind("path")
	PatternKind         = builtinKind("pattern")
	PositionKind        = builtinKind("position")
	PrefixKind          = builtinKind("prefix")
	PresenceKind        = builtinKind("presence")
	RangeKind           = builtinKind("range")
	ReferenceKind       = builtinKind("reference")
	RefineKind          = builtinKind("refine")
	RequireInstanceKind = builtinKind("require-instance")
	RevisionKind        = builtinKind("revision")
	RevisionDateKind    = builtinKind("revision-date")
	RPCKind             = builtinKind("rpc")
	StatusKind          = builtinKind("status")
	SubmoduleKind       = builtinKind("submodule")
	TypeKind            = builtinKind("type")
	TypedefKind         = builtinKind("typedef")
	UniqueKind          = builtinKind("unique")
	UnitsKind           = builtinKind("units")
	UsesKind            = builtinKind("uses")
	ValueKind           = builtinKind("value")
	WhenKind            = builtinKind("when")
	YANGVersionKind     = builtinKind("yang-version")
	YINElementKind      = builtinKind("yin-element")
)

func builtinKind(keyword string) *Kind {
	return Builtin().MustLookup(keyword)
}
