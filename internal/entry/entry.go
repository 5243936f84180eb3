package entry

import (
	"fmt"
	"strings"
)

// Type is one of the entry kinds listed at
// https://kapeli.com/docsets#supportedentrytypes.
type Type string

// Supported entry types. The string value is what Dash displays and what ends
// up in apple_ref anchors.
const (
	Attribute   Type = "Attribute"
	Class       Type = "Class"
	Constant    Type = "Constant"
	Environment Type = "Environment"
	Exception   Type = "Exception"
	Function    Type = "Function"
	Guide       Type = "Guide"
	Interface   Type = "Interface"
	Macro       Type = "Macro"
	Method      Type = "Method"
	Operator    Type = "Operator"
	Option      Type = "Option"
	Module      Type = "Module"
	Property    Type = "Property"
	Protocol    Type = "Protocol"
	Section     Type = "Section"
	Setting     Type = "Setting"
	TypeName    Type = "Type"
	Value       Type = "Value"
	Variable    Type = "Variable"
	Word        Type = "Word"
)

var allTypes = []Type{
	Attribute, Class, Constant, Environment, Exception, Function, Guide,
	Interface, Macro, Method, Operator, Option, Module, Property, Protocol,
	Section, Setting, TypeName, Value, Variable, Word,
}

// Types returns every supported entry type in declaration order.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t is a member of the supported set.
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }

// ParseType maps a display string such as "Method" back to its Type.
func ParseType(value string) (Type, bool) {
	t := Type(strings.TrimSpace(value))
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Entry is a symbol to be indexed.
type Entry struct {
	// Name is the full display name of the index entry.
	Name string
	Type Type
	// Path is relative to the documentation root and may carry a #fragment,
	// e.g. "api.html#print".
	Path string
}

// Valid reports whether e satisfies the index invariants: non-empty name and
// path and a supported type.
func (e Entry) Valid() bool {
	return e.Name != "" && e.Path != "" && e.Type.Valid()
}

// Anchor splits Path into file and fragment. ok is false unless Path contains
// exactly one '#'.
func (e Entry) Anchor() (file, fragment string, ok bool) {
	parts := strings.Split(e.Path, "#")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Tuple returns the row written to the search index.
func (e Entry) Tuple() (string, string, string) {
	return e.Name, string(e.Type), e.Path
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s) -> %s", e.Name, e.Type, e.Path)
}

// RefPrefix starts every reference Dash recognizes as a TOC anchor.
const RefPrefix = "//apple_ref/cpp/"

// Ref formats the apple_ref identifier for name of type t.
func Ref(t Type, name string) string {
	return RefPrefix + string(t) + "/" + name
}
