package intersphinx

import (
	"strings"

	"doc2dash/internal/entry"
	"doc2dash/internal/inventory"
)

// TypeConverter maps an inventory role such as "py:method" to an entry type.
// ok is false for roles that should not produce entries.
type TypeConverter func(role string) (t entry.Type, ok bool)

// EntryCreator builds the entry for one inventory item. Returning ok=false
// vetoes the item.
type EntryCreator func(t entry.Type, key string, item inventory.Item) (e entry.Entry, ok bool)

// Sphinx domain object types -> Dash entry types. mkdocstrings emits the
// short "attr" and "var" spellings.
var roleTypes = map[string]entry.Type{
	"attribute":    entry.Attribute,
	"attr":         entry.Attribute,
	"class":        entry.Class,
	"classmethod":  entry.Method,
	"cmdoption":    entry.Option,
	"constant":     entry.Constant,
	"data":         entry.Value,
	"doc":          entry.Guide,
	"envvar":       entry.Environment,
	"exception":    entry.Exception,
	"function":     entry.Function,
	"interface":    entry.Interface,
	"label":        entry.Section,
	"macro":        entry.Macro,
	"member":       entry.Attribute,
	"method":       entry.Method,
	"module":       entry.Module,
	"opcode":       entry.Operator,
	"option":       entry.Option,
	"property":     entry.Property,
	"protocol":     entry.Protocol,
	"setting":      entry.Setting,
	"staticmethod": entry.Method,
	"term":         entry.Word,
	"type":         entry.TypeName,
	"value":        entry.Value,
	"variable":     entry.Variable,
	"var":          entry.Variable,
}

// ConvertType is the default TypeConverter. The domain prefix is ignored:
// everything after the last ':' is looked up.
func ConvertType(role string) (entry.Type, bool) {
	if i := strings.LastIndex(role, ":"); i >= 0 {
		role = role[i+1:]
	}
	t, ok := roleTypes[role]
	return t, ok
}

// CreateEntry is the default EntryCreator. The display name wins unless it
// is the "-" placeholder, in which case the inventory key is used.
func CreateEntry(t entry.Type, key string, item inventory.Item) (entry.Entry, bool) {
	name := item.DisplayName
	if name == inventory.NoDisplayName || name == "" {
		name = key
	}
	if name == "" || item.URI == "" {
		return entry.Entry{}, false
	}
	return entry.Entry{Name: name, Type: t, Path: item.URI}, true
}
