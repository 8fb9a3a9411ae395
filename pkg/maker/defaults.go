package maker

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/kind"
)

// ComputeDefault returns the fallback value of def: the explicit default when
// set; otherwise, for required fields, the first OneOf entry or the empty
// value of the declared kind; otherwise nil. Empty arrays and objects are
// freshly allocated on every call.
func ComputeDefault(def *definition.Definition) any {
	if value, ok := def.Default(); ok {
		return value
	}
	if def.IsOptional() {
		return nil
	}
	if enum := def.Enum(); len(enum) > 0 {
		return enum[0]
	}
	switch def.Kind() {
	case kind.String:
		return ""
	case kind.Number:
		return 0
	case kind.Boolean:
		return false
	case kind.Array:
		return []any{}
	case kind.Object:
		return map[string]any{}
	}
	return nil
}

// Accepts reports whether value satisfies def: nil always passes, anything
// else must match the declared kind and, when set, the enumeration.
func Accepts(value any, def *definition.Definition) bool {
	return rejection(value, def) == ""
}

func rejection(value any, def *definition.Definition) string {
	if value == nil {
		return ""
	}
	if !kind.IsTypeOf(value, def.Kind()) {
		return fmt.Sprintf("should be type of '%s'", def.Kind())
	}
	if enum := def.Enum(); enum != nil && !kind.IsOneOf(value, enum) {
		return fmt.Sprintf("should be one of (%s)", joinValues(enum))
	}
	return ""
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = fmt.Sprint(value)
	}
	return strings.Join(parts, ",")
}
