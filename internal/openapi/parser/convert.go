package parser

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// converter walks a component schema. visiting holds the schemas on the
// current path so recursive $refs stop expanding instead of looping.
type converter struct {
	maxDepth int
	visiting map[*openapi3.Schema]bool
}

func (c converter) properties(src *openapi3.Schema, depth int) map[string]schema.FieldSpec {
	props, required := collectProperties(src, map[*openapi3.Schema]bool{})
	if len(props) == 0 {
		return nil
	}

	fields := make(map[string]schema.FieldSpec, len(props))
	for name, ref := range props {
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if flag, _ := prop.Extensions[pkgopenapi.ExtensionIgnore].(bool); flag {
			continue
		}
		fields[name] = c.field(name, prop, required[name], depth)
	}
	return fields
}

func (c converter) field(name string, prop *openapi3.Schema, required bool, depth int) schema.FieldSpec {
	spec := schema.FieldSpec{
		Keypath:  name,
		Type:     fieldType(prop),
		Optional: !required || prop.Nullable,
		Default:  prop.Default,
	}
	if keypath, ok := prop.Extensions[pkgopenapi.ExtensionKeypath].(string); ok && strings.TrimSpace(keypath) != "" {
		spec.Keypath = keypath
	}
	if filter, ok := prop.Extensions[pkgopenapi.ExtensionFilter].(string); ok {
		spec.Filter = strings.TrimSpace(filter)
	}
	if enum := enumValues(prop.Enum); len(enum) > 0 {
		spec.OneOf = enum
	}

	if spec.Filter != "" || depth >= c.maxDepth {
		return spec
	}

	target := prop
	if spec.Type == "array" {
		if prop.Items == nil || prop.Items.Value == nil {
			return spec
		}
		target = prop.Items.Value
	}
	if spec.Type != "object" && spec.Type != "array" {
		return spec
	}
	if c.visiting[target] {
		return spec
	}
	c.visiting[target] = true
	spec.Fields = c.properties(target, depth+1)
	delete(c.visiting, target)
	return spec
}

// collectProperties merges own properties with those contributed by allOf
// members. Later members do not override earlier ones.
func collectProperties(src *openapi3.Schema, seen map[*openapi3.Schema]bool) (openapi3.Schemas, map[string]bool) {
	props := openapi3.Schemas{}
	required := map[string]bool{}
	if src == nil || seen[src] {
		return props, required
	}
	seen[src] = true

	for name, ref := range src.Properties {
		props[name] = ref
	}
	for _, name := range src.Required {
		required[name] = true
	}
	for _, member := range src.AllOf {
		if member == nil {
			continue
		}
		memberProps, memberRequired := collectProperties(member.Value, seen)
		for name, ref := range memberProps {
			if _, exists := props[name]; !exists {
				props[name] = ref
			}
		}
		for name := range memberRequired {
			required[name] = true
		}
	}
	return props, required
}

func fieldType(prop *openapi3.Schema) string {
	types := prop.Type
	switch {
	case types == nil || len(types.Slice()) == 0:
		if len(prop.Properties) > 0 || len(prop.AllOf) > 0 {
			return "object"
		}
		if prop.Items != nil {
			return "array"
		}
		return ""
	case types.Is(openapi3.TypeInteger), types.Is(openapi3.TypeNumber):
		return "number"
	case types.Is(openapi3.TypeBoolean):
		return "boolean"
	case types.Is(openapi3.TypeArray):
		return "array"
	case types.Is(openapi3.TypeObject):
		return "object"
	case types.Is(openapi3.TypeString):
		return "string"
	}
	// Multi-type declarations ("string,null") keep the first non-null entry.
	for _, t := range types.Slice() {
		if t == openapi3.TypeNull {
			continue
		}
		return fieldType(&openapi3.Schema{Type: &openapi3.Types{t}})
	}
	return ""
}

func enumValues(values []any) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, 0, len(values))
	for _, value := range values {
		if value != nil {
			out = append(out, value)
		}
	}
	return out
}
