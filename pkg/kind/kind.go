// Package kind classifies dynamic Go values into the fixed set of kinds a
// model field can declare. Values usually come from encoding/json or yaml.v3
// decoding, so the common shapes (map[string]any, []any, float64, json.Number)
// are handled without reflection; everything else falls back to reflect.
package kind

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Kind is the runtime classification of a value.
type Kind string

const (
	String   Kind = "string"
	Number   Kind = "number"
	Boolean  Kind = "boolean"
	Array    Kind = "array"
	Object   Kind = "object"
	Function Kind = "function"
)

// fieldKinds lists the kinds a field definition may declare. Function is
// reserved for classifying transform callables.
var fieldKinds = []Kind{String, Number, Boolean, Array, Object}

// FieldKinds returns the kinds accepted by field definitions, in declaration
// order.
func FieldKinds() []Kind {
	return append([]Kind(nil), fieldKinds...)
}

// IsFieldKind reports whether k is one of the field kinds.
func IsFieldKind(k Kind) bool {
	for _, candidate := range fieldKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// JoinFieldKinds renders the field kinds for error messages.
func JoinFieldKinds(sep string) string {
	names := make([]string, len(fieldKinds))
	for i, k := range fieldKinds {
		names[i] = string(k)
	}
	return strings.Join(names, sep)
}

// Of returns the kind of value. The boolean is false for nil and for values
// that fit no kind (channels, pointers to structs, ...).
func Of(value any) (Kind, bool) {
	switch value.(type) {
	case nil:
		return "", false
	case string:
		return String, true
	case bool:
		return Boolean, true
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return Number, true
	case []any:
		return Array, true
	case map[string]any:
		return Object, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return String, true
	case reflect.Bool:
		return Boolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number, true
	case reflect.Slice, reflect.Array:
		return Array, true
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Object, true
		}
	case reflect.Func:
		return Function, true
	}
	return "", false
}

// IsTypeOf reports whether value belongs to kind k. nil belongs to no kind.
func IsTypeOf(value any, k Kind) bool {
	got, ok := Of(value)
	return ok && got == k
}

func IsString(value any) bool   { return IsTypeOf(value, String) }
func IsNumber(value any) bool   { return IsTypeOf(value, Number) }
func IsBool(value any) bool     { return IsTypeOf(value, Boolean) }
func IsArray(value any) bool    { return IsTypeOf(value, Array) }
func IsObject(value any) bool   { return IsTypeOf(value, Object) }
func IsFunction(value any) bool { return IsTypeOf(value, Function) }

// IsNonemptyString reports whether value is a string with at least one byte.
func IsNonemptyString(value any) bool {
	s, ok := value.(string)
	return ok && s != ""
}

// IsOneOf reports whether value equals any entry of values.
func IsOneOf(value any, values []any) bool {
	for _, candidate := range values {
		if Equal(value, candidate) {
			return true
		}
	}
	return false
}

// Equal compares two scalar values. Numbers compare by numeric value so that
// a schema enum of int 1 matches a decoded float64 1. Non-comparable values
// (maps, slices, arrays or structs holding them) are never equal.
func Equal(a, b any) bool {
	if af, ok := AsFloat(a); ok {
		bf, ok := AsFloat(b)
		return ok && af == bf
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// AsFloat converts any number kind value to float64.
func AsFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if !IsNumber(value) {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
