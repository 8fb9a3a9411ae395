// Package keypath resolves dotted paths against decoded JSON/YAML values.
package keypath

import (
	"reflect"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Split breaks a keypath into its segments.
func Split(path string) []string {
	return strings.Split(path, ".")
}

// Resolve walks source one segment at a time. The walk stops as soon as the
// current value is not an object, in which case the result is absent
// (ok == false). A present key holding nil resolves to (nil, true).
// Resolve never mutates source.
func Resolve(source any, path string) (any, bool) {
	current := source
	for _, segment := range Split(path) {
		next, ok := lookup(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func lookup(container any, key string) (any, bool) {
	switch v := container.(type) {
	case nil:
		return nil, false
	case map[string]any:
		value, ok := v[key]
		return value, ok
	case *model.Instance:
		if !v.Has(key) {
			return nil, false
		}
		value, err := v.Get(key)
		if err != nil {
			return nil, false
		}
		return value, true
	}

	rv := reflect.ValueOf(container)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !value.IsValid() {
		return nil, false
	}
	return value.Interface(), true
}
