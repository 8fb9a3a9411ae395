package definition

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/kind"
)

// Validate checks the shape of def and returns the first violation as a
// DefinitionError. Checks run in this order: derived completeness, default
// kind, keypath, declared kind, enumeration kinds, filter shape.
func Validate(name string, def *Definition) error {
	if def == nil {
		return optionError(name, "definition", "must not be nil")
	}

	if def.derived && !def.hasDefault && def.filter.IsZero() {
		return optionError(name, "default", "magic property must have a default value or filter")
	}

	if def.hasDefault && !kind.IsTypeOf(def.def, def.kind) {
		return optionError(name, "default", fmt.Sprintf("must be type of '%s'", def.kind))
	}

	if !def.derived {
		if err := validateKeypath(name, def.keypath); err != nil {
			return err
		}
	}

	if !kind.IsFieldKind(def.kind) {
		return optionError(name, "type", fmt.Sprintf("must be one of (%s)", kind.JoinFieldKinds(",")))
	}

	for _, value := range def.oneOf {
		if !kind.IsTypeOf(value, def.kind) {
			return optionError(name, "oneOf", fmt.Sprintf("all items must be type of '%s'", def.kind))
		}
	}

	switch def.filter.Kind() {
	case FilterNested:
		if def.kind != kind.Array && def.kind != kind.Object {
			return optionError(name, "filter", "must be a function")
		}
	case FilterTransform:
		if def.filter.TransformFunc() == nil {
			return optionError(name, "filter", "must be a function")
		}
	}

	return nil
}

func validateKeypath(name, keypath string) error {
	if keypath == "" {
		return optionError(name, "keypath", "must be a non-empty string")
	}
	for _, segment := range strings.Split(keypath, ".") {
		if segment == "" {
			return optionError(name, "keypath", fmt.Sprintf("%q contains an empty segment", keypath))
		}
	}
	return nil
}

// ValidateMap runs Validate over every entry of defs, recursing into nested
// filter schemas, and returns every violation found. Nested field names are
// reported as dotted paths ("items.name").
func ValidateMap(defs Map) []error {
	return validateMap("", defs, map[*Definition]bool{})
}

func validateMap(prefix string, defs Map, seen map[*Definition]bool) []error {
	var errs []error
	for _, name := range defs.Names() {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		def, err := Normalize(defs[name])
		if err != nil {
			errs = append(errs, &DefinitionError{
				Field:   path,
				Option:  "entry",
				Message: "unsupported map entry: " + entryType(defs[name]),
				Err:     err,
			})
			continue
		}
		if err := Validate(path, def); err != nil {
			errs = append(errs, err)
		}
		if seen[def] {
			continue
		}
		seen[def] = true
		if def.filter.Kind() == FilterNested {
			errs = append(errs, validateMap(path, def.filter.Schema(), seen)...)
		}
	}
	return errs
}
