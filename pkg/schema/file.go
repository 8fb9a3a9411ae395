package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/kind"
)

// File is the declarative form of a definition map, read from JSON or YAML:
//
//	name: user
//	fields:
//	  id: id                  # shorthand keypath
//	  name:
//	    keypath: profile.name
//	    filter: trim|title
//	  role:
//	    keypath: role
//	    oneOf: [reader, editor]
//	  tags:
//	    keypath: tags
//	    type: array
//	    fields:
//	      label: label
//	  slug:
//	    keypath: profile.name
//	    filter: trim|slug
//	  ref:                    # no keypath: derived
//	    filter: nanoid
//
// Fields without a keypath are derived. A nested "fields" block turns the
// field into a nested model (object by default).
type File struct {
	Name        string               `json:"name,omitempty" yaml:"name,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      map[string]FieldSpec `json:"fields" yaml:"fields"`
}

// FieldSpec describes a single field. A bare string decodes as a shorthand
// keypath.
type FieldSpec struct {
	Keypath  string               `json:"keypath,omitempty" yaml:"keypath,omitempty"`
	Type     string               `json:"type,omitempty" yaml:"type,omitempty"`
	Optional bool                 `json:"optional,omitempty" yaml:"optional,omitempty"`
	Default  any                  `json:"default,omitempty" yaml:"default,omitempty"`
	OneOf    []any                `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	Filter   string               `json:"filter,omitempty" yaml:"filter,omitempty"`
	Fields   map[string]FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`

	shorthand bool
}

// Shorthand reports whether the spec was written as a bare keypath string.
func (f FieldSpec) Shorthand() bool { return f.shorthand }

type fieldSpecAlias FieldSpec

func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var keypath string
		if err := json.Unmarshal(trimmed, &keypath); err != nil {
			return err
		}
		*f = FieldSpec{Keypath: keypath, shorthand: true}
		return nil
	}
	var alias fieldSpecAlias
	if err := json.Unmarshal(trimmed, &alias); err != nil {
		return err
	}
	*f = FieldSpec(alias)
	return nil
}

func (f *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*f = FieldSpec{Keypath: node.Value, shorthand: true}
		return nil
	}
	var alias fieldSpecAlias
	if err := node.Decode(&alias); err != nil {
		return err
	}
	*f = FieldSpec(alias)
	return nil
}

func (f FieldSpec) MarshalJSON() ([]byte, error) {
	if f.shorthand {
		return json.Marshal(f.Keypath)
	}
	return json.Marshal(fieldSpecAlias(f))
}

func (f FieldSpec) MarshalYAML() (any, error) {
	if f.shorthand {
		return f.Keypath, nil
	}
	return fieldSpecAlias(f), nil
}

// FilterResolver turns a filter expression from a schema file into a
// transform function. *filters.Registry satisfies it.
type FilterResolver interface {
	Resolve(expr string) (definition.TransformFunc, error)
}

// ErrNoFilters is returned when a schema references a filter but no resolver
// was supplied.
var ErrNoFilters = errors.New("schema: filter referenced but no filter resolver configured")

// Parse decodes doc as JSON, falling back to YAML.
func Parse(doc Document) (File, error) {
	data := doc.Raw()
	location := doc.Location()
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, fmt.Errorf("schema: file %s is empty", location)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		file = File{}
		if yerr := yaml.Unmarshal(data, &file); yerr != nil {
			return File{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", location, yerr)
		}
	}
	if len(file.Fields) == 0 {
		return File{}, fmt.Errorf("schema: %s declares no fields", location)
	}
	return file, nil
}

// Decode parses doc and compiles it into a definition map.
func Decode(doc Document, resolver FilterResolver) (definition.Map, error) {
	file, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	defs, err := file.Definitions(resolver)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", doc.Location(), err)
	}
	return defs, nil
}

// Definitions compiles the file into a definition map. Filter names are
// resolved through resolver, which may be nil when no field uses a filter.
// Shape errors (bad kinds, mismatched defaults) are left to
// definition.Validate.
func (f File) Definitions(resolver FilterResolver) (definition.Map, error) {
	return compileFields("", f.Fields, resolver)
}

func compileFields(prefix string, fields map[string]FieldSpec, resolver FilterResolver) (definition.Map, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make(definition.Map, len(fields))
	for _, name := range names {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		entry, err := compileField(path, fields[name], resolver)
		if err != nil {
			return nil, err
		}
		defs[name] = entry
	}
	return defs, nil
}

func compileField(path string, spec FieldSpec, resolver FilterResolver) (any, error) {
	if spec.shorthand {
		return spec.Keypath, nil
	}

	var def *definition.Definition
	if strings.TrimSpace(spec.Keypath) == "" {
		def = definition.Derived()
	} else {
		def = definition.New(spec.Keypath)
	}

	if spec.Type != "" {
		def.Type(kind.Kind(strings.ToLower(spec.Type)))
	} else if len(spec.Fields) > 0 {
		def.Type(kind.Object)
	}
	if spec.Optional {
		def.Optional()
	}
	if spec.Default != nil {
		def.DefaultValue(spec.Default)
	}
	if spec.OneOf != nil {
		def.OneOfValues(spec.OneOf)
	}

	switch {
	case spec.Filter != "" && len(spec.Fields) > 0:
		return nil, &definition.DefinitionError{Field: path, Option: "filter", Message: "filter and fields are mutually exclusive"}
	case spec.Filter != "":
		if resolver == nil {
			return nil, &definition.DefinitionError{Field: path, Option: "filter", Err: ErrNoFilters}
		}
		fn, err := resolver.Resolve(spec.Filter)
		if err != nil {
			return nil, &definition.DefinitionError{Field: path, Option: "filter", Err: err}
		}
		def.Filter(fn)
	case len(spec.Fields) > 0:
		nested, err := compileFields(path, spec.Fields, resolver)
		if err != nil {
			return nil, err
		}
		def.FilterSchema(nested)
	}
	return def, nil
}
