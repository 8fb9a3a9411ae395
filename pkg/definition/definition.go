package definition

import (
	"github.com/goliatone/go-modelgen/pkg/kind"
	"github.com/goliatone/go-modelgen/pkg/model"
)

// TransformFunc post-processes a field. For keyed fields value is the
// resolved raw value, already replaced by the default when absent or
// rejected. For derived fields value is nil. m gives access to sibling
// fields of the instance under construction.
type TransformFunc func(value any, m *model.Instance) (any, error)

// FilterKind tags the Filter variant.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterTransform
	FilterNested
)

// Filter is either a transform function or a nested definition map that is
// applied recursively to object and array values.
type Filter struct {
	kind      FilterKind
	transform TransformFunc
	nested    Map
}

// Transform wraps fn as a Filter.
func Transform(fn TransformFunc) Filter {
	if fn == nil {
		return Filter{}
	}
	return Filter{kind: FilterTransform, transform: fn}
}

// Nested wraps a definition map as a Filter.
func Nested(defs Map) Filter {
	if defs == nil {
		return Filter{}
	}
	return Filter{kind: FilterNested, nested: defs}
}

// Kind returns the variant tag.
func (f Filter) Kind() FilterKind { return f.kind }

// IsZero reports whether no filter is set.
func (f Filter) IsZero() bool { return f.kind == FilterNone }

// TransformFunc returns the wrapped function for FilterTransform.
func (f Filter) TransformFunc() TransformFunc { return f.transform }

// Schema returns the wrapped map for FilterNested.
func (f Filter) Schema() Map { return f.nested }

// Map maps field names to a *Definition or a keypath string.
type Map map[string]any

// Definition is the extraction, validation and transform rule set of one
// field. The zero value is not useful; use New or Derived.
type Definition struct {
	keypath    string
	derived    bool
	kind       kind.Kind
	optional   bool
	def        any
	hasDefault bool
	oneOf      []any
	filter     Filter
}

// New returns a definition reading keypath from the source, typed string,
// required, with no default, enumeration or filter.
func New(keypath string) *Definition {
	return &Definition{keypath: keypath, kind: kind.String}
}

// Derived returns a definition with no keypath. It needs a default or a
// filter to produce a value.
func Derived() *Definition {
	return &Definition{derived: true, kind: kind.String}
}

// Type sets the declared kind. An empty kind is ignored.
func (d *Definition) Type(k kind.Kind) *Definition {
	if k != "" {
		d.kind = k
	}
	return d
}

// Optional makes an absent value resolve to nil instead of the kind's empty
// value.
func (d *Definition) Optional() *Definition {
	d.optional = true
	return d
}

// DefaultValue sets the fallback value. nil is ignored; every other value,
// including 0, false and "", is honoured.
func (d *Definition) DefaultValue(value any) *Definition {
	if value != nil {
		d.def = value
		d.hasDefault = true
	}
	return d
}

// OneOf restricts the field to values. The first entry doubles as the
// fallback when no explicit default is set.
func (d *Definition) OneOf(values ...any) *Definition {
	return d.OneOfValues(values)
}

// OneOfValues is OneOf taking a slice. A nil slice is ignored.
func (d *Definition) OneOfValues(values []any) *Definition {
	if values != nil {
		d.oneOf = append([]any(nil), values...)
	}
	return d
}

// Filter sets a transform applied on first read. A nil fn is ignored.
func (d *Definition) Filter(fn TransformFunc) *Definition {
	return d.WithFilter(Transform(fn))
}

// FilterSchema sets a nested definition map applied to object values, or to
// each element of array values. A nil map is ignored.
func (d *Definition) FilterSchema(defs Map) *Definition {
	return d.WithFilter(Nested(defs))
}

// WithFilter sets f unless it is the zero Filter.
func (d *Definition) WithFilter(f Filter) *Definition {
	if !f.IsZero() {
		d.filter = f
	}
	return d
}

// Keypath returns the dotted source path. It is empty for derived fields.
func (d *Definition) Keypath() string { return d.keypath }

// IsDerived reports whether the definition has no keypath.
func (d *Definition) IsDerived() bool { return d.derived }

// Kind returns the declared kind.
func (d *Definition) Kind() kind.Kind { return d.kind }

// IsOptional reports whether Optional was called.
func (d *Definition) IsOptional() bool { return d.optional }

// Default returns the explicit default and whether one was set.
func (d *Definition) Default() (any, bool) { return d.def, d.hasDefault }

// Enum returns a copy of the OneOf values, or nil.
func (d *Definition) Enum() []any {
	if d.oneOf == nil {
		return nil
	}
	return append([]any(nil), d.oneOf...)
}

// GetFilter returns the configured filter.
func (d *Definition) GetFilter() Filter { return d.filter }

// Clone returns a shallow copy so callers can derive variants without
// touching a shared definition. Nested maps are shared.
func (d *Definition) Clone() *Definition {
	clone := *d
	clone.oneOf = d.Enum()
	return &clone
}
