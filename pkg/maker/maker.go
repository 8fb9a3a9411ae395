package maker

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/goliatone/go-modelgen/internal/keypath"
	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/model"
)

// ErrNestedValue is returned when a nested definition map is applied to a
// value that is neither an object nor an array.
var ErrNestedValue = errors.New("value must be an object or an array")

// Maker builds model instances from raw values and definition maps.
type Maker struct {
	logger *slog.Logger
	dev    *bool
}

// New constructs a Maker applying any provided options.
func New(options ...Option) *Maker {
	mk := &Maker{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(mk)
	}
	return mk
}

func (mk *Maker) devMode() bool {
	if mk.dev != nil {
		return *mk.dev
	}
	return DevMode()
}

func (mk *Maker) log() *slog.Logger {
	if mk.logger != nil {
		return mk.logger
	}
	return slog.Default()
}

// Build turns source into a model instance described by defs. Field values
// are computed lazily on first read. Fields are registered in sorted name
// order.
func (mk *Maker) Build(source any, defs definition.Map) (*model.Instance, error) {
	instance := model.New()
	for _, name := range defs.Names() {
		def, err := definition.Normalize(defs[name])
		if err != nil {
			return nil, fmt.Errorf("maker: field %q: %w", name, err)
		}
		if mk.devMode() {
			if err := definition.Validate(name, def); err != nil {
				return nil, fmt.Errorf("maker: %w", err)
			}
		}

		var raw any
		if !def.IsDerived() {
			raw = mk.resolve(name, source, def)
		}
		instance.Define(name, mk.thunk(name, raw, def, instance))
	}
	return instance, nil
}

// BuildArray builds one instance per element of sources. A sources value that
// is not an array yields an empty slice. nil elements are dropped.
func (mk *Maker) BuildArray(sources any, defs definition.Map) ([]*model.Instance, error) {
	items, ok := elements(sources)
	if !ok {
		return []*model.Instance{}, nil
	}
	return mk.buildItems(items, defs)
}

func (mk *Maker) buildItems(items []any, defs definition.Map) ([]*model.Instance, error) {
	out := make([]*model.Instance, 0, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}
		instance, err := mk.Build(item, defs)
		if err != nil {
			return nil, fmt.Errorf("maker: item %d: %w", i, err)
		}
		if instance != nil {
			out = append(out, instance)
		}
	}
	return out, nil
}

// resolve extracts the raw value for a keyed field and applies the
// default-on-absence and default-on-rejection policy.
func (mk *Maker) resolve(name string, source any, def *definition.Definition) any {
	value, ok := keypath.Resolve(source, def.Keypath())
	if !ok || value == nil {
		value = ComputeDefault(def)
	}
	if reason := rejection(value, def); reason != "" {
		mk.log().Warn("maker: value rejected, using default",
			"field", name,
			"keypath", def.Keypath(),
			"reason", reason,
		)
		value = ComputeDefault(def)
	}
	return value
}

func (mk *Maker) thunk(name string, raw any, def *definition.Definition, instance *model.Instance) model.Thunk {
	filter := def.GetFilter()
	return func() (any, error) {
		switch filter.Kind() {
		case definition.FilterTransform:
			value, err := filter.TransformFunc()(raw, instance)
			if err != nil {
				return nil, fmt.Errorf("maker: field %q: %w", name, err)
			}
			return value, nil
		case definition.FilterNested:
			value, err := mk.nested(raw, filter.Schema())
			if err != nil {
				return nil, fmt.Errorf("maker: field %q: %w", name, err)
			}
			return value, nil
		}
		if def.IsDerived() {
			return ComputeDefault(def), nil
		}
		return raw, nil
	}
}

func elements(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
