package orchestrator

import (
	"context"
	"sort"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Transformer adjusts a built model before it is materialised, typically by
// overriding fields with Set.
type Transformer interface {
	Transform(ctx context.Context, instance *model.Instance) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, instance *model.Instance) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, instance *model.Instance) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, instance)
}

// Overrides returns a Transformer that sets fixed values on every model.
func Overrides(values map[string]any) Transformer {
	return TransformerFunc(func(_ context.Context, instance *model.Instance) error {
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			instance.Set(name, values[name])
		}
		return nil
	})
}
