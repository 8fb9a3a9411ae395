package filters

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/model"
)

var (
	// ErrUnknownFilter is returned when a filter name is not registered.
	ErrUnknownFilter = errors.New("filters: unknown filter")
	// ErrDuplicateFilter is returned when a name is registered twice.
	ErrDuplicateFilter = errors.New("filters: filter already registered")
)

// Registry maps filter names to transform functions. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]definition.TransformFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]definition.TransformFunc)}
}

// Register adds fn under name. Names are case-insensitive.
func (r *Registry) Register(name string, fn definition.TransformFunc) error {
	key := normalizeName(name)
	if key == "" {
		return errors.New("filters: name is required")
	}
	if fn == nil {
		return fmt.Errorf("filters: %q: function is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFilter, name)
	}
	r.funcs[key] = fn
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(name string, fn definition.TransformFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the filter registered under name.
func (r *Registry) Lookup(name string) (definition.TransformFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[normalizeName(name)]
	return fn, ok
}

// Resolve looks up a filter expression. Expressions chain several filters with
// "|", applied left to right ("trim|lower").
func (r *Registry) Resolve(expr string) (definition.TransformFunc, error) {
	parts := strings.Split(expr, "|")
	chain := make([]definition.TransformFunc, 0, len(parts))
	for _, part := range parts {
		fn, ok := r.Lookup(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, strings.TrimSpace(part))
		}
		chain = append(chain, fn)
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return Chain(chain...), nil
}

// Names lists the registered filter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain composes fns into a single filter. Each function receives the output
// of the previous one; the first error stops the chain.
func Chain(fns ...definition.TransformFunc) definition.TransformFunc {
	return func(value any, m *model.Instance) (any, error) {
		var err error
		for _, fn := range fns {
			value, err = fn(value, m)
			if err != nil {
				return nil, err
			}
		}
		return value, nil
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
