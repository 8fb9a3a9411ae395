package model

import (
	"encoding/json"
	"fmt"
)

// Dump evaluates every field and returns a plain map. Nested instances, and
// slices of them, are dumped recursively.
func (m *Instance) Dump() (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]any, len(m.order))
	for _, name := range m.order {
		value, err := m.Get(name)
		if err != nil {
			return nil, fmt.Errorf("model: dump field %q: %w", name, err)
		}
		dumped, err := dumpValue(value)
		if err != nil {
			return nil, fmt.Errorf("model: dump field %q: %w", name, err)
		}
		out[name] = dumped
	}
	return out, nil
}

// MarshalJSON encodes the dumped form of the instance.
func (m *Instance) MarshalJSON() ([]byte, error) {
	dumped, err := m.Dump()
	if err != nil {
		return nil, err
	}
	return json.Marshal(dumped)
}

func dumpValue(value any) (any, error) {
	switch v := value.(type) {
	case *Instance:
		if v == nil {
			return nil, nil
		}
		return v.Dump()
	case []*Instance:
		out := make([]any, 0, len(v))
		for _, item := range v {
			dumped, err := item.Dump()
			if err != nil {
				return nil, err
			}
			out = append(out, dumped)
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			dumped, err := dumpValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = dumped
		}
		return out, nil
	default:
		return value, nil
	}
}

// DumpAll dumps a slice of instances, preserving order.
func DumpAll(items []*Instance) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		dumped, err := item.Dump()
		if err != nil {
			return nil, fmt.Errorf("model: dump item %d: %w", i, err)
		}
		out = append(out, dumped)
	}
	return out, nil
}
