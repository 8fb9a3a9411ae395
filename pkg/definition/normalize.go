package definition

import (
	"fmt"
	"sort"
)

// Normalize expands a Map entry into a *Definition. Strings become
// New(entry); definitions are returned as-is.
func Normalize(entry any) (*Definition, error) {
	switch v := entry.(type) {
	case *Definition:
		if v != nil {
			return v, nil
		}
	case string:
		return New(v), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntry, entryType(entry))
}

func entryType(entry any) string {
	if def, ok := entry.(*Definition); ok && def == nil {
		return "nil definition"
	}
	return fmt.Sprintf("%T", entry)
}

// Names returns the field names of defs in sorted order. Build order follows
// this so output and evaluation are deterministic.
func (defs Map) Names() []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
