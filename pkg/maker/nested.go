package maker

import (
	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/kind"
)

// nested applies a definition map used as a filter. Objects yield a
// *model.Instance, arrays yield []*model.Instance, nil passes through so an
// optional nested field stays nil.
func (mk *Maker) nested(raw any, defs definition.Map) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if kind.IsObject(raw) {
		instance, err := mk.Build(raw, defs)
		if err != nil {
			return nil, err
		}
		return instance, nil
	}
	if items, ok := elements(raw); ok {
		instances, err := mk.buildItems(items, defs)
		if err != nil {
			return nil, err
		}
		return instances, nil
	}
	return nil, ErrNestedValue
}
