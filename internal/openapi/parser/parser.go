package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// ErrComponentNotFound is returned when the requested component schema does
// not exist in the document.
var ErrComponentNotFound = errors.New("openapi parser: component schema not found")

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	if options.MaxDepth <= 0 {
		options.MaxDepth = pkgopenapi.DefaultMaxDepth
	}
	return &Parser{options: options}
}

// Components lists component schema names in sorted order.
func (p *Parser) Components(ctx context.Context, doc schema.Document) ([]string, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		return nil, nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Schema converts the named component schema into a declarative schema file.
func (p *Parser) Schema(ctx context.Context, doc schema.Document, component string) (schema.File, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return schema.File{}, err
	}
	if spec.Components == nil {
		return schema.File{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}
	ref, ok := spec.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return schema.File{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}

	conv := converter{maxDepth: p.options.MaxDepth, visiting: map[*openapi3.Schema]bool{ref.Value: true}}
	fields := conv.properties(ref.Value, 1)
	if len(fields) == 0 {
		return schema.File{}, fmt.Errorf("openapi parser: component %q has no properties", component)
	}
	return schema.File{
		Name:        component,
		Description: ref.Value.Description,
		Fields:      fields,
	}, nil
}

func (p *Parser) load(ctx context.Context, doc schema.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return spec, nil
}
