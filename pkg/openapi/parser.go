package openapi

import (
	"context"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Extension keys read from component schemas.
const (
	// ExtensionKeypath overrides the keypath of a property (defaults to the
	// property name).
	ExtensionKeypath = "x-modelgen-keypath"
	// ExtensionFilter names a registered filter expression for a property.
	ExtensionFilter = "x-modelgen-filter"
	// ExtensionIgnore drops a property from the generated schema.
	ExtensionIgnore = "x-modelgen-ignore"
)

// Parser converts component schemas of an OpenAPI document into declarative
// schema files.
type Parser interface {
	// Components lists the component schema names in sorted order.
	Components(ctx context.Context, doc schema.Document) ([]string, error)
	// Schema converts the named component schema.
	Schema(ctx context.Context, doc schema.Document, component string) (schema.File, error)
}

// DefaultMaxDepth bounds how deep nested object properties are expanded.
const DefaultMaxDepth = 8

// ParserOptions tunes the conversion.
type ParserOptions struct {
	// Validate runs kin-openapi document validation before conversion.
	Validate bool

	// MaxDepth limits nested expansion. Deeper objects are kept as plain
	// object fields without a nested schema.
	MaxDepth int
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) ParserOption {
	return func(opts *ParserOptions) {
		opts.MaxDepth = depth
	}
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{MaxDepth: DefaultMaxDepth}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}
