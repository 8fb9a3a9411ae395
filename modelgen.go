// Package modelgen builds lazily evaluated model objects from loosely
// structured input (decoded JSON, YAML, plain maps) according to a map of
// property definitions.
//
// A definition names where a value lives in the source (a dotted keypath),
// the kind it must have, an optional enumeration, a default and an optional
// filter. Invalid or missing values never fail a build: they are replaced by
// the field default and reported through slog.
//
//	defs := modelgen.Definitions{
//		"id":   "id",
//		"name": modelgen.PropType("profile.name").Filter(trim),
//		"role": modelgen.PropType("role").OneOf("reader", "editor"),
//	}
//	user, err := modelgen.Model(input, defs)
package modelgen

import (
	"log/slog"

	internalParser "github.com/goliatone/go-modelgen/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-modelgen/internal/schema/loader"
	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/filters"
	"github.com/goliatone/go-modelgen/pkg/kind"
	"github.com/goliatone/go-modelgen/pkg/maker"
	"github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Kind names re-exported for definition builders.
const (
	String  = kind.String
	Number  = kind.Number
	Boolean = kind.Boolean
	Array   = kind.Array
	Object  = kind.Object
)

type (
	// Definitions maps field names to a *Definition or a keypath string.
	Definitions = definition.Map
	// Definition describes a single field.
	Definition = definition.Definition
	// TransformFunc is the signature of a field filter.
	TransformFunc = definition.TransformFunc
	// Instance is a built model.
	Instance = model.Instance
)

// PropType starts a definition reading the value at keypath.
func PropType(keypath string) *Definition {
	return definition.New(keypath)
}

// Derived starts a definition with no keypath; its value comes from its
// filter or default.
func Derived() *Definition {
	return definition.Derived()
}

// SetDev toggles definition validation process-wide. Dev mode is on by
// default.
func SetDev(enabled bool) {
	maker.SetDev(enabled)
}

// DevMode reports the process-wide dev flag.
func DevMode() bool {
	return maker.DevMode()
}

// NewMaker constructs a Maker with explicit options.
func NewMaker(options ...maker.Option) *maker.Maker {
	return maker.New(options...)
}

// Model builds an instance from source. Warnings go to slog.Default unless
// WithLogger is passed.
func Model(source any, defs Definitions, options ...maker.Option) (*Instance, error) {
	return maker.New(options...).Build(source, defs)
}

// ModelArray builds one instance per element of sources. Non-array input
// yields an empty slice.
func ModelArray(sources any, defs Definitions, options ...maker.Option) ([]*Instance, error) {
	return maker.New(options...).BuildArray(sources, defs)
}

// WithLogger routes validation warnings to logger.
func WithLogger(logger *slog.Logger) maker.Option {
	return maker.WithLogger(logger)
}

// WithDevMode overrides the process-wide dev flag for a single call.
func WithDevMode(enabled bool) maker.Option {
	return maker.WithDevMode(enabled)
}

// Filters returns the shared filter registry used by schema documents.
func Filters() *filters.Registry {
	return filters.Default()
}

// NewLoader constructs a schema loader backed by the internal
// implementation.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

// NewOpenAPIParser constructs the kin-openapi backed component parser.
func NewOpenAPIParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// NewOrchestrator exposes the pipeline constructor from the top-level module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}
