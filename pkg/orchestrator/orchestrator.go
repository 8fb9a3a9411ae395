package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	internalParser "github.com/goliatone/go-modelgen/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-modelgen/internal/schema/loader"
	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/filters"
	"github.com/goliatone/go-modelgen/pkg/maker"
	"github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithFilters sets the resolver used for filter names in schema documents.
func WithFilters(resolver schema.FilterResolver) Option {
	return func(o *Orchestrator) {
		o.filters = resolver
	}
}

// WithMaker injects the Maker used to build models.
func WithMaker(mk *maker.Maker) Option {
	return func(o *Orchestrator) {
		o.maker = mk
	}
}

// WithLogger sets the logger for pipeline events. When no Maker is injected
// the default Maker logs warnings through it as well.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithTransformer registers a Transformer that runs against every built model
// before it is materialised.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, t)
	}
}

// Orchestrator coordinates schema loading, model building and output.
type Orchestrator struct {
	loader       schema.Loader
	parser       pkgopenapi.Parser
	filters      schema.FilterResolver
	maker        *maker.Maker
	logger       *slog.Logger
	transformers []Transformer
}

// New constructs an Orchestrator. Missing dependencies fall back to the
// built-in loader (files only), the kin-openapi parser, the default filter
// registry and a Maker sharing the orchestrator logger.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.filters == nil {
		o.filters = filters.Default()
	}
	if o.maker == nil {
		o.maker = maker.New(maker.WithLogger(o.logger))
	}
	return o
}

// SchemaRequest selects the definition map a request is built against.
// Exactly one of Definitions, Document or Source is used, in that order of
// precedence.
type SchemaRequest struct {
	// Definitions bypasses loading entirely.
	Definitions definition.Map

	// Document supplies an already loaded payload.
	Document *schema.Document

	// Source is read through the configured loader.
	Source schema.Source

	// Component, when set, treats the document as OpenAPI and converts the
	// named component schema.
	Component string
}

// Request describes one transform run.
type Request struct {
	Schema SchemaRequest

	// Input is the decoded source value.
	Input any

	// Array builds one model per element of Input.
	Array bool
}

// Definitions resolves the definition map described by req.
func (o *Orchestrator) Definitions(ctx context.Context, req SchemaRequest) (definition.Map, error) {
	if req.Definitions != nil {
		return req.Definitions, nil
	}

	doc, err := o.document(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Component != "" {
		file, err := o.parser.Schema(ctx, doc, req.Component)
		if err != nil {
			return nil, err
		}
		defs, err := file.Definitions(o.filters)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: component %q: %w", req.Component, err)
		}
		o.logger.Debug("orchestrator: definitions from openapi component",
			"location", doc.Location(),
			"component", req.Component,
			"fields", len(defs),
		)
		return defs, nil
	}

	defs, err := schema.Decode(doc, o.filters)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("orchestrator: definitions from schema",
		"location", doc.Location(),
		"fields", len(defs),
	)
	return defs, nil
}

func (o *Orchestrator) document(ctx context.Context, req SchemaRequest) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: schema source or document is required")
	}
	return o.loader.Load(ctx, req.Source)
}

// Build resolves the schema and returns the lazy models without
// materialising them. A single object yields one instance.
func (o *Orchestrator) Build(ctx context.Context, req Request) ([]*model.Instance, error) {
	defs, err := o.Definitions(ctx, req.Schema)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var instances []*model.Instance
	if req.Array {
		instances, err = o.maker.BuildArray(req.Input, defs)
		if err != nil {
			return nil, err
		}
	} else {
		instance, err := o.maker.Build(req.Input, defs)
		if err != nil {
			return nil, err
		}
		instances = []*model.Instance{instance}
	}

	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		for _, instance := range instances {
			if err := t.Transform(ctx, instance); err != nil {
				return nil, fmt.Errorf("orchestrator: transformer: %w", err)
			}
		}
	}
	return instances, nil
}

// Transform builds and materialises the models described by req. The result
// is a map[string]any for single inputs and a []map[string]any for arrays.
func (o *Orchestrator) Transform(ctx context.Context, req Request) (any, error) {
	instances, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Array {
		return model.DumpAll(instances)
	}
	return instances[0].Dump()
}
