// Package orchestrator wires the loader, the schema decoders and the maker
// into a single pipeline: resolve a definition map from a declarative schema
// or an OpenAPI component, build models from input values and materialise
// them.
package orchestrator
