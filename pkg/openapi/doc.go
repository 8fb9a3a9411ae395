// Package openapi exposes the contract for deriving declarative schemas from
// OpenAPI component schemas. The kin-openapi backed implementation lives in
// internal/openapi/parser and is constructed through the root package.
package openapi
