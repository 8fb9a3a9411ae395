// Package model holds the Instance type produced by the model maker. An
// Instance is an ordered set of named fields, each backed by a thunk that is
// evaluated on first read and cached for the lifetime of the instance.
// Writing a field with Set discards its thunk so later reads return the
// written value. Dump materialises every field, recursing into nested
// instances, and yields the plain map[string]any callers usually want.
//
// An Instance is not safe for concurrent use. Callers sharing one across
// goroutines must synchronise access themselves.
package model
