// Package definition describes how a single model field is extracted from a
// raw source value, validated, defaulted and transformed.
//
// Definitions are built fluently:
//
//	definition.New("meta.status").
//	    Type(kind.String).
//	    OneOf("draft", "published")
//
// A field without a keypath is derived: its value comes from a default or a
// filter, never from the source. A bare string inside a Map is shorthand for
// New(thatString) with every option left at its default.
package definition
