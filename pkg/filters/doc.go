// Package filters provides a registry of named transform filters that schema
// documents reference by name, plus a set of built-in string, sanitising and
// identifier filters.
package filters
