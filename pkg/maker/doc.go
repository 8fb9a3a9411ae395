// Package maker is the model construction engine. For every field of a
// definition map it resolves the raw value by keypath, validates it against
// the declared kind and enumeration, falls back to a computed default when
// validation fails, and installs a lazy thunk on the resulting
// model.Instance. Nested definition maps used as filters re-enter the engine
// for object values and for each element of array values.
//
// Malformed input data never produces an error: rejected values are logged
// as warnings and replaced by defaults. Malformed definitions are reported
// as *definition.DefinitionError when dev mode is enabled (the default).
package maker
