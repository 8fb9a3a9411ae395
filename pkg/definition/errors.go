package definition

import (
	"errors"
	"fmt"
)

// ErrUnsupportedEntry is returned when a Map value is neither a *Definition
// nor a keypath string.
var ErrUnsupportedEntry = errors.New("definition: unsupported map entry")

// DefinitionError reports a malformed definition. Field is the dotted field
// path and Option the offending builder option. Err, when set, is the
// underlying cause and is exposed through Unwrap.
type DefinitionError struct {
	Field   string
	Option  string
	Message string
	Err     error
}

func (e *DefinitionError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("prop '%s' has an error with option '%s': %s", e.Field, e.Option, msg)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

func optionError(field, option, message string) error {
	return &DefinitionError{Field: field, Option: option, Message: message}
}
