package model

import (
	"errors"
	"fmt"
)

var (
	ErrFieldNotFound = errors.New("model: field not found")
	ErrCyclicField   = errors.New("model: field depends on itself")
)

// Thunk computes a field value on first access.
type Thunk func() (any, error)

type slot struct {
	thunk     Thunk
	value     any
	err       error
	evaluated bool
	running   bool
}

// Instance is the lazily evaluated result of a model build.
type Instance struct {
	order []string
	slots map[string]*slot
}

// New returns an empty Instance.
func New() *Instance {
	return &Instance{slots: make(map[string]*slot)}
}

// Define registers name with a thunk. Redefining a field resets its cache.
func (m *Instance) Define(name string, thunk Thunk) {
	if thunk == nil {
		thunk = func() (any, error) { return nil, nil }
	}
	if _, exists := m.slots[name]; !exists {
		m.order = append(m.order, name)
	}
	m.slots[name] = &slot{thunk: thunk}
}

// Get returns the value of name, running its thunk the first time. Both the
// value and any error are cached, so a thunk runs at most once.
func (m *Instance) Get(name string) (any, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	s, ok := m.slots[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	if s.evaluated {
		return s.value, s.err
	}
	if s.running {
		return nil, fmt.Errorf("%w: %q", ErrCyclicField, name)
	}

	value, err := s.run()

	// A Set issued from inside the thunk wins over the computed value.
	if s.evaluated {
		return s.value, s.err
	}
	s.value, s.err = value, err
	s.evaluated = true
	s.thunk = nil
	return s.value, s.err
}

// Value is Get without the error. Unknown fields and failed thunks yield nil.
// It is the convenient form for transforms deriving one field from others.
func (m *Instance) Value(name string) any {
	value, err := m.Get(name)
	if err != nil {
		return nil
	}
	return value
}

// Set overwrites name. The field's thunk, if it has not run yet, never will.
// Setting an undefined name adds it to the instance.
func (m *Instance) Set(name string, value any) {
	s, ok := m.slots[name]
	if !ok {
		m.order = append(m.order, name)
		s = &slot{}
		m.slots[name] = s
	}
	s.thunk = nil
	s.value = value
	s.err = nil
	s.evaluated = true
}

// Has reports whether name is a field of the instance.
func (m *Instance) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.slots[name]
	return ok
}

// Evaluated reports whether name has a cached value, either computed or set.
func (m *Instance) Evaluated(name string) bool {
	if m == nil {
		return false
	}
	s, ok := m.slots[name]
	return ok && s.evaluated
}

// Fields returns the field names in definition order.
func (m *Instance) Fields() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.order...)
}

// Len returns the number of fields.
func (m *Instance) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// run invokes the thunk, clearing the running mark even when it panics so a
// recovered caller can retry the field.
func (s *slot) run() (any, error) {
	s.running = true
	defer func() { s.running = false }()
	return s.thunk()
}
