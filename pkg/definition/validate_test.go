package definition_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/definition"
	"github.com/goliatone/go-modelgen/pkg/kind"
	"github.com/goliatone/go-modelgen/pkg/model"
)

func identity(value any, _ *model.Instance) (any, error) { return value, nil }

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		def    *definition.Definition
		option string
	}{
		{name: "keyed string", def: definition.New("foo")},
		{name: "derived with filter", def: definition.Derived().Filter(identity)},
		{name: "derived with default", def: definition.Derived().DefaultValue("x")},
		{name: "derived with falsy default", def: definition.Derived().Type(kind.Number).DefaultValue(0)},
		{name: "object with nested schema", def: definition.New("o").Type(kind.Object).FilterSchema(definition.Map{"a": "a"})},
		{name: "array with nested schema", def: definition.New("o").Type(kind.Array).FilterSchema(definition.Map{"a": "a"})},
		{name: "array with transform", def: definition.New("o").Type(kind.Array).Filter(identity)},

		{name: "derived without default or filter", def: definition.Derived(), option: "default"},
		{name: "default of wrong kind", def: definition.New("foo").Type(kind.Number).DefaultValue("x"), option: "default"},
		{name: "empty keypath", def: definition.New(""), option: "keypath"},
		{name: "empty keypath segment", def: definition.New("a..b"), option: "keypath"},
		{name: "unknown kind", def: definition.New("foo").Type(kind.Kind("date")), option: "type"},
		{name: "function kind", def: definition.New("foo").Type(kind.Function), option: "type"},
		{name: "enum of wrong kind", def: definition.New("foo").OneOf("a", 1), option: "oneOf"},
		{name: "nested schema on string", def: definition.New("foo").FilterSchema(definition.Map{"a": "a"}), option: "filter"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := definition.Validate("foo", tc.def)
			if tc.option == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var defErr *definition.DefinitionError
			if !errors.As(err, &defErr) {
				t.Fatalf("expected DefinitionError, got %v", err)
			}
			if defErr.Option != tc.option {
				t.Fatalf("option = %q, want %q (%v)", defErr.Option, tc.option, err)
			}
			if defErr.Field != "foo" {
				t.Fatalf("field = %q", defErr.Field)
			}
		})
	}
}

func TestValidateCheckOrder(t *testing.T) {
	// Default kind is checked before the keypath.
	def := definition.New("").Type(kind.Number).DefaultValue("x")
	var defErr *definition.DefinitionError
	if err := definition.Validate("foo", def); !errors.As(err, &defErr) || defErr.Option != "default" {
		t.Fatalf("expected default error first, got %v", err)
	}
}

func TestDefinitionErrorMessage(t *testing.T) {
	err := definition.Validate("foo", definition.Derived())
	want := "prop 'foo' has an error with option 'default': magic property must have a default value or filter"
	if err == nil || err.Error() != want {
		t.Fatalf("message = %v", err)
	}
}

func TestValidateMapCollectsNestedIssues(t *testing.T) {
	defs := definition.Map{
		"ok":   "ok",
		"bad":  definition.Derived(),
		"list": definition.New("list").Type(kind.Array).FilterSchema(definition.Map{
			"name":  "name",
			"count": definition.New("count").Type(kind.Number).DefaultValue("zero"),
		}),
		"weird": 12,
	}

	errs := definition.ValidateMap(defs)
	if len(errs) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(errs), errs)
	}
	joined := errors.Join(errs...).Error()
	for _, fragment := range []string{"prop 'bad'", "prop 'list.count'", "prop 'weird'"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("missing %q in %s", fragment, joined)
		}
	}
	if !errors.Is(errs[2], definition.ErrUnsupportedEntry) {
		t.Fatalf("expected last issue to wrap ErrUnsupportedEntry, got %v", errs[2])
	}
}

func TestValidateMapUnsupportedEntryCarriesField(t *testing.T) {
	errs := definition.ValidateMap(definition.Map{
		"list": definition.New("list").Type(kind.Array).FilterSchema(definition.Map{"odd": 3.5}),
	})
	if len(errs) != 1 {
		t.Fatalf("expected one issue, got %v", errs)
	}
	var defErr *definition.DefinitionError
	if !errors.As(errs[0], &defErr) {
		t.Fatalf("expected *DefinitionError, got %T", errs[0])
	}
	if defErr.Field != "list.odd" || defErr.Option != "entry" || defErr.Message != "unsupported map entry: float64" {
		t.Fatalf("unexpected detail %#v", defErr)
	}
	if !errors.Is(errs[0], definition.ErrUnsupportedEntry) {
		t.Fatalf("expected ErrUnsupportedEntry in chain, got %v", errs[0])
	}
}

func TestDefinitionErrorFallsBackToCause(t *testing.T) {
	err := &definition.DefinitionError{Field: "a", Option: "filter", Err: errors.New("boom")}
	if got := err.Error(); got != "prop 'a' has an error with option 'filter': boom" {
		t.Fatalf("message = %q", got)
	}
}
