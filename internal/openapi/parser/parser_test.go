package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

const petstore = `{
  "openapi": "3.0.3",
  "info": { "title": "Pets", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "description": "A pet",
        "required": ["id", "name", "status"],
        "properties": {
          "id": { "type": "integer" },
          "name": { "type": "string", "x-modelgen-filter": "trim" },
          "status": { "type": "string", "enum": ["available", "sold"], "default": "available" },
          "nickname": { "type": "string", "nullable": true },
          "vaccinated": { "type": "boolean" },
          "owner": {
            "type": "object",
            "required": ["email"],
            "properties": {
              "email": { "type": "string", "x-modelgen-keypath": "contact.email" }
            }
          },
          "tags": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": { "label": { "type": "string" } }
            }
          },
          "internal": { "type": "string", "x-modelgen-ignore": true }
        }
      },
      "PublishingHouse": {
        "type": "object",
        "properties": {
          "headquarters": { "$ref": "#/components/schemas/Headquarters" }
        }
      },
      "Headquarters": {
        "type": "object",
        "properties": {
          "city": { "type": "string" },
          "publisher": { "$ref": "#/components/schemas/PublishingHouse" }
        }
      },
      "Named": {
        "type": "object",
        "required": ["name"],
        "properties": { "name": { "type": "string" } }
      },
      "Dog": {
        "allOf": [
          { "$ref": "#/components/schemas/Named" },
          { "type": "object", "properties": { "breed": { "type": "string" } } }
        ]
      }
    }
  }
}`

func document(t *testing.T) schema.Document {
	t.Helper()
	return schema.MustNewDocument(schema.SourceInline("petstore.json"), []byte(petstore))
}

var ignoreUnexported = cmpopts.IgnoreUnexported(schema.FieldSpec{})

func TestComponents(t *testing.T) {
	names, err := New(pkgopenapi.NewParserOptions()).Components(context.Background(), document(t))
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	want := []string{"Dog", "Headquarters", "Named", "Pet", "PublishingHouse"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaConvertsProperties(t *testing.T) {
	file, err := New(pkgopenapi.NewParserOptions()).Schema(context.Background(), document(t), "Pet")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	want := schema.File{
		Name:        "Pet",
		Description: "A pet",
		Fields: map[string]schema.FieldSpec{
			"id":         {Keypath: "id", Type: "number"},
			"name":       {Keypath: "name", Type: "string", Filter: "trim"},
			"status":     {Keypath: "status", Type: "string", Default: "available", OneOf: []any{"available", "sold"}},
			"nickname":   {Keypath: "nickname", Type: "string", Optional: true},
			"vaccinated": {Keypath: "vaccinated", Type: "boolean", Optional: true},
			"owner": {Keypath: "owner", Type: "object", Optional: true, Fields: map[string]schema.FieldSpec{
				"email": {Keypath: "contact.email", Type: "string"},
			}},
			"tags": {Keypath: "tags", Type: "array", Optional: true, Fields: map[string]schema.FieldSpec{
				"label": {Keypath: "label", Type: "string", Optional: true},
			}},
		},
	}
	if diff := cmp.Diff(want, file, ignoreUnexported); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaStopsAtRecursiveReferences(t *testing.T) {
	file, err := New(pkgopenapi.NewParserOptions()).Schema(context.Background(), document(t), "PublishingHouse")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	hq := file.Fields["headquarters"]
	if len(hq.Fields) != 2 {
		t.Fatalf("headquarters should expand once, got %#v", hq.Fields)
	}
	publisher := hq.Fields["publisher"]
	if publisher.Type != "object" || publisher.Fields != nil {
		t.Fatalf("publisher should be a plain object field, got %#v", publisher)
	}
}

func TestSchemaMergesAllOf(t *testing.T) {
	file, err := New(pkgopenapi.NewParserOptions()).Schema(context.Background(), document(t), "Dog")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	want := map[string]schema.FieldSpec{
		"name":  {Keypath: "name", Type: "string"},
		"breed": {Keypath: "breed", Type: "string", Optional: true},
	}
	if diff := cmp.Diff(want, file.Fields, ignoreUnexported); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaHonoursMaxDepth(t *testing.T) {
	file, err := New(pkgopenapi.NewParserOptions(pkgopenapi.WithMaxDepth(1))).Schema(context.Background(), document(t), "Pet")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if file.Fields["owner"].Fields != nil {
		t.Fatalf("owner must not expand beyond depth 1")
	}
}

func TestSchemaErrors(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	if _, err := p.Schema(context.Background(), document(t), "Missing"); !errors.Is(err, ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}

	bad := schema.MustNewDocument(schema.SourceInline("bad.json"), []byte(`{"openapi": 3`))
	if _, err := p.Components(context.Background(), bad); err == nil {
		t.Fatalf("expected load error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Components(ctx, document(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestSchemaCompilesToDefinitions(t *testing.T) {
	file, err := New(pkgopenapi.NewParserOptions()).Schema(context.Background(), document(t), "Dog")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	defs, err := file.Definitions(nil)
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected two definitions, got %d", len(defs))
	}
}
