package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchema = `
fields:
  name:
    keypath: profile.name
    filter: trim
  role:
    keypath: role
    oneOf: [reader, editor]
  slug:
    keypath: profile.name
    filter: trim|slug
`

const petstore = `
openapi: 3.0.3
info: { title: Pets, version: 1.0.0 }
paths: {}
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name: { type: string }
        age: { type: integer }
    Owner:
      type: object
      properties:
        email: { type: string }
`

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	code := run(root, args, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func fixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTransformCommand(t *testing.T) {
	schemaPath := fixture(t, "user.yaml", userSchema)
	res := execute(t, `{"profile": {"name": "  Ada "}, "role": "admin"}`, "transform", "--schema", schemaPath)
	require.Equal(t, exitSuccess, res.code, res.stderr)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, map[string]any{"name": "Ada", "role": "reader", "slug": "ada"}, out)
	assert.Contains(t, res.stderr, "should be one of (reader,editor)")
}

func TestTransformCommandArrayToFile(t *testing.T) {
	schemaPath := fixture(t, "user.yaml", userSchema)
	inputPath := fixture(t, "users.yaml", "- profile: {name: a}\n  role: editor\n- profile: {name: b}\n")
	outputPath := filepath.Join(t.TempDir(), "out.json")

	res := execute(t, "", "transform", "-s", schemaPath, "-i", inputPath, "--array", "-o", outputPath)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "editor", out[0]["role"])
	assert.Equal(t, "reader", out[1]["role"])
}

func TestTransformCommandFromOpenAPIComponent(t *testing.T) {
	specPath := fixture(t, "petstore.yaml", petstore)
	res := execute(t, `{"name": "rex", "age": "old"}`, "transform", "-s", specPath, "-c", "Pet", "--yaml")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "age: null\nname: rex\n", res.stdout)
}

func TestTransformCommandErrors(t *testing.T) {
	res := execute(t, "{}", "transform")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, `"schema" not set`)

	schemaPath := fixture(t, "user.yaml", userSchema)
	res = execute(t, "", "transform", "-s", schemaPath)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "input is empty")

	res = execute(t, "{}", "transform", "-s", "https://example.com/user.yaml")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "http support disabled")
}

func TestValidateCommand(t *testing.T) {
	good := fixture(t, "good.yaml", userSchema)
	res := execute(t, "", "validate", "-s", good)
	assert.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "good.yaml: ok")

	bad := fixture(t, "bad.yaml", "fields:\n  age:\n    keypath: age\n    type: number\n    default: old\n  magic: {}\n")
	res = execute(t, "", "validate", "-s", bad)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stdout, "age [default]: must be type of 'number'")
	assert.Contains(t, res.stdout, "magic [default]: magic property must have a default value or filter")

	res = execute(t, "", "--json", "validate", "-s", bad)
	assert.Equal(t, exitUserError, res.code)
	var report struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			Field string `json:"field"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.False(t, report.Valid)
	assert.Len(t, report.Issues, 2)
}

func TestValidateCommandOpenAPIComponent(t *testing.T) {
	specPath := fixture(t, "petstore.yaml", petstore)
	res := execute(t, "", "validate", "-s", specPath, "-c", "Pet")
	assert.Equal(t, exitSuccess, res.code, res.stderr)
}

func TestInspectCommand(t *testing.T) {
	schemaPath := fixture(t, "user.yaml", userSchema)
	res := execute(t, `{"profile": {"name": "Ada"}, "role": "editor"}`, "inspect", "-s", schemaPath)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `(string) (len=3) "Ada"`)
	assert.Contains(t, res.stdout, `(string) (len=6) "editor"`)
}

func TestOpenAPICommand(t *testing.T) {
	specPath := fixture(t, "petstore.yaml", petstore)

	res := execute(t, "", "openapi", "--spec", specPath)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "Owner\nPet\n", res.stdout)

	res = execute(t, "", "openapi", "--spec", specPath, "-c", "Pet")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	want := `name: Pet
fields:
  age:
    keypath: age
    type: number
    optional: true
  name:
    keypath: name
    type: string
`
	assert.Equal(t, want, res.stdout)

	res = execute(t, "", "openapi", "--spec", specPath, "-c", "Missing")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "component schema not found")
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "", "version")
	assert.Equal(t, exitSuccess, res.code)
	assert.Equal(t, "modelgen dev\n", res.stdout)
}

func TestConfigFileFlag(t *testing.T) {
	cfgPath := fixture(t, "modelgen.yaml", "log_format: xml\n")
	res := execute(t, "", "--config", cfgPath, "version")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "log_format")
}
