// Command modelgen builds typed models from JSON or YAML input using
// declarative schema documents or OpenAPI component schemas.
package main

import "github.com/goliatone/go-modelgen/internal/cli"

func main() {
	cli.Execute()
}
