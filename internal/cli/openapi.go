package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	internalParser "github.com/goliatone/go-modelgen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

func orchestratorSchema(src schema.Source, component string) orchestrator.SchemaRequest {
	return orchestrator.SchemaRequest{Source: src, Component: component}
}

func newOpenAPICmd(a *app) *cobra.Command {
	var (
		specPath  string
		component string
		validate  bool
		maxDepth  int
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Convert an OpenAPI component schema into a modelgen schema",
		Long:  "openapi prints the declarative schema derived from a component schema.\nWithout --component it lists the available components.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := schemaSource(specPath)
			if err != nil {
				return err
			}
			doc, err := a.loader().Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			parser := internalParser.New(pkgopenapi.NewParserOptions(
				pkgopenapi.WithValidation(validate),
				pkgopenapi.WithMaxDepth(maxDepth),
			))

			out := cmd.OutOrStdout()
			if component == "" {
				names, err := parser.Components(cmd.Context(), doc)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			file, err := parser.Schema(cmd.Context(), doc, component)
			if err != nil {
				return err
			}
			var data []byte
			if a.jsonMode {
				data, err = encodeJSON(file)
			} else {
				data, err = encodeYAML(file)
			}
			if err != nil {
				return err
			}
			return writeOutput(out, "", data)
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "OpenAPI document (file path or http(s) URL)")
	cmd.Flags().StringVarP(&component, "component", "c", "", "component schema to convert")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the OpenAPI document first")
	cmd.Flags().IntVar(&maxDepth, "max-depth", pkgopenapi.DefaultMaxDepth, "maximum nested expansion depth")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}
