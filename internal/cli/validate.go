package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/pkg/filters"
	"github.com/goliatone/go-modelgen/pkg/validation"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		component  string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report every malformed definition in a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := schemaSource(schemaPath)
			if err != nil {
				return err
			}

			var result validation.SchemaValidationResult
			if component != "" {
				defs, err := a.orchestrator().Definitions(cmd.Context(), orchestratorSchema(src, component))
				if err != nil {
					return err
				}
				result = validation.ValidateDefinitions(defs)
			} else {
				doc, err := a.loader().Load(cmd.Context(), src)
				if err != nil {
					return err
				}
				result = validation.ValidateSchema(src, doc.Raw(), validation.SchemaValidationOptions{Filters: filters.Default()})
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				data, err := encodeJSON(result)
				if err != nil {
					return err
				}
				if err := writeOutput(out, "", data); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintf(out, "%s: ok\n", src.Location())
			} else {
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "%s: %s\n", src.Location(), issue)
				}
			}

			if !result.Valid {
				a.logger.Debug("modelgen: schema has issues", "location", src.Location(), "issues", len(result.Issues))
				return errIssues
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema document (file path or http(s) URL)")
	cmd.Flags().StringVarP(&component, "component", "c", "", "treat --schema as OpenAPI and validate this component schema")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
