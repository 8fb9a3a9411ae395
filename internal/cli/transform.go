package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/pkg/orchestrator"
)

type buildFlags struct {
	schema    string
	component string
	input     string
	array     bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.schema, "schema", "s", "", "schema document (file path or http(s) URL)")
	cmd.Flags().StringVarP(&f.component, "component", "c", "", "treat --schema as OpenAPI and use this component schema")
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "input JSON or YAML (\"-\" for stdin)")
	cmd.Flags().BoolVar(&f.array, "array", false, "build one model per element of the input array")
	_ = cmd.MarkFlagRequired("schema")
}

func (f *buildFlags) request(cmd *cobra.Command) (orchestrator.Request, error) {
	src, err := schemaSource(f.schema)
	if err != nil {
		return orchestrator.Request{}, err
	}
	data, err := readInput(cmd.InOrStdin(), f.input)
	if err != nil {
		return orchestrator.Request{}, err
	}
	input, err := decodeValue(data)
	if err != nil {
		return orchestrator.Request{}, err
	}
	return orchestrator.Request{
		Schema: orchestrator.SchemaRequest{Source: src, Component: f.component},
		Input:  input,
		Array:  f.array,
	}, nil
}

func newTransformCmd(a *app) *cobra.Command {
	var (
		flags  buildFlags
		output string
		yamlOn bool
	)
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Build models from input and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.request(cmd)
			if err != nil {
				return err
			}
			out, err := a.orchestrator().Transform(cmd.Context(), req)
			if err != nil {
				return err
			}
			var data []byte
			if yamlOn {
				data, err = encodeYAML(out)
			} else {
				data, err = encodeJSON(out)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&yamlOn, "yaml", false, "print YAML instead of JSON")
	return cmd
}
