package cli

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/pkg/model"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func newInspectCmd(a *app) *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a Go-typed dump of the built models",
		Long:  "inspect builds the models like transform but prints every value with its\nGo type, which helps when tracking down kind mismatches.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.request(cmd)
			if err != nil {
				return err
			}
			instances, err := a.orchestrator().Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			dumped, err := model.DumpAll(instances)
			if err != nil {
				return err
			}
			var value any = dumped
			if !req.Array && len(dumped) == 1 {
				value = dumped[0]
			}
			return writeOutput(cmd.OutOrStdout(), "", []byte(dumper.Sdump(value)))
		},
	}
	flags.register(cmd)
	return cmd
}
