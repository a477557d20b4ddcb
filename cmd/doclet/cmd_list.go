package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/doclet/output"
)

func newListCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "list <class-models>...",
		Short: "Print one line per resource, operation, parameter and model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.resolve(args)
			if err != nil {
				return err
			}
			return output.NewLineEncoder(cmd.OutOrStdout()).EncodeAll(r.decls)
		},
	}

	flags.register(cmd)
	return cmd
}
