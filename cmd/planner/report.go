package main

import (
	"dronedelivery/internal/adapters/out/console"
	"dronedelivery/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

func reportCmd(flags *planFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report <scenario|->",
		Short: "Print the mapped routes and planning diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler := commands.NewSimulateCommandHandler(nil, newLogger(c, flags.verbose))
			result, err := simulate(c, flags, args[0], handler)
			if err != nil {
				return err
			}

			renderer := console.NewRenderer(c.OutOrStdout(), flags.noColor)
			if err = renderer.Routes(result.Routes); err != nil {
				return err
			}
			return renderer.Report(result.Report)
		},
	}
}
