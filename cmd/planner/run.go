package main

import (
	"dronedelivery/internal/adapters/out/console"
	"dronedelivery/internal/adapters/out/movelog"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/ports"

	"github.com/spf13/cobra"
)

func runCmd(flags *planFlags) *cobra.Command {
	var (
		out        string
		zstd       bool
		showReport bool
		showRoutes bool
	)

	c := &cobra.Command{
		Use:   "run <scenario|->",
		Short: "Simulate a scenario and print its score",
		Long: `Simulate a scenario and print its score.

With --out, the move log is written to a file, or to <score>.txt when the target
is a directory. A target ending in .zst is compressed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var writer ports.MoveLogWriter
			if out != "" {
				var opts []movelog.Option
				if zstd {
					opts = append(opts, movelog.WithZstd())
				}
				fileWriter, err := movelog.NewFileWriter(out, opts...)
				if err != nil {
					return err
				}
				writer = fileWriter
			}

			handler := commands.NewSimulateCommandHandler(writer, newLogger(c, flags.verbose))
			result, err := simulate(c, flags, args[0], handler)
			if err != nil {
				return err
			}

			renderer := console.NewRenderer(c.OutOrStdout(), flags.noColor)
			if showRoutes {
				if err = renderer.Routes(result.Routes); err != nil {
					return err
				}
			}
			if showReport {
				if err = renderer.Report(result.Report); err != nil {
					return err
				}
			}
			return renderer.Result(result)
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "Move log file or directory")
	c.Flags().BoolVar(&zstd, "zstd", false, "Compress <score>.txt files written to a directory")
	c.Flags().BoolVar(&showReport, "report", false, "Print planning diagnostics")
	c.Flags().BoolVar(&showRoutes, "routes", false, "Print the mapped routes")

	return c
}
