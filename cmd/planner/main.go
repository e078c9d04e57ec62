package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dronedelivery/cmd"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/scenario"
	"dronedelivery/internal/core/domain/services/pathfinding"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// planFlags are shared by every command that plans a scenario.
type planFlags struct {
	profile      string
	profilesFile string
	capacity     int
	ratio        int
	policies     []string
	singleTarget bool
	retryMissing bool
	verbose      bool
	noColor      bool
}

func newRootCmd() *cobra.Command {
	flags := &planFlags{}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan and simulate drone deliveries on a toroidal grid",
		Long: `planner reads a delivery scenario, maps one route per drone and plays the
simulation round by round.

Scenario format:
  <rows> <columns>
  <packets> <drones> <max distance> <max round>
  <depot row> <depot column>
  <packet row> <packet column>   (one line per packet)

Examples:
  planner run input.txt                      # print the score
  planner run input.txt --out results/       # write results/<score>.txt
  planner run input.txt --out moves.txt.zst  # compressed move log
  planner run - --capacity 4 < input.txt     # read stdin, override capacity
  planner report input.txt --policy "Free|Wait"`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.profile, "profile", "", "Limit profile name (default: the profiles file default)")
	root.PersistentFlags().StringVar(&flags.profilesFile, "profiles", "", "YAML profiles file (default: built-in profiles)")
	root.PersistentFlags().IntVar(&flags.capacity, "capacity", 0, "Override the maximum packets per drone")
	root.PersistentFlags().IntVar(&flags.ratio, "ratio", 0, "Override the distance lost per packet on board")
	root.PersistentFlags().StringArrayVar(&flags.policies, "policy", nil, `Search policy such as "All|Alternative|Wait" (repeatable, in order)`)
	root.PersistentFlags().BoolVar(&flags.singleTarget, "single-target", false, "Plan one closest packet per route")
	root.PersistentFlags().BoolVar(&flags.retryMissing, "retry-missing", false, "Plan a second pass for packets no route reached")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log planning details to stderr")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		runCmd(flags),
		reportCmd(flags),
	)

	return root
}

// simulate parses the scenario named by arg ("-" reads stdin) and runs it with the
// resolved limits and planner options.
func simulate(c *cobra.Command, flags *planFlags, arg string, handler commands.SimulateCommandHandler) (commands.SimulateResult, error) {
	sc, err := readScenario(c, arg)
	if err != nil {
		return commands.SimulateResult{}, err
	}

	limits, err := resolveLimits(c, flags)
	if err != nil {
		return commands.SimulateResult{}, err
	}

	options := commands.SimulateOptions{
		SingleTarget: flags.singleTarget,
		RetryMissing: flags.retryMissing,
	}
	for _, text := range flags.policies {
		policy, err := pathfinding.ParsePolicy(text)
		if err != nil {
			return commands.SimulateResult{}, err
		}
		options.Policies = append(options.Policies, policy)
	}

	simulateCmd, err := commands.NewSimulateCommand(sc, limits, options)
	if err != nil {
		return commands.SimulateResult{}, err
	}
	return handler.Handle(c.Context(), simulateCmd)
}

func readScenario(c *cobra.Command, arg string) (scenario.Scenario, error) {
	var in io.Reader = c.InOrStdin()
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return scenario.Scenario{}, err
		}
		defer f.Close()
		in = f
	}

	sc, err := scenario.Parse(in)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("%s: %w", arg, err)
	}
	return sc, nil
}

func resolveLimits(c *cobra.Command, flags *planFlags) (kernel.Limits, error) {
	configs := cmd.Config{
		LimitsProfile: flags.profile,
		ProfilesFile:  flags.profilesFile,
	}
	if c.Flags().Changed("capacity") {
		configs.DroneMaxCapacity = &flags.capacity
	}
	if c.Flags().Changed("ratio") {
		configs.AutonomyRatio = &flags.ratio
	}

	profiles, err := cmd.LoadProfiles(configs)
	if err != nil {
		return kernel.Limits{}, err
	}
	profile, err := profiles.Lookup("")
	if err != nil {
		return kernel.Limits{}, err
	}
	return profile.Limits()
}

func newLogger(c *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
