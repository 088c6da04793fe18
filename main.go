package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shift_buddy_go/benchmark"
	"shift_buddy_go/config"
	"shift_buddy_go/tools/controller"
	"shift_buddy_go/tools/sanity_check"
)

var (
	cfg          = config.Default()
	configPath   string
	overrides    []string
	logLevel     string
	benchmarking bool
)

func printVersion(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Shift Buddy - Version Information Menu")
	fmt.Fprintln(w, "Central Executable:")
	fmt.Fprintf(w, "\tShift Buddy:\t\t%s\n", config.Main_version)
	fmt.Fprintf(w, "\nModular tools:\n")
	fmt.Fprintf(w, "\tShift Search:\t\t%s\n", config.Shift_Search)
	fmt.Fprintf(w, "\tShift Predict:\t\t%s\n", config.Shift_Predict)
	fmt.Fprintf(w, "\tCandidates:\t\t%s\n", config.Candidates)
	fmt.Fprintf(w, "\tSanity Check:\t\t%s\n", config.Sanity_check)
	fmt.Fprintf(w, "\tBenchmark:\t\t%s\n", config.Benchmark)
	fmt.Fprintf(w, "\tModel Format:\t\t%s\n", config.Model_Format)
	fmt.Fprintln(w)
}

// setupLogging installs a text slog handler on stderr at the given level.
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shift_buddy",
		Short: "Shift Buddy - predict and tune protein absorption maxima",
		Long: `Shift Buddy predicts absorption-maximum shifts of protein mutants from a
trained sparse linear model and greedily searches for mutations that reach a
target wavelength.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath) // Defaults, then file
			if err != nil {
				return err
			}
			if err := loaded.ParseArgs(overrides); err != nil { // Then key=value overrides
				return err
			}
			if logLevel != "" {
				loaded.LogLevel = strings.ToLower(logLevel)
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			return setupLogging(cfg.LogLevel)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringArrayVar(&overrides, "set", nil, "Override a configuration key, e.g. --set target=610 (repeatable)")
	root.PersistentFlags().StringVar(&logLevel, "log_level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&benchmarking, "benchmark", false, "Report runtime and memory usage of the tool")

	root.AddCommand(
		controller.SearchCommand(&cfg),
		controller.PredictCommand(&cfg),
		controller.CandidatesCommand(&cfg),
		sanity_check.Command(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printVersion(cmd)
				return nil
			},
		},
	)

	// Tool execution wrapper
	for _, sub := range root.Commands() {
		run := sub.RunE
		if run == nil {
			continue
		}
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			if !benchmarking {
				return run(cmd, args)
			}
			label := fmt.Sprintf("shift_buddy %s %s", cmd.Name(), strings.Join(args, " "))
			return benchmark.Run(label, func() error { return run(cmd, args) })
		}
	}
	return root
}

// Main controller
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
