// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/tis/grid"
	"github.com/ezrec/tis/layout"
	"github.com/ezrec/tis/translate"
)

var (
	ticks   int
	verbose bool
	show    bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "tis LAYOUT",
	Short: "Run a grid of tiny assembly nodes",
	Long: `tis loads a grid layout (.yaml or .star) and runs it until every
program node is blocked, a node halts, or the tick limit is reached.

Sources without listed values read decimal integers from standard input.
Sinks write every value they receive to standard output.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		zap.L().Debug("locale", zap.Strings("locales", translate.Locales()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runLayout,
}

func init() {
	rootCmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "Stop after this many ticks (0 for no limit)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().BoolVarP(&show, "show", "s", false, "Show the grid state when the run ends")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "Show the grid state after every tick")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runLayout builds and runs a layout. A deadlock is a normal end of run.
func runLayout(cmd *cobra.Command, args []string) (err error) {
	path := args[0]

	ly, err := layout.Load(path)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}

	g, err := ly.Build(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}

	g.Verbose = verbose
	if trace {
		g.Trace = func(g *grid.Grid) {
			fmt.Fprintln(cmd.ErrOrStderr(), Render(g))
		}
	}

	count, err := g.Run(ticks)
	zap.L().Info("run complete",
		zap.String("layout", path),
		zap.Int("ticks", count),
		zap.Error(err),
	)

	if show && !trace {
		fmt.Fprintln(cmd.ErrOrStderr(), Render(g))
	}

	if errors.Is(err, grid.ErrDeadlock) {
		err = nil
	}

	return
}
