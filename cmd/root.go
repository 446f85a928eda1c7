package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/aggregator"
	"github.com/modostats/go-mtgo-metrics/internal/bridge"
	"github.com/modostats/go-mtgo-metrics/internal/config"
	"github.com/modostats/go-mtgo-metrics/internal/history"
	"github.com/modostats/go-mtgo-metrics/internal/logging"
	"github.com/modostats/go-mtgo-metrics/internal/logreader"
)

var (
	dbPath        string
	logDir        string
	bridgePath    string
	countExcluded bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "mtgometrics",
	Short: "MTGO match history metrics tool",
	Long:  "Scan MTGO GameLog files and compute per-opponent win/loss statistics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		if verbose {
			level = "debug"
		}
		logging.SetLevel(level)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite match archive")
	rootCmd.PersistentFlags().StringVar(&logDir, "logs", cfg.LogDir, "MTGO GameLog directory (auto-detected when empty)")
	rootCmd.PersistentFlags().StringVar(&bridgePath, "bridge", cfg.BridgePath, "path to the MTGOBridge executable")
	rootCmd.PersistentFlags().BoolVar(&countExcluded, "count-excluded", cfg.CountExcluded, "count excluded matches toward matches played")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(opponentsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dropCmd)
}

// newService wires the aggregation pipeline for CLI commands: log reader,
// bridge-backed username lookup, and the caching history service. The log
// directory comes from the --logs flag, falling back to auto-detection.
func newService(ctx context.Context) (*history.Service, string, error) {
	log := logging.Logger()
	reader := logreader.New(log)
	br := bridge.New(bridgePath, log)

	dir := logDir
	if dir == "" {
		var locator logreader.DirLocator
		if br.Available() {
			locator = br
		}
		dir = reader.Locate(ctx, locator)
	}
	if dir == "" {
		return nil, "", fmt.Errorf("no GameLog directory found; pass --logs or set MTGO_LOG_DIR")
	}

	username := func(ctx context.Context) string {
		if !br.Available() {
			return ""
		}
		u, err := br.Username(ctx)
		if err != nil {
			return ""
		}
		return u
	}

	opts := aggregator.Options{CountExcluded: countExcluded}
	return history.NewService(dir, reader, username, opts, log), dir, nil
}
