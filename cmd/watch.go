package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/logging"
	"github.com/modostats/go-mtgo-metrics/internal/model"
	"github.com/modostats/go-mtgo-metrics/internal/report"
	"github.com/modostats/go-mtgo-metrics/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the GameLog directory and refresh stats on change",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, dir, err := newService(ctx)
	if err != nil {
		return err
	}

	onStats := func(stats *model.Stats) {
		report.PrintSummary(os.Stdout, stats)
		report.PrintOpponentTable(os.Stdout, stats.Opponents)
	}

	w, err := watch.New(dir, svc, onStats, logging.Logger())
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	fmt.Fprintf(os.Stdout, "Watching %s (Ctrl-C to stop)\n", dir)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
