package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/report"
	"github.com/modostats/go-mtgo-metrics/internal/storage"
)

var opponentsFromDB bool

var opponentsCmd = &cobra.Command{
	Use:   "opponents",
	Short: "Show per-opponent win/loss statistics",
	Args:  cobra.NoArgs,
	RunE:  runOpponents,
}

func init() {
	opponentsCmd.Flags().BoolVar(&opponentsFromDB, "from-db", false, "roll up the archive instead of scanning log files")
}

func runOpponents(cmd *cobra.Command, args []string) error {
	if opponentsFromDB {
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		opponents, err := db.OpponentRollup()
		if err != nil {
			return fmt.Errorf("roll up opponents: %w", err)
		}
		report.PrintOpponentTable(os.Stdout, opponents)
		return nil
	}

	ctx := cmd.Context()
	svc, _, err := newService(ctx)
	if err != nil {
		return err
	}
	stats, err := svc.Refresh(ctx, false)
	if err != nil {
		return fmt.Errorf("scan gamelogs: %w", err)
	}
	report.PrintSummary(os.Stdout, stats)
	report.PrintOpponentTable(os.Stdout, stats.Opponents)
	return nil
}
