package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/report"
	"github.com/modostats/go-mtgo-metrics/internal/storage"
)

var (
	scanForce   bool
	scanNoStore bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the GameLog directory and compute statistics",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanForce, "force", false, "recompute even when no log file changed")
	scanCmd.Flags().BoolVar(&scanNoStore, "no-store", false, "skip archiving matches to the database")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, dir, err := newService(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Scanning %s...\n", dir)
	stats, err := svc.Refresh(ctx, scanForce)
	if err != nil {
		return fmt.Errorf("scan gamelogs: %w", err)
	}

	report.PrintSummary(os.Stdout, stats)
	report.PrintOpponentTable(os.Stdout, stats.Opponents)

	if scanNoStore {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches := svc.Matches()
	if err := db.InsertMatches(matches); err != nil {
		return fmt.Errorf("archive matches: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Archived %d matches to %s\n", len(matches), dbPath)
	return nil
}
