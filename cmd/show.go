package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/report"
	"github.com/modostats/go-mtgo-metrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show one archived match",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("find match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("no archived match with ID prefix %q", args[0])
	}
	report.PrintMatch(os.Stdout, match)
	return nil
}
