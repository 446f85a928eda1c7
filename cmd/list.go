package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/report"
	"github.com/modostats/go-mtgo-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	report.PrintMatchTable(os.Stdout, matches)
	return nil
}
