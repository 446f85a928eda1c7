package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modostats/go-mtgo-metrics/internal/bridge"
	"github.com/modostats/go-mtgo-metrics/internal/logging"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in MTGO username via the bridge",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	br := bridge.New(bridgePath, logging.Logger())
	if !br.Available() {
		return fmt.Errorf("no bridge configured; pass --bridge or set MTGO_BRIDGE_PATH")
	}
	username, err := br.Username(cmd.Context())
	if err != nil {
		return fmt.Errorf("query bridge: %w", err)
	}
	if username == "" {
		return fmt.Errorf("bridge reports no logged-in user; is MTGO running?")
	}
	fmt.Fprintln(os.Stdout, username)
	return nil
}
