// Package main is the entry point for the mtgometrics CLI tool, which parses
// MTGO GameLog files and computes per-opponent win-rate statistics.
package main

import "github.com/modostats/go-mtgo-metrics/cmd"

func main() {
	cmd.Execute()
}
