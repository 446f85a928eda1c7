package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// PrintSummary prints the overall totals header for an aggregation pass.
func PrintSummary(w io.Writer, stats *model.Stats) {
	t := stats.Totals
	user := stats.Username
	if user == "" {
		user = "?"
	}
	fmt.Fprintf(w, "\nUser: %s  |  Scanned: %d  |  Counted: %d  |  W-L: %d-%d  |  Excluded: %d  |  Win rate: %.1f%%\n",
		user, t.MatchesScanned, t.MatchesCounted, t.Wins, t.Losses, t.Excluded, t.MatchWinRate())
	fmt.Fprintf(w, "Games: %d-%d (%.1f%%)  |  Refreshed: %s\n",
		t.GamesWon, t.GamesLost, t.GameWinRate(), stats.LastRefreshed.Format("2006-01-02 15:04:05"))
	if t.ParseFailures > 0 {
		fmt.Fprintf(w, "%d matches could not be parsed\n", t.ParseFailures)
	}
	fmt.Fprintln(w)
}

// PrintOpponentTable prints per-opponent win/loss stats, most-played first.
func PrintOpponentTable(w io.Writer, opponents []model.OpponentStats) {
	if len(opponents) == 0 {
		fmt.Fprintln(w, "No opponents recorded yet.")
		return
	}
	table := newTable(w)
	table.Header("OPPONENT", "W", "L", "MATCHES", "WIN%", "LAST PLAYED")
	for i := range opponents {
		s := &opponents[i]
		table.Append(
			s.Opponent,
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.MatchesPlayed),
			fmt.Sprintf("%.1f%%", s.WinRate()),
			formatTime(s.LastPlayed),
		)
	}
	table.Render()
}

// PrintMatchTable prints per-match rows, typically newest first.
func PrintMatchTable(w io.Writer, matches []model.MatchSummary) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches archived yet. Run 'mtgometrics scan' to add some.")
		return
	}
	table := newTable(w)
	table.Header("MATCH", "PLAYED", "LOCAL", "OPPONENT", "SCORE", "RESULT", "FORMAT", "ARCHETYPES")
	for _, m := range matches {
		table.Append(
			shortID(m.MatchID),
			formatTime(m.Timestamp),
			m.LocalPlayer,
			m.Opponent,
			m.Score,
			m.Outcome.String(),
			m.Format,
			archetypes(m),
		)
	}
	table.Render()
}

// PrintMatch prints the full detail of a single archived match.
func PrintMatch(w io.Writer, m *model.MatchSummary) {
	fmt.Fprintf(w, "\nMatch:      %s\n", m.MatchID)
	fmt.Fprintf(w, "Played:     %s\n", formatTime(m.Timestamp))
	fmt.Fprintf(w, "Players:    %s vs %s\n", m.Player1, m.Player2)
	fmt.Fprintf(w, "Local:      %s\n", m.LocalPlayer)
	fmt.Fprintf(w, "Score:      %s\n", m.Score)
	if m.Winner != "" {
		fmt.Fprintf(w, "Declared:   %s\n", m.Winner)
	}
	fmt.Fprintf(w, "Result:     %s\n", m.Outcome)
	fmt.Fprintf(w, "Format:     %s\n", m.Format)
	fmt.Fprintf(w, "Archetypes: %s\n\n", archetypes(*m))
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func archetypes(m model.MatchSummary) string {
	a1, a2 := m.Archetype1, m.Archetype2
	if a1 == "" && a2 == "" {
		return "—"
	}
	return a1 + " / " + a2
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02 15:04")
}
