// Package aggregator folds resolved match outcomes into per-opponent and
// overall win-rate statistics.
package aggregator

import (
	"sort"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// Options control aggregation behavior.
type Options struct {
	// CountExcluded bumps matches-played and last-played for excluded
	// outcomes. Excluded matches never count as wins or losses either way;
	// downstream consumers disagree on whether they "count" as played, so
	// the caller picks.
	CountExcluded bool
}

// Aggregate folds a chronological sequence of outcomes (oldest first) into
// per-opponent stats plus overall totals. Opponent names are exact-string
// keys. The returned slice is ordered by matches played descending, with
// ties broken by opponent name ascending.
func Aggregate(outcomes []model.ResolvedOutcome, opts Options) ([]model.OpponentStats, model.Totals) {
	totals := model.Totals{MatchesScanned: len(outcomes)}
	perOpponent := make(map[string]*model.OpponentStats)

	record := func(name string) *model.OpponentStats {
		s, ok := perOpponent[name]
		if !ok {
			s = &model.OpponentStats{Opponent: name}
			perOpponent[name] = s
		}
		return s
	}

	for _, out := range outcomes {
		totals.GamesWon += out.GamesWon
		totals.GamesLost += out.GamesLost

		if out.Outcome == model.OutcomeExcluded {
			totals.Excluded++
			if opts.CountExcluded && out.Opponent != "" {
				s := record(out.Opponent)
				s.MatchesPlayed++
				updateLastPlayed(s, out)
			}
			continue
		}

		if out.Outcome == model.OutcomeWin {
			totals.Wins++
		} else {
			totals.Losses++
		}
		if out.Opponent == "" {
			continue
		}
		s := record(out.Opponent)
		s.MatchesPlayed++
		updateLastPlayed(s, out)
		if out.Outcome == model.OutcomeWin {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	totals.MatchesCounted = totals.Wins + totals.Losses

	stats := make([]model.OpponentStats, 0, len(perOpponent))
	for _, s := range perOpponent {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].MatchesPlayed != stats[j].MatchesPlayed {
			return stats[i].MatchesPlayed > stats[j].MatchesPlayed
		}
		return stats[i].Opponent < stats[j].Opponent
	})
	return stats, totals
}

func updateLastPlayed(s *model.OpponentStats, out model.ResolvedOutcome) {
	if out.Timestamp.After(s.LastPlayed) {
		s.LastPlayed = out.Timestamp
	}
}
