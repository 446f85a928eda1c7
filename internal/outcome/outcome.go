// Package outcome decides win/loss/excluded for a match from the local
// player's perspective.
package outcome

import (
	"strings"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// Decide resolves a match outcome for the local seat. Priority:
//
//  1. A declared winner matching a participant is authoritative, even
//     against a contradictory score. This mirrors the log writer's own
//     declaration and is deliberately not auto-corrected.
//  2. A strict per-game score majority.
//  3. Otherwise the match is excluded: tied or unknown results (disconnects,
//     early concedes) never count as wins or losses.
func Decide(rec *model.MatchRecord, localSeat int) model.ResolvedOutcome {
	opponent := rec.Opponent(localSeat)
	scores := seatScores(rec)

	gamesWon, gamesLost := 0, 0
	if localSeat < len(scores) {
		gamesWon = scores[localSeat]
	}
	for i, s := range scores {
		if i != localSeat {
			gamesLost += s
		}
	}

	out := model.ResolvedOutcome{
		MatchID:     rec.MatchID,
		LocalPlayer: rec.Players[localSeat],
		Opponent:    opponent,
		GamesWon:    gamesWon,
		GamesLost:   gamesLost,
		Timestamp:   rec.Timestamp,
	}

	if rec.Winner != "" {
		if seat, ok := seatOf(rec, rec.Winner); ok {
			if seat == localSeat {
				out.Outcome = model.OutcomeWin
			} else {
				out.Outcome = model.OutcomeLoss
			}
			return out
		}
	}

	switch {
	case gamesWon > gamesLost:
		out.Outcome = model.OutcomeWin
	case gamesLost > gamesWon:
		out.Outcome = model.OutcomeLoss
	default:
		out.Outcome = model.OutcomeExcluded
	}
	return out
}

// seatScores returns per-seat game wins: the declared score when present,
// otherwise counted from per-game results.
func seatScores(rec *model.MatchRecord) []int {
	if rec.HasScore && len(rec.Score) == len(rec.Players) {
		return rec.Score
	}
	scores := make([]int, len(rec.Players))
	for _, g := range rec.Games {
		if g.Winner != "" {
			if seat, ok := seatOf(rec, g.Winner); ok {
				scores[seat]++
			}
			continue
		}
		// Concession: every other seat scores the game. With two seats
		// this credits the opponent of the conceding player.
		if g.Loser != "" {
			if loserSeat, ok := seatOf(rec, g.Loser); ok {
				for i := range scores {
					if i != loserSeat {
						scores[i]++
					}
				}
			}
		}
	}
	return scores
}

func seatOf(rec *model.MatchRecord, name string) (int, bool) {
	for i, p := range rec.Players {
		if strings.EqualFold(p, name) {
			return i, true
		}
	}
	return 0, false
}
