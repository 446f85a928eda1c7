package outcome

import (
	"testing"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

func record(winner string, score []int) *model.MatchRecord {
	return &model.MatchRecord{
		MatchID:   "m1",
		Players:   []string{"Alice", "Bob"},
		Winner:    winner,
		HasScore:  score != nil,
		Score:     score,
		Timestamp: time.Date(2024, 12, 4, 14, 23, 0, 0, time.UTC),
	}
}

func TestDeclaredWinnerWins(t *testing.T) {
	res := Decide(record("Alice", []int{2, 1}), 0)
	if res.Outcome != model.OutcomeWin {
		t.Errorf("Outcome = %v, want win", res.Outcome)
	}
	if res.LocalPlayer != "Alice" || res.Opponent != "Bob" {
		t.Errorf("perspective = %s vs %s, want Alice vs Bob", res.LocalPlayer, res.Opponent)
	}
	if res.GamesWon != 2 || res.GamesLost != 1 {
		t.Errorf("games = %d-%d, want 2-1", res.GamesWon, res.GamesLost)
	}
}

func TestDeclaredWinnerBeatsContradictoryScore(t *testing.T) {
	// The log declares Bob the winner while the score favors Alice. The
	// declaration is authoritative.
	res := Decide(record("Bob", []int{2, 0}), 0)
	if res.Outcome != model.OutcomeLoss {
		t.Errorf("Outcome = %v, want loss despite the 2-0 score", res.Outcome)
	}
	if res.GamesWon != 2 || res.GamesLost != 0 {
		t.Errorf("games = %d-%d, want the declared 2-0 kept as-is", res.GamesWon, res.GamesLost)
	}
}

func TestDeclaredWinnerCaseInsensitive(t *testing.T) {
	res := Decide(record("ALICE", []int{2, 0}), 0)
	if res.Outcome != model.OutcomeWin {
		t.Errorf("Outcome = %v, want win for case-insensitive declared winner", res.Outcome)
	}
}

func TestUnknownDeclaredWinnerFallsBackToScore(t *testing.T) {
	res := Decide(record("Mallory", []int{0, 2}), 0)
	if res.Outcome != model.OutcomeLoss {
		t.Errorf("Outcome = %v, want loss from the score majority", res.Outcome)
	}
}

func TestScoreMajority(t *testing.T) {
	if res := Decide(record("", []int{2, 1}), 0); res.Outcome != model.OutcomeWin {
		t.Errorf("2-1 from seat 0 = %v, want win", res.Outcome)
	}
	if res := Decide(record("", []int{2, 1}), 1); res.Outcome != model.OutcomeLoss {
		t.Errorf("2-1 from seat 1 = %v, want loss", res.Outcome)
	}
}

func TestTiedScoreExcluded(t *testing.T) {
	res := Decide(record("", []int{1, 1}), 0)
	if res.Outcome != model.OutcomeExcluded {
		t.Errorf("Outcome = %v, want excluded for a tie", res.Outcome)
	}
}

func TestNoScoreNoGamesExcluded(t *testing.T) {
	res := Decide(record("", nil), 0)
	if res.Outcome != model.OutcomeExcluded {
		t.Errorf("Outcome = %v, want excluded with nothing to go on", res.Outcome)
	}
	if res.GamesWon != 0 || res.GamesLost != 0 {
		t.Errorf("games = %d-%d, want 0-0", res.GamesWon, res.GamesLost)
	}
}

func TestGamesCountedWhenNoDeclaredScore(t *testing.T) {
	rec := record("", nil)
	rec.Games = []model.GameResult{
		{Number: 1, Winner: "Alice", Method: "win"},
		{Number: 2, Loser: "Alice", Method: "concession"},
		{Number: 3, Winner: "Alice", Method: "win"},
	}
	res := Decide(rec, 0)
	if res.Outcome != model.OutcomeWin {
		t.Errorf("Outcome = %v, want win from counted games", res.Outcome)
	}
	if res.GamesWon != 2 || res.GamesLost != 1 {
		t.Errorf("games = %d-%d, want 2-1 (concession credits Bob)", res.GamesWon, res.GamesLost)
	}
}
