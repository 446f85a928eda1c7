package storage

import (
	"testing"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func summary(id, opponent string, o model.Outcome, played time.Time) model.MatchSummary {
	return model.MatchSummary{
		MatchID:     id,
		Player1:     "Alice",
		Player2:     opponent,
		LocalPlayer: "Alice",
		Opponent:    opponent,
		Winner:      "Alice",
		Score:       "2-1",
		Outcome:     o,
		Format:      "Modern",
		Archetype1:  "Burn",
		Archetype2:  "Tron",
		Timestamp:   played,
	}
}

func TestMatchInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	sum := summary("7160820256", "Bob", model.OutcomeWin, time.Date(2024, 12, 4, 14, 23, 0, 0, time.UTC))
	if err := db.InsertMatch(sum); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	exists, err := db.MatchExists("7160820256")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}
	if exists, _ := db.MatchExists("nope"); exists {
		t.Error("expected unknown match to not exist")
	}
}

func TestInsertMatchIdempotent(t *testing.T) {
	db := openMemDB(t)

	sum := summary("m1", "Bob", model.OutcomeWin, time.Now().UTC())
	if err := db.InsertMatch(sum); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	sum.Outcome = model.OutcomeLoss
	if err := db.InsertMatch(sum); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1 after re-insert", len(matches))
	}
	if matches[0].Outcome != model.OutcomeLoss {
		t.Errorf("Outcome = %v, want the replaced value", matches[0].Outcome)
	}
}

func TestListMatchesNewestFirst(t *testing.T) {
	db := openMemDB(t)

	old := summary("m-old", "Bob", model.OutcomeWin, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	recent := summary("m-new", "Cara", model.OutcomeLoss, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	if err := db.InsertMatches([]model.MatchSummary{old, recent}); err != nil {
		t.Fatalf("InsertMatches: %v", err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 || matches[0].MatchID != "m-new" {
		t.Errorf("matches = %v, want m-new first", matches)
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)

	sum := summary("7160820256", "Bob", model.OutcomeWin, time.Now().UTC())
	if err := db.InsertMatch(sum); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	got, err := db.GetMatchByPrefix("71608")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if got == nil || got.MatchID != "7160820256" {
		t.Fatalf("got = %+v, want the archived match", got)
	}
	if got.Opponent != "Bob" || got.Outcome != model.OutcomeWin {
		t.Errorf("round trip lost fields: %+v", got)
	}

	missing, err := db.GetMatchByPrefix("999")
	if err != nil {
		t.Fatalf("GetMatchByPrefix missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing = %+v, want nil", missing)
	}
}

func TestOpponentRollup(t *testing.T) {
	db := openMemDB(t)

	sums := []model.MatchSummary{
		summary("m1", "Bob", model.OutcomeWin, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
		summary("m2", "Bob", model.OutcomeLoss, time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)),
		summary("m3", "Cara", model.OutcomeWin, time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)),
		summary("m4", "Bob", model.OutcomeExcluded, time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC)),
	}
	if err := db.InsertMatches(sums); err != nil {
		t.Fatalf("InsertMatches: %v", err)
	}

	opponents, err := db.OpponentRollup()
	if err != nil {
		t.Fatalf("OpponentRollup: %v", err)
	}
	if len(opponents) != 2 {
		t.Fatalf("opponents = %d, want 2", len(opponents))
	}
	bob := opponents[0]
	if bob.Opponent != "Bob" || bob.Wins != 1 || bob.Losses != 1 || bob.MatchesPlayed != 3 {
		t.Errorf("Bob rollup = %+v", bob)
	}
	if !bob.LastPlayed.Equal(time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Bob last played = %v", bob.LastPlayed)
	}
}

func TestDropMatches(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatch(summary("m1", "Bob", model.OutcomeWin, time.Now().UTC())); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}
	if err := db.DropMatches(); err != nil {
		t.Fatalf("DropMatches: %v", err)
	}
	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %d, want 0 after drop", len(matches))
	}
}
