package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

const sampleLog = `Wed Dec 04 14:23:10 PST 2024
@PAlice joined the game.
@PBob+the+Builder joined the game.
@PAlice chooses to play first.
@PBob+the+Builder mulligans to six cards.
@PAlice plays @[Island@:12,101:@].
@PAlice casts @[Murktide Regent@:13,102:@].
@PBob+the+Builder plays @[Mountain@:14,103:@].
@PAlice wins the game.
@PBob+the+Builder chooses to play first.
@PBob+the+Builder casts @[Lightning Bolt@:15,104:@].
@PBob+the+Builder wins the game.
@PAlice chooses to not play first.
@PAlice casts @[Dragon's Rage Channeler@:16,105:@].
@PBob+the+Builder has conceded from the game.
@PAlice wins the match 2-1.
`

func sampleRaw(content string) model.RawMatchLog {
	return model.RawMatchLog{
		Name:    "Match_GameLog_7160820256.dat",
		Content: content,
		ModTime: time.Date(2024, 12, 4, 22, 0, 0, 0, time.UTC),
	}
}

func TestParseSample(t *testing.T) {
	rec, err := Parse(sampleRaw(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.MatchID != "7160820256" {
		t.Errorf("MatchID = %q, want 7160820256", rec.MatchID)
	}
	want := []string{"Alice", "Bob the Builder"}
	if len(rec.Players) != 2 || rec.Players[0] != want[0] || rec.Players[1] != want[1] {
		t.Errorf("Players = %v, want %v", rec.Players, want)
	}

	wantTS := time.Date(2024, time.December, 4, 14, 23, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(wantTS) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, wantTS)
	}

	if rec.Winner != "Alice" {
		t.Errorf("Winner = %q, want Alice", rec.Winner)
	}
	if !rec.HasScore || len(rec.Score) != 2 || rec.Score[0] != 2 || rec.Score[1] != 1 {
		t.Errorf("Score = %v (has=%v), want [2 1]", rec.Score, rec.HasScore)
	}

	if len(rec.Games) != 3 {
		t.Fatalf("Games = %d, want 3", len(rec.Games))
	}
	if rec.Games[0].Winner != "Alice" || rec.Games[0].Number != 1 {
		t.Errorf("game 1 = %+v, want Alice winning game 1", rec.Games[0])
	}
	if rec.Games[1].Winner != "Bob the Builder" {
		t.Errorf("game 2 winner = %q, want Bob the Builder", rec.Games[1].Winner)
	}
	if rec.Games[2].Loser != "Bob the Builder" || rec.Games[2].Method != "concession" {
		t.Errorf("game 3 = %+v, want Bob the Builder conceding", rec.Games[2])
	}
}

func TestParseAnnotations(t *testing.T) {
	rec, err := Parse(sampleRaw(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantAlice := []string{"Dragon's Rage Channeler", "Island", "Murktide Regent"}
	if len(rec.Cards[0]) != len(wantAlice) {
		t.Fatalf("Alice cards = %v, want %v", rec.Cards[0], wantAlice)
	}
	for i, c := range wantAlice {
		if rec.Cards[0][i] != c {
			t.Errorf("Alice card %d = %q, want %q", i, rec.Cards[0][i], c)
		}
	}

	// Lightning Bolt in the pool marks the match as Modern.
	if rec.Format != "Modern" {
		t.Errorf("Format = %q, want Modern", rec.Format)
	}

	if len(rec.Mulligans[1]) != 1 || rec.Mulligans[1][0] != 1 {
		t.Errorf("Bob mulligans = %v, want [1]", rec.Mulligans[1])
	}
	if len(rec.Mulligans[0]) != 0 {
		t.Errorf("Alice mulligans = %v, want none", rec.Mulligans[0])
	}
}

func TestParseNoParticipants(t *testing.T) {
	_, err := Parse(sampleRaw("Wed Dec 04 14:23:10 PST 2024\nnothing joined here\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestParseLeadsScoreDoesNotDeclareWinner(t *testing.T) {
	content := "Wed Dec 04 14:23:10 PST 2024\n" +
		"@PAlice joined the game.\n@PBob joined the game.\n" +
		"@PAlice leads the match 1-0.\n"
	rec, err := Parse(sampleRaw(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Winner != "" {
		t.Errorf("Winner = %q, want empty for a leads declaration", rec.Winner)
	}
	if !rec.HasScore || rec.Score[0] != 1 || rec.Score[1] != 0 {
		t.Errorf("Score = %v (has=%v), want [1 0]", rec.Score, rec.HasScore)
	}
}

func TestParseBinaryHeaderFallsBackToModTime(t *testing.T) {
	raw := sampleRaw("$$\xfe\xff binary header\n@PAlice joined the game.\n@PBob joined the game.\n")
	rec, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !rec.Timestamp.Equal(raw.ModTime) {
		t.Errorf("Timestamp = %v, want mtime fallback %v", rec.Timestamp, raw.ModTime)
	}
}

func TestParseDuplicateJoinLines(t *testing.T) {
	content := "Wed Dec 04 14:23:10 PST 2024\n" +
		"@PAlice joined the game.\n@PBob joined the game.\n@PAlice joined the game.\n"
	rec, err := Parse(sampleRaw(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rec.Players) != 2 {
		t.Errorf("Players = %v, want deduplicated pair", rec.Players)
	}
}

func TestNameConversion(t *testing.T) {
	if got := DisplayName("Bob+the+Builder*Jr"); got != "Bob the Builder.Jr" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := StorageName("Bob the Builder.Jr"); got != "Bob+the+Builder*Jr" {
		t.Errorf("StorageName = %q", got)
	}
}
