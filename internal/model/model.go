package model

import "time"

// Outcome is the resolved result of a match from the local player's perspective.
type Outcome int

const (
	OutcomeExcluded Outcome = 0
	OutcomeWin      Outcome = 1
	OutcomeLoss     Outcome = 2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "excluded"
	}
}

// ---- Raw input produced by the log reader ----

// RawMatchLog is one GameLog file read from disk. Content is decoded text;
// the struct is immutable once returned by the reader.
type RawMatchLog struct {
	Path    string
	Name    string
	Content string
	ModTime time.Time
}

// ---- Parsed match data ----

// GameResult is one game-level result within a match. Winner is set for an
// explicit game win; Loser is set when only the conceding side is known.
type GameResult struct {
	Number int
	Winner string
	Loser  string
	Method string // "win" or "concession"
}

// MatchRecord is the structured form of one GameLog, produced by the parser.
// Players are in seat order as the log lists them (the log writer always
// orders itself first). Winner and Score are optional: the outcome decider
// applies the fallback policy when they are absent.
type MatchRecord struct {
	MatchID   string
	Players   []string
	Games     []GameResult
	Winner    string // declared match winner, empty if the log never declares one
	HasScore  bool
	Score     []int // per-seat game wins, parallel to Players; valid when HasScore
	Timestamp time.Time

	// Annotations extracted alongside the match structure. Aggregation
	// never keys on these.
	Format     string
	Cards      [][]string
	Archetypes []string
	Mulligans  [][]int
}

// Opponent returns the non-local participant for the given local seat.
// For multiplayer logs it returns the first other seat.
func (m *MatchRecord) Opponent(localSeat int) string {
	for i, p := range m.Players {
		if i != localSeat {
			return p
		}
	}
	return ""
}

// ---- Resolved outcome ----

// ResolvedOutcome is the per-match result attributed to the local player.
// Exactly one exists per MatchRecord.
type ResolvedOutcome struct {
	MatchID     string
	LocalPlayer string
	Opponent    string
	Outcome     Outcome
	GamesWon    int
	GamesLost   int
	Timestamp   time.Time
}

// ---- Aggregated statistics ----

// OpponentStats accumulates win/loss counts against a single opponent.
// The opponent name is an exact-string key: differently capitalized names
// are distinct opponents.
type OpponentStats struct {
	Opponent      string
	Wins          int
	Losses        int
	MatchesPlayed int
	LastPlayed    time.Time
}

// WinRate returns the match win percentage against this opponent, counting
// only win/loss matches.
func (s *OpponentStats) WinRate() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided) * 100
}

// Totals holds overall counters for one aggregation pass. MatchesScanned
// counts every parsed match including excluded ones; MatchesCounted is the
// win/loss subset used for the win rate. ParseFailures counts log files
// that could not be parsed at all.
type Totals struct {
	MatchesScanned int
	MatchesCounted int
	ParseFailures  int

	Wins     int
	Losses   int
	Excluded int

	GamesWon  int
	GamesLost int
}

func (t *Totals) MatchWinRate() float64 {
	if t.MatchesCounted == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.MatchesCounted) * 100
}

func (t *Totals) GameWinRate() float64 {
	games := t.GamesWon + t.GamesLost
	if games == 0 {
		return 0
	}
	return float64(t.GamesWon) / float64(games) * 100
}

// Stats is the full result of an aggregation pass, ready for display.
type Stats struct {
	Username      string
	Opponents     []OpponentStats
	Totals        Totals
	LastRefreshed time.Time
}

// MatchSummary is a lightweight per-match record for the archive and the
// list/show commands.
type MatchSummary struct {
	MatchID     string
	Player1     string
	Player2     string
	LocalPlayer string
	Opponent    string
	Winner      string
	Score       string // "X-Y" in seat order
	Outcome     Outcome
	Format      string
	Archetype1  string
	Archetype2  string
	Timestamp   time.Time
}

// OutcomeFromString parses the string form produced by Outcome.String.
// Unknown values map to OutcomeExcluded.
func OutcomeFromString(s string) Outcome {
	switch s {
	case "win":
		return OutcomeWin
	case "loss":
		return OutcomeLoss
	default:
		return OutcomeExcluded
	}
}
