// Package parser turns raw MTGO GameLog text into structured match records.
// Parsing is pure: identical input always yields an identical record.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/logreader"
	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// ParseError reports a GameLog whose structure is unrecognizable. Partial
// content (missing winner, missing score) is not an error.
type ParseError struct {
	Name   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse gamelog %s: %s", e.Name, e.Reason)
}

var (
	gameWinRe   = regexp.MustCompile(`@P([^@]+)\swins the game`)
	concedeRe   = regexp.MustCompile(`@P([^@]+)\shas conceded`)
	matchWinRe  = regexp.MustCompile(`@P([^@]+)\swins the match (\d)-(\d)`)
	matchLeadRe = regexp.MustCompile(`@P([^@]+)\sleads the match (\d)-(\d)`)
	cardRe      = regexp.MustCompile(`@\[([^@]+)@:\d+,\d+:@\]`)
	mulliganRe  = regexp.MustCompile(`@P([^@]+)\smulligans to (\w+) cards?`)
)

// Parse builds a MatchRecord from one raw GameLog. It fails only when no
// participant section can be found; all other fields degrade to unset.
func Parse(raw model.RawMatchLog) (*model.MatchRecord, error) {
	rawPlayers := extractPlayers(raw.Content)
	if len(rawPlayers) < 2 {
		return nil, &ParseError{Name: raw.Name, Reason: "no participant section"}
	}

	players := make([]string, len(rawPlayers))
	for i, p := range rawPlayers {
		players[i] = DisplayName(p)
	}

	rec := &model.MatchRecord{
		MatchID:   logreader.MatchID(raw.Name),
		Players:   players,
		Games:     parseGameResults(raw.Content),
		Timestamp: parseTimestamp(firstLine(raw.Content), raw.ModTime),
	}

	if winner, winScore, loseScore, declared, ok := parseMatchScore(raw.Content); ok {
		rec.HasScore = true
		rec.Score = seatScores(players, DisplayName(winner), winScore, loseScore)
		if declared {
			rec.Winner = DisplayName(winner)
		}
	}

	annotate(rec, raw.Content, rawPlayers)
	return rec, nil
}

// extractPlayers returns raw (storage-format) participant names in the
// order the log lists them joining the game.
func extractPlayers(content string) []string {
	var players []string
	seen := make(map[string]bool)
	for _, section := range strings.Split(content, "@P") {
		name, _, found := strings.Cut(section, " joined the game")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		players = append(players, name)
	}
	return players
}

// DisplayName converts a storage-format player name to display format.
// The log writer encodes spaces as '+' and periods as '*'.
func DisplayName(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "+", " "), "*", ".")
}

// StorageName is the inverse of DisplayName.
func StorageName(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, " ", "+"), ".", "*")
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	return line
}

var monthNum = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// parseTimestamp parses the header timestamp ("Wed Dec 04 14:23:10 PST 2024").
// Binary headers and malformed lines fall back to the file's mtime.
func parseTimestamp(header string, fallback time.Time) time.Time {
	if strings.ContainsRune(header, '$') {
		return fallback
	}
	probe := header
	if len(probe) > 50 {
		probe = probe[:50]
	}
	for _, r := range probe {
		if r > 127 {
			return fallback
		}
	}

	parts := strings.Fields(header)
	if len(parts) < 5 {
		return fallback
	}
	month, ok := monthNum[parts[1]]
	if !ok {
		return fallback
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return fallback
	}
	clock := strings.Split(parts[3], ":")
	if len(clock) < 2 {
		return fallback
	}
	hour, err1 := strconv.Atoi(clock[0])
	minute, err2 := strconv.Atoi(clock[1])
	if err1 != nil || err2 != nil {
		return fallback
	}
	yearStr := parts[4]
	if len(parts) > 5 {
		yearStr = parts[5]
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return fallback
	}
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// parseGameResults walks the log recording one result per game. A new game
// starts at the play/draw choice line; only the first win or concession per
// game counts.
func parseGameResults(content string) []model.GameResult {
	var games []model.GameResult
	gameNum := 0
	ended := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "chooses to play first") || strings.Contains(line, "chooses to not play first") {
			gameNum++
			ended = false
		}
		if ended {
			continue
		}
		if strings.Contains(line, "wins the game") {
			if m := gameWinRe.FindStringSubmatch(line); m != nil {
				games = append(games, model.GameResult{
					Number: gameNum,
					Winner: DisplayName(strings.TrimSpace(m[1])),
					Method: "win",
				})
				ended = true
			}
		} else if strings.Contains(line, "has conceded from the game") {
			if m := concedeRe.FindStringSubmatch(line); m != nil {
				games = append(games, model.GameResult{
					Number: gameNum,
					Loser:  DisplayName(strings.TrimSpace(m[1])),
					Method: "concession",
				})
				ended = true
			}
		}
	}
	return games
}

// parseMatchScore scans for the final score declaration, newest line first.
// "wins the match X-Y" declares a winner; "leads the match X-Y" only pins
// the score. The returned name belongs the X side of the score.
func parseMatchScore(content string) (name string, winScore, loseScore int, declared, ok bool) {
	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if m := matchWinRe.FindStringSubmatch(lines[i]); m != nil {
			winScore, _ = strconv.Atoi(m[2])
			loseScore, _ = strconv.Atoi(m[3])
			return strings.TrimSpace(m[1]), winScore, loseScore, true, true
		}
		if m := matchLeadRe.FindStringSubmatch(lines[i]); m != nil {
			winScore, _ = strconv.Atoi(m[2])
			loseScore, _ = strconv.Atoi(m[3])
			return strings.TrimSpace(m[1]), winScore, loseScore, false, true
		}
	}
	return "", 0, 0, false, false
}

// seatScores maps a (name, X, Y) score declaration onto per-seat game wins.
func seatScores(players []string, name string, winScore, loseScore int) []int {
	scores := make([]int, len(players))
	if len(players) < 2 {
		return scores
	}
	if strings.EqualFold(players[0], name) {
		scores[0], scores[1] = winScore, loseScore
	} else {
		scores[0], scores[1] = loseScore, winScore
	}
	return scores
}

// annotate fills the non-structural extras: cards seen, archetype and
// format guesses, mulligan counts.
func annotate(rec *model.MatchRecord, content string, rawPlayers []string) {
	rec.Cards = make([][]string, len(rawPlayers))
	rec.Archetypes = make([]string, len(rawPlayers))
	rec.Mulligans = make([][]int, len(rawPlayers))

	mulligans := parseMulligans(content)
	var allCards []string
	for i, rp := range rawPlayers {
		cards := extractCards(content, rp)
		rec.Cards[i] = cards
		rec.Archetypes[i] = DetectArchetype(cards)
		rec.Mulligans[i] = mulligans[rp]
		allCards = append(allCards, cards...)
	}
	rec.Format = DetectFormat(allCards)
}

// extractCards collects the unique cards a player acted on, sorted.
func extractCards(content, rawName string) []string {
	displayName := DisplayName(rawName)
	seen := make(map[string]bool)
	var cards []string
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "@P"+rawName) && !strings.Contains(line, "@P"+displayName) {
			continue
		}
		for _, m := range cardRe.FindAllStringSubmatch(line, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				cards = append(cards, m[1])
			}
		}
	}
	sort.Strings(cards)
	return cards
}

var mulliganWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3,
	"four": 4, "five": 5, "six": 6, "seven": 7,
}

// parseMulligans returns per-player mulligan counts per game, keyed by raw
// player name. A player mulligans from 7; "mulligans to five" means two.
func parseMulligans(content string) map[string][]int {
	perGame := make(map[string]map[int]int)
	gameNum := 0

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "chooses to play first") || strings.Contains(line, "chooses to not play first") {
			gameNum++
		}
		m := mulliganRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		player := strings.TrimSpace(m[1])
		kept, ok := mulliganWords[strings.ToLower(m[2])]
		if !ok {
			kept = 7
		}
		count := 7 - kept
		if perGame[player] == nil {
			perGame[player] = make(map[int]int)
		}
		if count > perGame[player][gameNum] {
			perGame[player][gameNum] = count
		}
	}

	out := make(map[string][]int, len(perGame))
	for player, games := range perGame {
		maxGame := 0
		for g := range games {
			if g > maxGame {
				maxGame = g
			}
		}
		counts := make([]int, maxGame)
		for g, c := range games {
			if g >= 1 {
				counts[g-1] = c
			}
		}
		out[player] = counts
	}
	return out
}
