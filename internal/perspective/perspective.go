// Package perspective determines which participant of a match is the local
// player.
package perspective

import (
	"strings"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// Resolve returns the seat index of the local player. An authoritative
// username (from the bridge) wins on a case-insensitive participant match;
// otherwise seat 0 is assumed, since the log writer lists itself first.
// Records with zero participants never reach here (the parser rejects them).
func Resolve(username string, rec *model.MatchRecord) int {
	if username != "" {
		for i, p := range rec.Players {
			if strings.EqualFold(p, username) {
				return i
			}
		}
	}
	return 0
}

// InferUsername guesses the local username from a set of records when no
// authoritative source is available: the name most often listed first.
// Returns "" for an empty input.
func InferUsername(records []*model.MatchRecord) string {
	counts := make(map[string]int)
	for _, rec := range records {
		if len(rec.Players) > 0 {
			counts[rec.Players[0]]++
		}
	}
	best, bestCount := "", 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < best) {
			best, bestCount = name, count
		}
	}
	return best
}
