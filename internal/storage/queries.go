package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// MatchExists returns true if a match with the given ID is already archived.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch archives one match summary. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(sum model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(
			match_id, player1, player2, local_player, opponent,
			winner, score, outcome, format, archetype1, archetype2, played_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		sum.MatchID, sum.Player1, sum.Player2, sum.LocalPlayer, sum.Opponent,
		sum.Winner, sum.Score, sum.Outcome.String(), sum.Format,
		sum.Archetype1, sum.Archetype2, sum.Timestamp.UTC().Format(time.RFC3339),
	)
	return err
}

// InsertMatches bulk-archives match summaries in a transaction.
func (db *DB) InsertMatches(sums []model.MatchSummary) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(
			match_id, player1, player2, local_player, opponent,
			winner, score, outcome, format, archetype1, archetype2, played_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sum := range sums {
		_, err = stmt.Exec(
			sum.MatchID, sum.Player1, sum.Player2, sum.LocalPlayer, sum.Opponent,
			sum.Winner, sum.Score, sum.Outcome.String(), sum.Format,
			sum.Archetype1, sum.Archetype2, sum.Timestamp.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", sum.MatchID, err)
		}
	}
	return tx.Commit()
}

// ListMatches returns all archived matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, player1, player2, local_player, opponent,
		       winner, score, outcome, format, archetype1, archetype2, played_at
		FROM matches ORDER BY played_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		sum, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose ID starts with the given prefix.
// Returns nil without error when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	row := db.conn.QueryRow(`
		SELECT match_id, player1, player2, local_player, opponent,
		       winner, score, outcome, format, archetype1, archetype2, played_at
		FROM matches WHERE match_id LIKE ? || '%' ORDER BY match_id LIMIT 1`, prefix)
	sum, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// OpponentRollup aggregates the archive into per-opponent stats with SQL,
// ordered like the live aggregator: matches played descending, opponent
// name ascending. Excluded matches count toward matches played here; the
// archive keeps everything it was given.
func (db *DB) OpponentRollup() ([]model.OpponentStats, error) {
	rows, err := db.conn.Query(`
		SELECT opponent,
		       SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END),
		       COUNT(1),
		       MAX(played_at)
		FROM matches
		WHERE opponent != ''
		GROUP BY opponent
		ORDER BY COUNT(1) DESC, opponent ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OpponentStats
	for rows.Next() {
		var s model.OpponentStats
		var lastPlayed string
		if err := rows.Scan(&s.Opponent, &s.Wins, &s.Losses, &s.MatchesPlayed, &lastPlayed); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, lastPlayed); err == nil {
			s.LastPlayed = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DropMatches deletes every archived match.
func (db *DB) DropMatches() error {
	_, err := db.conn.Exec("DELETE FROM matches")
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (model.MatchSummary, error) {
	var sum model.MatchSummary
	var outcomeStr, playedAt string
	err := row.Scan(&sum.MatchID, &sum.Player1, &sum.Player2, &sum.LocalPlayer, &sum.Opponent,
		&sum.Winner, &sum.Score, &outcomeStr, &sum.Format, &sum.Archetype1, &sum.Archetype2, &playedAt)
	if err != nil {
		return sum, err
	}
	sum.Outcome = model.OutcomeFromString(outcomeStr)
	if t, err := time.Parse(time.RFC3339, playedAt); err == nil {
		sum.Timestamp = t
	}
	return sum, nil
}
