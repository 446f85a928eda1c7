// Package history runs the full aggregation pipeline (read, parse, resolve,
// decide, aggregate) behind a directory-fingerprint cache.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/modostats/go-mtgo-metrics/internal/aggregator"
	"github.com/modostats/go-mtgo-metrics/internal/logging"
	"github.com/modostats/go-mtgo-metrics/internal/logreader"
	"github.com/modostats/go-mtgo-metrics/internal/model"
	"github.com/modostats/go-mtgo-metrics/internal/outcome"
	"github.com/modostats/go-mtgo-metrics/internal/parser"
	"github.com/modostats/go-mtgo-metrics/internal/perspective"
)

// LogSource abstracts the log reader so tests can count content reads.
type LogSource interface {
	Stat(dir string) ([]logreader.FileInfo, error)
	List(dir string) ([]model.RawMatchLog, error)
}

// UsernameFunc returns the authoritative local username, or "" when the
// source (the bridge) is unavailable.
type UsernameFunc func(ctx context.Context) string

// Service memoizes one aggregation pass per log directory. It is not
// internally thread-safe: callers serialize access, one refresh in flight
// at a time.
type Service struct {
	dir      string
	source   LogSource
	username UsernameFunc
	opts     aggregator.Options
	log      logging.Interface

	fingerprint string
	stats       *model.Stats
	summaries   []model.MatchSummary
}

// NewService builds a service over the given directory. username may be nil.
func NewService(dir string, source LogSource, username UsernameFunc, opts aggregator.Options, log logging.Interface) *Service {
	if username == nil {
		username = func(context.Context) string { return "" }
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Service{dir: dir, source: source, username: username, opts: opts, log: log}
}

// Refresh returns the current aggregate statistics. When the directory
// fingerprint matches the cached pass and force is false, the cached stats
// are returned without reading any file content. Otherwise the whole
// directory is recomputed and the cache entry replaced; there is no
// incremental per-file path, full recompute is cheap at this scale.
func (s *Service) Refresh(ctx context.Context, force bool) (*model.Stats, error) {
	infos, err := s.source.Stat(s.dir)
	if err != nil {
		return nil, err
	}
	fp := fingerprint(infos)
	if !force && s.stats != nil && fp == s.fingerprint {
		return s.stats, nil
	}

	logs, err := s.source.List(s.dir)
	if err != nil {
		return nil, err
	}

	records := make([]*model.MatchRecord, 0, len(logs))
	failures := 0
	for _, raw := range logs {
		rec, err := parser.Parse(raw)
		if err != nil {
			failures++
			s.log.Warnf("skipping gamelog: %v", err)
			continue
		}
		records = append(records, rec)
	}

	username := s.username(ctx)
	if username == "" {
		username = perspective.InferUsername(records)
	}

	// Oldest first, so last-played tracking folds correctly.
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.Before(records[j].Timestamp)
		}
		return records[i].MatchID < records[j].MatchID
	})

	outcomes := make([]model.ResolvedOutcome, 0, len(records))
	summaries := make([]model.MatchSummary, 0, len(records))
	for _, rec := range records {
		seat := perspective.Resolve(username, rec)
		res := outcome.Decide(rec, seat)
		outcomes = append(outcomes, res)
		summaries = append(summaries, summarize(rec, seat, res))
	}

	opponents, totals := aggregator.Aggregate(outcomes, s.opts)
	totals.ParseFailures = failures

	s.stats = &model.Stats{
		Username:      username,
		Opponents:     opponents,
		Totals:        totals,
		LastRefreshed: time.Now().UTC(),
	}
	s.fingerprint = fp
	s.summaries = summaries
	return s.stats, nil
}

// Invalidate drops the cached pass; the next Refresh recomputes regardless
// of the fingerprint.
func (s *Service) Invalidate() {
	s.fingerprint = ""
	s.stats = nil
	s.summaries = nil
}

// Matches returns per-match summaries from the last refresh, newest first.
// Returns nil before the first refresh.
func (s *Service) Matches() []model.MatchSummary {
	if s.summaries == nil {
		return nil
	}
	out := make([]model.MatchSummary, len(s.summaries))
	copy(out, s.summaries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func summarize(rec *model.MatchRecord, seat int, res model.ResolvedOutcome) model.MatchSummary {
	sum := model.MatchSummary{
		MatchID:     rec.MatchID,
		Player1:     rec.Players[0],
		LocalPlayer: res.LocalPlayer,
		Opponent:    res.Opponent,
		Winner:      rec.Winner,
		Outcome:     res.Outcome,
		Format:      rec.Format,
		Timestamp:   rec.Timestamp,
	}
	if len(rec.Players) > 1 {
		sum.Player2 = rec.Players[1]
	}
	if len(rec.Archetypes) > 0 {
		sum.Archetype1 = rec.Archetypes[0]
	}
	if len(rec.Archetypes) > 1 {
		sum.Archetype2 = rec.Archetypes[1]
	}
	// Seat-order score string, regardless of which seat is local.
	if seat == 0 {
		sum.Score = fmt.Sprintf("%d-%d", res.GamesWon, res.GamesLost)
	} else {
		sum.Score = fmt.Sprintf("%d-%d", res.GamesLost, res.GamesWon)
	}
	return sum
}

// fingerprint hashes the sorted (name, mtime, size) tuples of a directory.
// Content changes show up through mtime/size; file adds and removes change
// the tuple set itself.
func fingerprint(infos []logreader.FileInfo) string {
	h := sha256.New()
	for _, info := range infos {
		fmt.Fprintf(h, "%s|%d|%d\n", info.Name, info.ModTime.UnixNano(), info.Size)
	}
	return hex.EncodeToString(h.Sum(nil))
}
