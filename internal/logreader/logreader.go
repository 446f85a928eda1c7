// Package logreader locates and reads MTGO per-match GameLog files.
package logreader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/modostats/go-mtgo-metrics/internal/logging"
	"github.com/modostats/go-mtgo-metrics/internal/model"
)

const (
	filePrefix = "Match_GameLog_"
	fileSuffix = ".dat"
)

// NotFoundError reports a missing log directory. It aborts the whole scan,
// unlike per-file read failures which are skipped.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gamelog directory not found: %s", e.Dir)
}

// FileInfo is the metadata fingerprint input for one log file. No file
// content is read to produce it.
type FileInfo struct {
	Name    string
	ModTime time.Time
	Size    int64
}

// Reader reads GameLog files from a directory.
type Reader struct {
	log logging.Interface
}

func New(log logging.Interface) *Reader {
	if log == nil {
		log = logging.Nop()
	}
	return &Reader{log: log}
}

// IsGameLog reports whether name follows the GameLog naming convention.
func IsGameLog(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}

// MatchID derives the match identifier from a GameLog file name.
func MatchID(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
}

// Stat returns metadata for every GameLog file in dir, sorted by name.
// The directory itself must exist; an empty directory is not an error.
func (r *Reader) Stat(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Dir: dir}
		}
		return nil, fmt.Errorf("read gamelog dir: %w", err)
	}

	var out []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsGameLog(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			r.log.Warnf("stat %s: %v", entry.Name(), err)
			continue
		}
		out = append(out, FileInfo{Name: info.Name(), ModTime: info.ModTime(), Size: info.Size()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// List reads every GameLog file in dir. Files that cannot be read or
// decoded are skipped with a warning; only a missing directory is fatal.
func (r *Reader) List(dir string) ([]model.RawMatchLog, error) {
	infos, err := r.Stat(dir)
	if err != nil {
		return nil, err
	}

	logs := make([]model.RawMatchLog, 0, len(infos))
	for _, info := range infos {
		path := filepath.Join(dir, info.Name)
		raw, err := readLatin1(path)
		if err != nil {
			r.log.Warnf("skipping unreadable gamelog %s: %v", info.Name, err)
			continue
		}
		logs = append(logs, model.RawMatchLog{
			Path:    path,
			Name:    info.Name,
			Content: raw,
			ModTime: info.ModTime,
		})
	}
	return logs, nil
}

// readLatin1 reads a file and decodes it as Latin-1, the encoding the MTGO
// client writes GameLogs in.
func readLatin1(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(decoded), nil
}

// DirLocator is the external lookup for the GameLog directory, satisfied by
// the bridge client. It may be nil when the bridge is not configured.
type DirLocator interface {
	LogDir(ctx context.Context) (string, error)
}

// Locate finds the GameLog directory: the bridge answer wins when
// available, otherwise conventional install locations are searched.
// Returns "" when nothing is found.
func (r *Reader) Locate(ctx context.Context, locator DirLocator) string {
	if locator != nil {
		dir, err := locator.LogDir(ctx)
		if err == nil && dir != "" {
			r.log.Debugf("located gamelogs via bridge: %s", dir)
			return dir
		}
		if err != nil {
			r.log.Debugf("bridge gamelog lookup failed: %v", err)
		}
	}
	if dir := r.locateFallback(); dir != "" {
		r.log.Debugf("located gamelogs via filesystem search: %s", dir)
		return dir
	}
	r.log.Warnf("could not locate MTGO gamelog directory")
	return ""
}

// locateFallback searches common MTGO installation paths.
func (r *Reader) locateFallback() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	// ClickOnce deployments nest GameLogs at an unpredictable depth.
	clickOnce := filepath.Join(home, "AppData", "Local", "Apps", "2.0")
	if _, err := os.Stat(clickOnce); err == nil {
		var found string
		filepath.WalkDir(clickOnce, func(path string, d fs.DirEntry, err error) error {
			if err != nil || found != "" {
				return fs.SkipAll
			}
			if d.IsDir() && d.Name() == "GameLogs" && hasGameLogs(path) {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found
		}
	}

	fixed := []string{
		filepath.Join(`C:\`, "Program Files (x86)", "Steam", "steamapps", "common", "Magic The Gathering Online", "MTGO", "GameLogs"),
		filepath.Join(`C:\`, "Program Files (x86)", "Wizards of the Coast", "Magic Online", "GameLogs"),
	}
	for _, dir := range fixed {
		if hasGameLogs(dir) {
			return dir
		}
	}
	return ""
}

func hasGameLogs(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && IsGameLog(entry.Name()) {
			return true
		}
	}
	return false
}
