// Package watch re-runs aggregation whenever the GameLog directory changes.
package watch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/modostats/go-mtgo-metrics/internal/history"
	"github.com/modostats/go-mtgo-metrics/internal/logging"
	"github.com/modostats/go-mtgo-metrics/internal/logreader"
	"github.com/modostats/go-mtgo-metrics/internal/model"
)

// Watcher observes a log directory and refreshes the history service after
// changes settle. Refreshes run on the watcher's own goroutine, one at a
// time, so the service's single-caller contract holds.
type Watcher struct {
	dir      string
	svc      *history.Service
	onStats  func(*model.Stats)
	log      logging.Interface
	debounce time.Duration

	fw *fsnotify.Watcher
}

// New builds a watcher over dir. onStats is called with fresh statistics
// after every settled change (and once at startup).
func New(dir string, svc *history.Service, onStats func(*model.Stats), log logging.Interface) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Watcher{
		dir:      dir,
		svc:      svc,
		onStats:  onStats,
		log:      log,
		debounce: 500 * time.Millisecond,
		fw:       fw,
	}, nil
}

// Run watches until ctx is cancelled. It performs an initial refresh, then
// debounces bursts of file events (the client rewrites logs in chunks)
// before recomputing.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fw.Close()

	w.refresh(ctx)

	var timer *time.Timer
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.log.Debugf("gamelog change: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			settle = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Errorf("watch error: %v", err)

		case <-settle:
			settle = nil
			timer = nil
			w.refresh(ctx)
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	stats, err := w.svc.Refresh(ctx, false)
	if err != nil {
		w.log.Errorf("refresh after change: %v", err)
		return
	}
	if w.onStats != nil {
		w.onStats(stats)
	}
}

// relevant filters events down to GameLog files being added, rewritten,
// removed, or renamed. Chmods are noise.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return logreader.IsGameLog(baseName(event.Name))
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
