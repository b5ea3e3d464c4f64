package dataset

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a dataset whenever its file changes on disk.
type Watcher struct {
	Source   Source
	Debounce time.Duration

	// OnLoad receives every reload attempt, successful or not.
	OnLoad func(Dataset, error)
}

// Run blocks until ctx is cancelled. The parent directory is watched rather
// than the file so editors that replace files atomically keep triggering
// reloads.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnLoad == nil {
		return fmt.Errorf("dataset: watcher has no OnLoad callback")
	}
	abs, err := filepath.Abs(w.Source.Path)
	if err != nil {
		return fmt.Errorf("dataset: resolving %s: %w", w.Source.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dataset: creating watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("dataset: watching %s: %w", filepath.Dir(abs), err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, abs) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("dataset watch: %v", err)
		case <-timer.C:
			log.Printf("dataset watch: reloading %s", abs)
			w.OnLoad(Load(ctx, w.Source))
		}
	}
}

func relevant(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
