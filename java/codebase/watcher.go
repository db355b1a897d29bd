package codebase

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls the codebase root and reanalyzes files whose
// modification time changed since the last poll.
type FileWatcher struct {
	codebase     *Codebase
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// Ignore, when set, skips paths owned by someone else, such as
	// documents open in an editor.
	Ignore func(path string) bool
	// OnUpdate and OnRemove are called after the codebase has changed.
	OnUpdate func(f *FileInfo)
	OnRemove func(path string)
}

func NewFileWatcher(c *Codebase, pollInterval time.Duration) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

// Run polls until ctx is done. The first poll records the current state
// without reporting it.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.poll(false)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(true)
		}
	}
}

func (w *FileWatcher) poll(report bool) {
	paths, err := w.codebase.Discover(w.codebase.RootDir())
	if err != nil {
		log.Warningf("watching %s: %s", w.codebase.RootDir(), err)
		return
	}

	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		if !report || (w.Ignore != nil && w.Ignore(path)) {
			continue
		}
		f, err := w.codebase.ScanFile(path)
		if err != nil {
			log.Warningf("rescanning %s: %s", path, err)
			continue
		}
		if w.OnUpdate != nil {
			w.OnUpdate(f)
		}
	}

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		if w.Ignore != nil && w.Ignore(path) {
			continue
		}
		w.codebase.RemoveFile(path)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}
	}
}
