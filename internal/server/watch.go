package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSet tracks what the watcher reacts to. Files are watched through
// their parent directory, since editors often replace a file by renaming.
type watchSet struct {
	files map[string]bool // absolute file paths
	dirs  map[string]bool // absolute directories watched in full
}

func (w *watchSet) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if w.files[abs] {
		return true
	}
	for dir := range w.dirs {
		if abs == dir || isWithin(abs, dir) {
			return true
		}
	}
	return false
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !filepathHasParentPrefix(rel)
}

func filepathHasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}

// Watch re-renders the page whenever one of paths changes. Files and
// directories (recursively) are accepted. Bursts of events inside the
// debounce window trigger a single reload. Watch blocks until ctx is done.
func (s *Server) Watch(ctx context.Context, paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	set, err := s.addWatches(watcher, paths)
	if err != nil {
		return err
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !set.relevant(event.Name) {
				continue
			}

			// New subdirectories of a watched tree need their own watch.
			if event.Has(fsnotify.Create) && set.relevantDir(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						s.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			s.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, func() {
				_ = s.Reload(ctx) // logged by Reload
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *watchSet) relevantDir(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for dir := range w.dirs {
		if isWithin(abs, dir) {
			return true
		}
	}
	return false
}

func (s *Server) addWatches(watcher *fsnotify.Watcher, paths []string) (*watchSet, error) {
	set := &watchSet{files: map[string]bool{}, dirs: map[string]bool{}}

	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving watch path %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("watching %q: %w", p, err)
		}

		if !info.IsDir() {
			set.files[abs] = true
			if err := watcher.Add(filepath.Dir(abs)); err != nil {
				return nil, fmt.Errorf("watching %q: %w", p, err)
			}
			continue
		}

		set.dirs[abs] = true
		walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				s.logger.Warn("cannot walk directory", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					s.logger.Warn("cannot watch directory", "path", path, "error", err)
				}
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("watching %q: %w", p, walkErr)
		}
	}

	s.logger.LogAttrs(context.Background(), slog.LevelInfo, "watching for changes",
		slog.Int("files", len(set.files)),
		slog.Int("dirs", len(set.dirs)),
	)
	return set, nil
}
