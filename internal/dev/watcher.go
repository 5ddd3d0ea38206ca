package dev

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/einblatt-dev/einblatt/internal/errors"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeAsset ChangeType = iota
	ChangeCSS
	ChangeHTML
)

func (t ChangeType) String() string {
	switch t {
	case ChangeCSS:
		return "css"
	case ChangeHTML:
		return "html"
	}
	return "asset"
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch. Directories are
	// watched recursively.
	Paths []string

	// Ignore patterns to skip (globs or path segments).
	Ignore []string

	// Debounce is how long the watcher waits for more events before
	// reporting a batch.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	".DS_Store",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher reports batches of file changes under a set of paths.
type Watcher struct {
	config   WatcherConfig
	logger   *slog.Logger
	onChange func([]Change)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	ready    chan struct{}
	once     sync.Once
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig, logger *slog.Logger) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	if logger == nil {
		logger = slog.Default().With("component", "watcher")
	}

	return &Watcher{
		config: config,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// OnChange sets the callback for file changes. Each call receives one
// debounced batch, at most one change per path, sorted by path.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Ready is closed once Start has registered its watches.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

func (w *Watcher) markReady() {
	w.once.Do(func() { close(w.ready) })
}

// Start watches until ctx is done or Stop is called. It blocks.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.markReady()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New("E404").Wrap(err)
	}
	defer fsw.Close()

	for _, p := range w.config.Paths {
		w.add(fsw, p)
	}
	w.markReady()

	pending := make(map[string]Change)
	timer := time.NewTimer(w.config.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "code", "E404", "error", err)
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			change, keep := w.event(fsw, ev)
			if !keep {
				continue
			}
			pending[change.Path] = change
			timer.Reset(w.config.Debounce)
		case <-timer.C:
			w.flush(pending)
			pending = make(map[string]Change)
		}
	}
}

// event turns an fsnotify event into a change, adding watches for new
// directories along the way.
func (w *Watcher) event(fsw *fsnotify.Watcher, ev fsnotify.Event) (Change, bool) {
	if w.shouldIgnore(ev.Name) {
		return Change{}, false
	}
	if ev.Op == fsnotify.Chmod {
		return Change{}, false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.add(fsw, ev.Name)
			return Change{}, false
		}
	}
	return Change{
		Path:    ev.Name,
		Type:    classifyChange(ev.Name),
		Removed: ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename),
	}, true
}

// add watches root, and every directory below it when root is a directory.
func (w *Watcher) add(fsw *fsnotify.Watcher, root string) {
	info, err := os.Stat(root)
	if err != nil {
		w.logger.Warn("not watching", "path", root, "error", err)
		return
	}
	if !info.IsDir() {
		if err := fsw.Add(root); err != nil {
			w.logger.Warn("not watching", "path", root, "error", err)
		}
		return
	}

	filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		if err := fsw.Add(p); err != nil {
			w.logger.Warn("not watching", "path", p, "error", err)
		}
		return nil
	})
}

func (w *Watcher) flush(pending map[string]Change) {
	if len(pending) == 0 {
		return
	}
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback == nil {
		return
	}

	changes := make([]Change, 0, len(pending))
	for _, c := range pending {
		changes = append(changes, c)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	callback(changes)
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}

		hasPathSep := strings.ContainsAny(pattern, `/\`)
		if strings.ContainsAny(pattern, "*?[") {
			if hasPathSep {
				if matched, _ := path.Match(filepath.ToSlash(pattern), normalized); matched {
					return true
				}
			} else if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}

		if hasPathSep {
			if pathMatchesSegments(normalized, filepath.ToSlash(pattern)) {
				return true
			}
			continue
		}
		if pathHasSegment(normalized, pattern) {
			return true
		}
	}

	return false
}

func pathHasSegment(path, segment string) bool {
	for _, part := range splitPathSegments(path) {
		if part == segment {
			return true
		}
	}
	return false
}

func pathMatchesSegments(path, pattern string) bool {
	pathParts := splitPathSegments(path)
	patternParts := splitPathSegments(pattern)
	if len(patternParts) == 0 || len(patternParts) > len(pathParts) {
		return false
	}

outer:
	for i := 0; i <= len(pathParts)-len(patternParts); i++ {
		for j := range patternParts {
			if pathParts[i+j] != patternParts[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

func splitPathSegments(path string) []string {
	var result []string
	for _, part := range strings.Split(path, "/") {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}

// classifyChange determines the type of change based on file extension.
func classifyChange(path string) ChangeType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return ChangeCSS
	case ".html", ".htm":
		return ChangeHTML
	}
	return ChangeAsset
}
