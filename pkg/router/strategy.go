package router

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// Strategy abstracts where the current path lives and how it changes.
//
// Navigate is fire-and-forget: the new path is reported to listeners, never
// returned. The history and hash strategies deliver on a later window task;
// the memory strategy delivers before Navigate returns.
type Strategy interface {
	CurrentPath() string
	Navigate(path string)
	Listen(fn func(path string)) (unsubscribe func())
}

// Hrefer is implemented by strategies whose link targets differ from the
// path itself.
type Hrefer interface {
	Href(path string) string
}

// CodeInvalidPath is the diagnostic code logged when a strategy drops a
// navigation to a path it cannot represent.
const CodeInvalidPath = "E305"

// Mode names a built-in strategy.
type Mode string

const (
	ModeBrowser Mode = "browser"
	ModeHash    Mode = "hash"
	ModeMemory  Mode = "memory"
)

var (
	// ErrUnknownMode is returned for a mode other than browser, hash or memory.
	ErrUnknownMode = errors.New("router: unknown mode")

	// ErrNoWindow is returned when a window-backed mode has no window.
	ErrNoWindow = errors.New("router: mode requires a window")
)

// ParseMode validates s as a mode. The empty string selects browser mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return ModeBrowser, nil
	case ModeBrowser, ModeHash, ModeMemory:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// NewStrategy builds the strategy for mode. The window is required for
// browser and hash modes and ignored by memory mode, which starts at
// initial (or "/").
func NewStrategy(mode Mode, win *dom.Window, basename, initial string) (Strategy, error) {
	switch mode {
	case ModeBrowser, "":
		if win == nil {
			return nil, ErrNoWindow
		}
		return NewHistoryStrategy(win, basename), nil
	case ModeHash:
		if win == nil {
			return nil, ErrNoWindow
		}
		return NewHashStrategy(win), nil
	case ModeMemory:
		return NewMemoryStrategy(initial), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
}

// HistoryStrategy keeps the path in the window location and follows
// popstate events.
type HistoryStrategy struct {
	win      *dom.Window
	basename string
	logger   *slog.Logger
}

// NewHistoryStrategy creates a history strategy. A trailing slash on
// basename is ignored.
func NewHistoryStrategy(win *dom.Window, basename string) *HistoryStrategy {
	return &HistoryStrategy{
		win:      win,
		basename: strings.TrimSuffix(basename, "/"),
		logger:   slog.Default().With("component", "router"),
	}
}

// SetLogger sets the logger that reports dropped navigations.
func (s *HistoryStrategy) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Basename returns the prefix stripped from every path.
func (s *HistoryStrategy) Basename() string { return s.basename }

// CurrentPath returns the location path with the basename removed,
// followed by the query string if there is one.
func (s *HistoryStrategy) CurrentPath() string {
	loc := s.win.Location()
	return s.strip(loc.Pathname()) + loc.Search()
}

func (s *HistoryStrategy) strip(p string) string {
	if s.basename == "" || !strings.HasPrefix(p, s.basename) {
		return p
	}
	rest := p[len(s.basename):]
	switch {
	case rest == "":
		return "/"
	case rest[0] != '/':
		// "/app" does not prefix "/application".
		return p
	}
	return rest
}

// Navigate pushes basename+path and announces it with a popstate event on
// the next window task. A path that is not a valid URL reference is logged
// and dropped; the location and history stay unchanged.
func (s *HistoryStrategy) Navigate(path string) {
	if err := s.win.History().PushState(nil, s.basename+path); err != nil {
		s.logger.Error("navigation dropped", "code", CodeInvalidPath, "path", path, "error", err)
		return
	}
	s.win.Post(func() {
		s.win.DispatchEvent(dom.NewEvent("popstate", false))
	})
}

// Listen calls fn with the current path on every popstate event.
func (s *HistoryStrategy) Listen(fn func(path string)) func() {
	return s.win.AddEventListener("popstate", func(*dom.Event) {
		fn(s.CurrentPath())
	})
}

// Href returns the document URL path for path.
func (s *HistoryStrategy) Href(path string) string { return s.basename + path }

// HashStrategy keeps the path in the URL fragment and follows hashchange
// events.
type HashStrategy struct {
	win *dom.Window
}

// NewHashStrategy creates a hash strategy.
func NewHashStrategy(win *dom.Window) *HashStrategy {
	return &HashStrategy{win: win}
}

// CurrentPath returns the fragment without "#", or "/" when it is empty.
func (s *HashStrategy) CurrentPath() string {
	if p := strings.TrimPrefix(s.win.Location().Hash(), "#"); p != "" {
		return p
	}
	return "/"
}

// Navigate sets the fragment. The window fires hashchange on a later task.
func (s *HashStrategy) Navigate(path string) {
	s.win.Location().SetHash(path)
}

// Listen calls fn with the current path on every hashchange event.
func (s *HashStrategy) Listen(fn func(path string)) func() {
	return s.win.AddEventListener("hashchange", func(*dom.Event) {
		fn(s.CurrentPath())
	})
}

// Href returns the fragment link for path.
func (s *HashStrategy) Href(path string) string { return "#" + path }

// MemoryStrategy holds the path itself. It has no platform dependency and
// notifies synchronously, which makes it the strategy for headless use.
type MemoryStrategy struct {
	path      string
	listeners []*memoryListener
}

type memoryListener struct {
	fn func(string)
}

// NewMemoryStrategy creates a memory strategy at initial, or at "/" when
// initial is empty.
func NewMemoryStrategy(initial string) *MemoryStrategy {
	if initial == "" {
		initial = "/"
	}
	return &MemoryStrategy{path: initial}
}

// CurrentPath returns the stored path.
func (s *MemoryStrategy) CurrentPath() string { return s.path }

// Navigate stores path and calls every listener in registration order
// before returning. Navigating to the current path notifies again.
func (s *MemoryStrategy) Navigate(path string) {
	s.path = path
	for _, l := range append([]*memoryListener(nil), s.listeners...) {
		l.fn(path)
	}
}

// Listen registers fn. The returned function removes it.
func (s *MemoryStrategy) Listen(fn func(path string)) func() {
	l := &memoryListener{fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		for i, x := range s.listeners {
			if x == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered listeners.
func (s *MemoryStrategy) Listeners() int { return len(s.listeners) }
