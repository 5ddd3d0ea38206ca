package dom

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrCrossOrigin is returned when a history URL leaves the window's origin.
var ErrCrossOrigin = errors.New("dom: url is not same-origin")

// Window is the top-level browsing context: a document, its location and
// session history, window-level events and the task queue.
type Window struct {
	eventTarget

	doc      *Document
	origin   *url.URL
	location *Location
	history  *History
	tasks    []func()
}

// NewWindow creates a window whose document is loaded from rawURL.
func NewWindow(rawURL string) (*Window, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("dom: parse window url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("dom: window url %q must be absolute", rawURL)
	}
	w := &Window{
		doc:    NewDocument(),
		origin: &url.URL{Scheme: u.Scheme, Host: u.Host},
	}
	w.location = &Location{win: w}
	w.history = &History{win: w}
	w.history.entries = []historyEntry{entryFromURL(u, nil)}
	return w, nil
}

// Document returns the window's document.
func (w *Window) Document() *Document { return w.doc }

// Location returns the window's location.
func (w *Window) Location() *Location { return w.location }

// History returns the window's session history.
func (w *Window) History() *History { return w.history }

// DispatchEvent dispatches ev to window listeners synchronously.
func (w *Window) DispatchEvent(ev *Event) bool {
	ev.Target = w
	w.fire(w, ev)
	return !ev.defaultPrevented
}

// Post queues fn to run on a later turn of the event loop.
func (w *Window) Post(fn func()) {
	w.tasks = append(w.tasks, fn)
}

// Pending returns the number of queued tasks.
func (w *Window) Pending() int { return len(w.tasks) }

// Flush runs queued tasks, including tasks they queue, until the queue is
// empty. It returns the number of tasks run.
func (w *Window) Flush() int {
	n := 0
	for len(w.tasks) > 0 {
		task := w.tasks[0]
		w.tasks = w.tasks[1:]
		task()
		n++
	}
	return n
}

type historyEntry struct {
	pathname string
	search   string
	hash     string
	state    any
}

func entryFromURL(u *url.URL, state any) historyEntry {
	e := historyEntry{pathname: u.EscapedPath(), state: state}
	if e.pathname == "" {
		e.pathname = "/"
	}
	if u.RawQuery != "" {
		e.search = "?" + u.RawQuery
	}
	if f := u.EscapedFragment(); f != "" {
		e.hash = "#" + f
	}
	return e
}

func (e historyEntry) url(origin *url.URL) *url.URL {
	u, _ := url.Parse(origin.String() + e.pathname + e.search + e.hash)
	return u
}

// Location describes the current entry's URL.
type Location struct {
	win *Window
}

func (l *Location) entry() historyEntry {
	return l.win.history.entries[l.win.history.index]
}

// Href returns the full URL.
func (l *Location) Href() string {
	e := l.entry()
	return l.win.origin.String() + e.pathname + e.search + e.hash
}

// Origin returns scheme://host.
func (l *Location) Origin() string { return l.win.origin.String() }

// Pathname returns the path, always starting with "/".
func (l *Location) Pathname() string { return l.entry().pathname }

// Search returns the query including "?", or "".
func (l *Location) Search() string { return l.entry().search }

// Hash returns the fragment including "#", or "".
func (l *Location) Hash() string { return l.entry().hash }

// SetHash changes the fragment. A change adds a history entry and queues a
// hashchange event; setting the current fragment does nothing.
func (l *Location) SetHash(hash string) {
	if hash != "" && hash[0] != '#' {
		hash = "#" + hash
	}
	if hash == "#" {
		hash = ""
	}
	cur := l.entry()
	if cur.hash == hash {
		return
	}
	oldURL := l.Href()
	next := cur
	next.hash = hash
	next.state = nil
	l.win.history.push(next)
	newURL := l.Href()
	l.win.Post(func() {
		ev := NewEvent("hashchange", false)
		ev.Detail = HashChange{OldURL: oldURL, NewURL: newURL}
		l.win.DispatchEvent(ev)
	})
}

// HashChange is the Detail of a hashchange event.
type HashChange struct {
	OldURL string
	NewURL string
}

// History is the window's session history.
type History struct {
	win     *Window
	entries []historyEntry
	index   int
}

// Length returns the number of entries.
func (h *History) Length() int { return len(h.entries) }

// State returns the current entry's state.
func (h *History) State() any { return h.entries[h.index].state }

// PushState adds an entry for rawURL, resolved against the current URL,
// and drops any forward entries. No event is fired.
func (h *History) PushState(state any, rawURL string) error {
	e, err := h.resolve(state, rawURL)
	if err != nil {
		return err
	}
	h.push(e)
	return nil
}

// ReplaceState replaces the current entry. No event is fired.
func (h *History) ReplaceState(state any, rawURL string) error {
	e, err := h.resolve(state, rawURL)
	if err != nil {
		return err
	}
	h.entries[h.index] = e
	return nil
}

func (h *History) resolve(state any, rawURL string) (historyEntry, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return historyEntry{}, fmt.Errorf("dom: parse history url: %w", err)
	}
	base := h.entries[h.index].url(h.win.origin)
	u := base.ResolveReference(ref)
	if u.Scheme != h.win.origin.Scheme || u.Host != h.win.origin.Host {
		return historyEntry{}, fmt.Errorf("%w: %s", ErrCrossOrigin, rawURL)
	}
	return entryFromURL(u, state), nil
}

func (h *History) push(e historyEntry) {
	h.entries = append(h.entries[:h.index+1], e)
	h.index = len(h.entries) - 1
}

// Back moves one entry back.
func (h *History) Back() { h.Go(-1) }

// Forward moves one entry forward.
func (h *History) Forward() { h.Go(1) }

// Go queues a traversal by delta entries. When it runs, the current entry
// changes and popstate fires, followed by hashchange if only the fragment
// differed. Out-of-range deltas do nothing.
func (h *History) Go(delta int) {
	if delta == 0 {
		return
	}
	h.win.Post(func() {
		target := h.index + delta
		if target < 0 || target >= len(h.entries) {
			return
		}
		from := h.entries[h.index]
		oldURL := h.win.location.Href()
		h.index = target
		to := h.entries[target]

		ev := NewEvent("popstate", false)
		ev.Detail = to.state
		h.win.DispatchEvent(ev)

		if from.hash != to.hash && from.pathname == to.pathname && from.search == to.search {
			hc := NewEvent("hashchange", false)
			hc.Detail = HashChange{OldURL: oldURL, NewURL: h.win.location.Href()}
			h.win.DispatchEvent(hc)
		}
	})
}
