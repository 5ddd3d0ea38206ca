package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/binder"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/render"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

// DefaultURL is the window URL used when Options.URL is empty.
const DefaultURL = "http://localhost/"

// Options configures a Harness.
type Options struct {
	// URL is the window's initial URL. Browser and hash modes read their
	// starting path from it.
	URL string

	// Routes is the route table. Nil creates a harness without a router.
	Routes *router.Table

	// Mode selects the navigation strategy. Default: memory.
	Mode router.Mode

	// Basename is the browser mode path prefix.
	Basename string

	// InitialPath is the starting path in memory mode. Default: "/".
	InitialPath string

	// Logger receives binder and router logs. Default: discarded.
	Logger *slog.Logger
}

// Harness wires a window, its document, a binder and optionally a router
// for a single test. Everything it creates is torn down by t.Cleanup.
type Harness struct {
	t testing.TB

	Window *dom.Window
	Doc    *dom.Document
	Binder *binder.Binder
	Router *router.Router

	root *dom.Element
}

// New creates a harness. The mount point is a div#app appended to the body.
//
// Example:
//
//	h := vtest.New(t, vtest.Options{Routes: demo.Routes()})
//	h.Mount(demo.App(h.Router))
//	h.Navigate("/user/7")
//	vtest.ExpectContains(t, h.Root(), "User 7")
func New(t testing.TB, opts Options) *Harness {
	t.Helper()

	rawURL := opts.URL
	if rawURL == "" {
		rawURL = DefaultURL
	}
	win, err := dom.NewWindow(rawURL)
	if err != nil {
		t.Fatalf("vtest: %v", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &Harness{
		t:      t,
		Window: win,
		Doc:    win.Document(),
		Binder: binder.New(win.Document(), binder.WithLogger(logger)),
	}
	h.root = h.Doc.CreateElement("div")
	h.root.SetAttribute("id", "app")
	h.Doc.Body().AppendChild(h.root)

	if opts.Routes != nil {
		mode := opts.Mode
		if mode == "" {
			mode = router.ModeMemory
		}
		r, err := router.New(router.Config{
			Routes:      opts.Routes,
			Mode:        mode,
			Basename:    opts.Basename,
			Window:      win,
			InitialPath: opts.InitialPath,
		}, router.WithLogger(logger))
		if err != nil {
			t.Fatalf("vtest: router: %v", err)
		}
		h.Router = r
		t.Cleanup(r.Destroy)
	}
	return h
}

// Root returns the mount point.
func (h *Harness) Root() *dom.Element { return h.root }

// Mount binds d into the mount point. It is unmounted when the test ends.
func (h *Harness) Mount(d el.Descriptor) {
	h.t.Helper()
	unmount := h.Binder.Mount(h.root, d)
	h.t.Cleanup(unmount)
}

// Navigate navigates the router to path and drains the window's task queue,
// so asynchronous strategies have committed when it returns.
func (h *Harness) Navigate(path string) {
	h.t.Helper()
	if h.Router == nil {
		h.t.Fatalf("vtest: Navigate(%q) without routes", path)
	}
	h.Router.Navigate(path)
	h.Flush()
}

// Back goes back one history entry and drains the task queue.
func (h *Harness) Back() {
	h.Window.History().Back()
	h.Flush()
}

// Flush runs queued window tasks.
func (h *Harness) Flush() {
	h.Window.Flush()
}

// Path returns the router's committed path.
func (h *Harness) Path() string {
	h.t.Helper()
	if h.Router == nil {
		h.t.Fatalf("vtest: Path without routes")
	}
	return h.Router.Current().Peek().Path
}

// Find returns the first element under the mount point that match accepts.
// The test fails when there is none.
func (h *Harness) Find(match func(*dom.Element) bool) *dom.Element {
	h.t.Helper()
	e := dom.Find(h.root, match)
	if e == nil {
		h.t.Fatalf("vtest: no matching element in:\n%s", truncate(h.HTML(), 500))
	}
	return e
}

// Click clicks the first element match accepts and drains the task queue.
func (h *Harness) Click(match func(*dom.Element) bool) {
	h.t.Helper()
	h.Find(match).Click()
	h.Flush()
}

// HTML returns the mount point's inner HTML.
func (h *Harness) HTML() string {
	return render.InnerHTML(h.root)
}

// RenderToString serializes a node to HTML.
// This is useful for asserting on rendered output.
//
// Example:
//
//	html := vtest.RenderToString(b.Bind(Greeting("Ada")))
//	if !strings.Contains(html, "Hello, Ada") {
//	    t.Error("missing greeting")
//	}
func RenderToString(n dom.Node) string {
	return render.OuterHTML(n)
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, h.Root(), "Welcome")
func ExpectContains(t testing.TB, n dom.Node, expected string) {
	t.Helper()
	html := RenderToString(n)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
//
// Example:
//
//	vtest.ExpectNotContains(t, h.Root(), "Not found")
func ExpectNotContains(t testing.TB, n dom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(n)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	vtest.ExpectElement(t, h.Root(), "nav")
func ExpectElement(t testing.TB, n dom.Node, tag string) {
	t.Helper()
	if dom.Find(n, dom.ByTag(tag)) == nil {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(RenderToString(n), 500))
	}
}

// ExpectAttribute asserts that some element carries attr with exactly value.
//
// Example:
//
//	vtest.ExpectAttribute(t, h.Root(), "aria-current", "page")
func ExpectAttribute(t testing.TB, n dom.Node, attr, value string) {
	t.Helper()
	if dom.Find(n, dom.ByAttr(attr, value)) == nil {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(RenderToString(n), 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
