package demo

import (
	"io"
	"log/slog"

	"github.com/einblatt-dev/einblatt/internal/errors"
	"github.com/einblatt-dev/einblatt/pkg/binder"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/render"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

// Stylesheet is the demo's global stylesheet.
const Stylesheet = `body { font-family: system-ui, sans-serif; margin: 0; color: #1f2937; }
.nav { background: #1f2937; padding: 1rem; margin-bottom: 2rem; }
.nav-links { display: flex; gap: 1.5rem; }
.nav a { color: #d1d5db; text-decoration: none; }
.nav a.active { color: #fff; font-weight: bold; }
.container { max-width: 48rem; margin: 0 auto; padding: 0 1rem; }
.title { font-size: 2.25rem; }
.role.admin { color: #2563eb; font-weight: 600; }`

// Titles maps route names to page titles.
var Titles = map[string]string{
	"home":     "Home",
	"counter":  "Counter",
	"user":     "User",
	"isolated": "Style Isolation",
	"about":    "About",
	"notFound": "Not Found",
}

// RenderOptions configures RenderPage.
type RenderOptions struct {
	// Path is the path the app is rendered at. Default: "/".
	Path string

	// Routes overrides the demo route table.
	Routes *router.Table

	// Basename is written as the document's base href.
	Basename string

	// Pretty indents the output.
	Pretty bool

	// Logger receives binder and router logs.
	// Default: slog.Default().With("component", "demo")
	Logger *slog.Logger

	// Metrics records the router's transitions. Nil records nothing.
	Metrics *router.Metrics
}

// RenderPage mounts the app headlessly at opts.Path with a memory router
// and writes the resulting document to w.
func RenderPage(w io.Writer, opts RenderOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "demo")
	}
	routes := opts.Routes
	if routes == nil {
		routes = Routes()
	}

	r, err := router.New(router.Config{
		Routes:      routes,
		Mode:        router.ModeMemory,
		InitialPath: opts.Path,
		OnNavigate: func(to, from router.Match) {
			logger.Debug("navigated", "from", from.Path, "to", to.Path)
		},
	}, router.WithLogger(logger), router.WithMetrics(opts.Metrics))
	if err != nil {
		return errors.New("E303").Wrap(err)
	}
	defer r.Destroy()
	r.BeforeEachFunc(LogNavigation(logger))

	doc := dom.NewDocument()
	b := binder.New(doc, binder.WithLogger(logger))
	root := doc.CreateElement("div")
	root.SetAttribute("id", "app")
	unmount := b.Mount(root, App(b, r))
	defer unmount()

	// Scoped page styles land in the document head.
	styles := []string{Stylesheet}
	for _, e := range dom.FindAll(doc.Head(), dom.ByTag("style")) {
		styles = append(styles, e.TextContent())
	}

	title := "einblatt"
	if t, ok := Titles[r.Current().Peek().Name]; ok {
		title = t + " · einblatt"
	}

	renderer := render.NewRenderer(render.RendererConfig{Pretty: opts.Pretty})
	err = renderer.RenderPage(w, render.PageData{
		Title:    title,
		BaseHref: opts.Basename + "/",
		Styles:   styles,
		Body:     root,
	})
	if err != nil {
		return errors.New("E203").Wrap(err)
	}
	return nil
}
