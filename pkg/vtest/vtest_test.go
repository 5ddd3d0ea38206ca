package vtest_test

import (
	"fmt"
	"testing"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
	"github.com/einblatt-dev/einblatt/pkg/router"
	"github.com/einblatt-dev/einblatt/pkg/vtest"
)

func counter() el.Descriptor {
	count := reactive.NewSignal(0)
	return el.Div(
		el.P(el.Func(func() string { return fmt.Sprintf("Count: %d", count.Get()) })),
		el.Button(el.OnClick(func() { count.Update(func(n int) int { return n + 1 }) }), "+1"),
	)
}

func routes() *router.Table {
	return router.NewTable(
		router.Define("home", "/"),
		router.Define("user", "/user/:id"),
		router.Define("about", "/about"),
	)
}

func app(r *router.Router) el.Descriptor {
	return el.New(func(rd el.Renderer, _ el.Props, _ []el.Child) dom.Node {
		return rd.Bind(el.Div(
			el.Nav(
				router.NavLink(r, "/", "Home"),
				router.NavLink(r, "/about", "About"),
			),
			el.Main(el.Func(func() string {
				m := r.Current().Get()
				if m.Is("user") {
					return "User " + m.Params.Get("id")
				}
				return "Page " + m.Name
			})),
		))
	}, nil)
}

func TestNew(t *testing.T) {
	h := vtest.New(t, vtest.Options{})

	if h.Window == nil || h.Doc == nil || h.Binder == nil {
		t.Fatal("expected window, document and binder")
	}
	if h.Router != nil {
		t.Error("expected no router without routes")
	}
	if h.Doc.GetElementByID("app") != h.Root() {
		t.Error("expected the mount point in the document")
	}
}

func TestMountAndClick(t *testing.T) {
	h := vtest.New(t, vtest.Options{})
	h.Mount(counter())

	vtest.ExpectContains(t, h.Root(), "Count: 0")
	h.Click(dom.ByTag("button"))
	h.Click(dom.ByTag("button"))
	vtest.ExpectContains(t, h.Root(), "Count: 2")
	vtest.ExpectElement(t, h.Root(), "button")
}

func TestMemoryRouter(t *testing.T) {
	h := vtest.New(t, vtest.Options{Routes: routes(), InitialPath: "/user/3"})
	h.Mount(app(h.Router))

	if h.Path() != "/user/3" {
		t.Errorf("Path() = %q, want /user/3", h.Path())
	}
	vtest.ExpectContains(t, h.Root(), "User 3")

	h.Navigate("/about")
	vtest.ExpectContains(t, h.Root(), "Page about")
	vtest.ExpectNotContains(t, h.Root(), "User 3")
	vtest.ExpectAttribute(t, h.Root(), "aria-current", "page")
}

func TestBrowserRouterFlushes(t *testing.T) {
	h := vtest.New(t, vtest.Options{
		URL:      "http://localhost/app/user/9",
		Routes:   routes(),
		Mode:     router.ModeBrowser,
		Basename: "/app",
	})
	h.Mount(app(h.Router))
	vtest.ExpectContains(t, h.Root(), "User 9")

	h.Click(dom.ByAttr("href", "/app/about"))
	if h.Path() != "/about" {
		t.Errorf("Path() = %q, want /about", h.Path())
	}
	if got := h.Window.Location().Pathname(); got != "/app/about" {
		t.Errorf("Pathname() = %q, want /app/about", got)
	}

	h.Back()
	vtest.ExpectContains(t, h.Root(), "User 9")
}

func TestHashRouter(t *testing.T) {
	h := vtest.New(t, vtest.Options{
		URL:    "http://localhost/#/about",
		Routes: routes(),
		Mode:   router.ModeHash,
	})
	h.Mount(app(h.Router))
	vtest.ExpectContains(t, h.Root(), "Page about")

	h.Navigate("/user/5")
	vtest.ExpectContains(t, h.Root(), "User 5")
	if got := h.Window.Location().Hash(); got != "#/user/5" {
		t.Errorf("Hash() = %q, want #/user/5", got)
	}
}

func TestRenderToString(t *testing.T) {
	h := vtest.New(t, vtest.Options{})
	n := h.Binder.Bind(el.P(el.Class("lead"), "Hello"))

	if got := vtest.RenderToString(n); got != `<p class="lead">Hello</p>` {
		t.Errorf("RenderToString() = %q", got)
	}
}

func TestHTML(t *testing.T) {
	h := vtest.New(t, vtest.Options{})
	h.Mount(el.Span("x"))

	if got := h.HTML(); got != "<span>x</span>" {
		t.Errorf("HTML() = %q", got)
	}
}
