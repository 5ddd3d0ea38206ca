package demo

import (
	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/binder"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

// Navigation renders the navigation bar. The link for the current path
// carries the active class.
func Navigation(r *router.Router) el.Descriptor {
	links := make([]el.Descriptor, len(NavItems))
	for i, item := range NavItems {
		links[i] = router.NavLink(r, item.Path, item.Label)
	}
	return el.Nav(el.Class("nav"), el.Div(el.Class("nav-links"), links))
}

// Views maps the demo routes to their pages, in table order.
func Views(b *binder.Binder, r *router.Router) []router.View {
	return []router.View{
		router.On("/", func(router.Match) dom.Node { return HomePage(b) }),
		router.On("/counter", func(router.Match) dom.Node { return CounterPage(b) }),
		router.On("/user/:id", func(m router.Match) dom.Node { return UserPage(b, r, m) }),
		router.On("/isolated", func(router.Match) dom.Node { return IsolatedPage(b) }),
		router.On("/about", func(router.Match) dom.Node { return AboutPage(b) }),
		router.On("*", func(m router.Match) dom.Node { return NotFoundPage(b, r, m) }),
	}
}

// App is the demo application: the navigation bar above the page for the
// router's current match.
func App(b *binder.Binder, r *router.Router) el.Descriptor {
	return el.New(func(rd el.Renderer, _ el.Props, _ []el.Child) dom.Node {
		return rd.Bind(el.Div(el.Class("app"),
			Navigation(r),
			el.Main(router.Dispatch(b, r.Current(), Views(b, r)...)),
		))
	}, nil)
}
