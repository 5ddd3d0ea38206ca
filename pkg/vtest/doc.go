// Package vtest provides testing helpers for einblatt components.
//
// The vtest package reduces boilerplate when testing views by wiring a
// headless window, a binder and a memory router in one call, and by
// providing render assertions.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t, vtest.Options{})
//	    h.Mount(Counter())
//	    h.Click(dom.ByTag("button"))
//	    vtest.ExpectContains(t, h.Root(), "Count: 1")
//	}
//
// # Routing
//
// Pass a route table to get a router. Memory mode is the default, so
// navigation commits synchronously; browser and hash modes commit on the
// window's task queue, which Navigate, Back and Click drain:
//
//	h := vtest.New(t, vtest.Options{
//	    Routes:      routes,
//	    InitialPath: "/user/1",
//	})
//	h.Mount(App(h.Router))
//	h.Navigate("/about")
//	if h.Path() != "/about" {
//	    t.Errorf("path = %q", h.Path())
//	}
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, h.Root(), "Welcome")
//	vtest.ExpectNotContains(t, h.Root(), "Login")
//	vtest.ExpectAttribute(t, h.Root(), "aria-current", "page")
package vtest
