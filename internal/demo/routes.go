package demo

import (
	"log/slog"

	"github.com/einblatt-dev/einblatt/pkg/router"
)

// NavItem is an entry in the navigation bar.
type NavItem struct {
	Path  string
	Label string
}

// NavItems lists the navigation bar links in order.
var NavItems = []NavItem{
	{Path: "/", Label: "Home"},
	{Path: "/counter", Label: "Counter"},
	{Path: "/user/123", Label: "User"},
	{Path: "/isolated", Label: "Style Isolation"},
	{Path: "/about", Label: "About"},
}

// Routes returns the demo route table. The catch-all is last so every
// other route is tried first.
func Routes() *router.Table {
	return router.NewTable(
		router.Define("home", "/"),
		router.Define("counter", "/counter"),
		router.Define("user", "/user/:id"),
		router.Define("isolated", "/isolated"),
		router.Define("about", "/about"),
		router.Define("notFound", "*"),
	)
}

// LogNavigation returns a guard that logs every transition and lets it
// proceed.
func LogNavigation(logger *slog.Logger) router.ContinuationGuard {
	return func(to, from router.Match, next router.Next) {
		logger.Debug("navigation guard", "from", from.Path, "to", to.Path)
		next(router.Proceed())
	}
}
