package router

import (
	"strings"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

// Link creates an anchor that navigates through r. A click is intercepted
// with preventDefault, so the document never loads the href itself.
func Link(r *Router, path string, args ...any) el.Descriptor {
	return el.A(append(linkProps(r, path), args...)...)
}

// ActiveLink creates a link that carries activeClass, and aria-current=page,
// while the current path matches path. With exact unset, descendants of
// path match too.
func ActiveLink(r *Router, path, activeClass string, exact bool, args ...any) el.Descriptor {
	return el.New(func(rd el.Renderer, _ el.Props, _ []el.Child) dom.Node {
		active := reactive.NewMemo(func() bool {
			return pathActive(r.Current().Get().Path, path, exact)
		})

		props := append(linkProps(r, path),
			el.ClassOf(el.Func(func() string {
				if active.Get() {
					return activeClass
				}
				return ""
			})),
			el.AriaCurrent(el.Func(func() any {
				if active.Get() {
					return "page"
				}
				return nil
			})),
		)
		n := rd.Bind(el.A(append(props, args...)...))
		dom.Own(n, active.Dispose)
		return n
	}, nil)
}

// NavLink is ActiveLink with the "active" class and exact matching.
func NavLink(r *Router, path string, args ...any) el.Descriptor {
	return ActiveLink(r, path, "active", true, args...)
}

func linkProps(r *Router, path string) []any {
	return []any{
		el.Href(r.Href(path)),
		el.OnClick(func(ev *dom.Event) {
			ev.PreventDefault()
			r.Navigate(path)
		}),
	}
}

func pathActive(current, path string, exact bool) bool {
	current, _ = splitQuery(current)
	if current == path {
		return true
	}
	if exact {
		return false
	}
	if path == "/" {
		return true
	}
	return strings.HasPrefix(current, strings.TrimSuffix(path, "/")+"/")
}
