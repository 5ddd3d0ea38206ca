package router

import (
	"github.com/einblatt-dev/einblatt/pkg/binder"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

// View pairs a path template with the function that renders it.
type View struct {
	route  *Route
	render func(m Match) dom.Node
}

// On declares a view for template. The template is compiled here, once.
func On(template string, render func(m Match) dom.Node) View {
	return View{route: Compile(template), render: render}
}

// Template returns the view's path template.
func (v View) Template() string { return v.route.Path() }

// Dispatch returns a container that shows the first view whose template
// matches the current path. When the match changes to a new path the
// container is cleared, disposing the old view, and the next view is
// rendered; an update that keeps the same path renders nothing. A path no
// view matches leaves the container empty.
func Dispatch(b *binder.Binder, current reactive.Readable[Match], views ...View) *dom.Element {
	slot := b.NewSlot("div")
	logger := b.Logger()

	var (
		last     string
		rendered bool
	)
	b.Watch(slot.Host(), func() {
		m := current.Get()
		if rendered && m.Path == last {
			return
		}
		rendered, last = true, m.Path

		for _, v := range views {
			if !v.route.Matches(m.Path) {
				continue
			}
			logger.Debug("route view", "path", m.Path, "view", v.route.Path())
			render := v.render
			slot.Render(func() dom.Node { return render(m) })
			return
		}
		logger.Debug("no route view", "path", m.Path)
		slot.Clear()
	})
	return slot.Host()
}
