package binder

import (
	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// Fragment binds children into a fragment, for returning several roots.
func (b *Binder) Fragment(children ...any) *dom.Fragment {
	f := b.doc.CreateDocumentFragment()
	for _, c := range children {
		b.appendChild(f, el.C(c))
	}
	return f
}

// FragmentComponent is Fragment as a component, for use with el.New.
func FragmentComponent(r el.Renderer, _ el.Props, children []el.Child) dom.Node {
	f := r.Document().CreateDocumentFragment()
	r.Append(f, children...)
	return f
}
