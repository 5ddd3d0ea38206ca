package binder

import (
	"log/slog"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

// CodeUnknownChild is the diagnostic code logged for unsupported child values.
const CodeUnknownChild = "E201"

// CodeInvalidProp is the diagnostic code logged for props that cannot apply.
const CodeInvalidProp = "E202"

// Binder binds descriptors against one document.
type Binder struct {
	doc    *dom.Document
	logger *slog.Logger
	ids    IDSource
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger used for recoverable binding problems.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithIDSource sets the generator for scoped style IDs.
func WithIDSource(ids IDSource) Option {
	return func(b *Binder) {
		if ids != nil {
			b.ids = ids
		}
	}
}

// New creates a Binder for doc.
func New(doc *dom.Document, opts ...Option) *Binder {
	b := &Binder{
		doc:    doc,
		logger: slog.Default().With("component", "binder"),
		ids:    NewCounter("scope-"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Document returns the document nodes are created in.
func (b *Binder) Document() *dom.Document { return b.doc }

// Logger returns the binder's logger.
func (b *Binder) Logger() *slog.Logger { return b.logger }

var _ el.Renderer = (*Binder)(nil)

// Bind produces the node for d. A component's result is returned as is.
// The zero descriptor binds to an empty fragment.
func (b *Binder) Bind(d el.Descriptor) dom.Node {
	if d.IsComponent() {
		n := d.Component()(b, d.Props(), d.Children())
		if n == nil {
			return b.doc.CreateDocumentFragment()
		}
		return n
	}
	if d.IsZero() {
		return b.doc.CreateDocumentFragment()
	}

	e := b.doc.CreateElement(d.Tag())
	for _, p := range d.Props() {
		b.applyProp(e, p)
	}
	b.Append(e, d.Children()...)
	return e
}

// Mount binds d inside a fresh owner and appends the result to parent. The
// returned function unmounts every node it appended and disposes the owner.
func (b *Binder) Mount(parent dom.Parent, d el.Descriptor) (unmount func()) {
	owner := reactive.NewOwner(reactive.CurrentOwner())
	var n dom.Node
	reactive.WithOwner(owner, func() {
		n = b.Bind(d)
	})
	nodes := topLevel(n)
	parent.AppendChild(n)

	done := false
	return func() {
		if done {
			return
		}
		done = true
		for _, node := range nodes {
			dom.Unmount(node)
		}
		owner.Dispose()
	}
}

// topLevel lists the nodes that n contributes when appended.
func topLevel(n dom.Node) []dom.Node {
	if f, ok := n.(*dom.Fragment); ok {
		return f.ChildNodes()
	}
	return []dom.Node{n}
}

// Watch runs fn as an effect owned by n: it re-runs when anything fn reads
// changes and is disposed when n is unmounted.
func (b *Binder) Watch(n dom.Node, fn func()) *reactive.Effect {
	e := reactive.CreateEffect(func() reactive.Cleanup {
		fn()
		return nil
	})
	dom.Own(n, e.Dispose)
	return e
}

// Append binds children in order and appends them to parent. Skipped values
// create nothing, lists are flattened, and unsupported values are logged and
// skipped so the rest of the tree still mounts.
func (b *Binder) Append(parent dom.Parent, children ...el.Child) {
	for _, c := range children {
		b.appendChild(parent, c)
	}
}

func (b *Binder) appendChild(parent dom.Parent, c el.Child) {
	switch c.Kind() {
	case el.ChildSkip:
	case el.ChildList:
		b.Append(parent, c.List()...)
	case el.ChildReactive:
		d := c.Dynamic()
		t := b.doc.CreateTextNode("")
		parent.AppendChild(t)
		b.Watch(t, func() {
			t.SetData(el.Stringify(d.Get()))
		})
	case el.ChildText:
		parent.AppendChild(b.doc.CreateTextNode(c.Text()))
	case el.ChildNode:
		parent.AppendChild(c.Node())
	case el.ChildDescriptor:
		parent.AppendChild(b.Bind(c.Descriptor()))
	default:
		b.logger.Warn("skipping unknown child type",
			"code", CodeUnknownChild,
			"type", c.Describe(),
		)
	}
}
