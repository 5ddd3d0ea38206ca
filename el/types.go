package el

import "github.com/einblatt-dev/einblatt/pkg/dom"

// Renderer turns descriptors into nodes. The binder implements it; a
// Component receives it to bind its own output.
type Renderer interface {
	// Bind produces the node for d.
	Bind(d Descriptor) dom.Node
	// Append binds children in order and appends them to parent.
	Append(parent dom.Parent, children ...Child)
	// Document is the document nodes are created in.
	Document() *dom.Document
}

// Component is a view factory. It returns an already bound node; the binder
// returns that node as is, without a wrapper.
type Component func(r Renderer, props Props, children []Child) dom.Node

// Descriptor describes one element or component invocation.
// The zero value describes nothing and binds to an empty fragment.
type Descriptor struct {
	tag       string
	component Component
	props     Props
	children  []Child
}

// H describes an intrinsic element. children are classified with C.
func H(tag string, props Props, children ...any) Descriptor {
	return Descriptor{tag: tag, props: props.clone(), children: classify(children)}
}

// New describes a component invocation.
func New(component Component, props Props, children ...any) Descriptor {
	return Descriptor{component: component, props: props.clone(), children: classify(children)}
}

// Tag returns the element tag, or "" for a component.
func (d Descriptor) Tag() string { return d.tag }

// IsComponent reports whether d invokes a component.
func (d Descriptor) IsComponent() bool { return d.component != nil }

// Component returns the component, or nil for an intrinsic element.
func (d Descriptor) Component() Component { return d.component }

// Props returns a copy of the props in declaration order.
func (d Descriptor) Props() Props { return d.props.clone() }

// Children returns a copy of the children.
func (d Descriptor) Children() []Child {
	out := make([]Child, len(d.children))
	copy(out, d.children)
	return out
}

// IsZero reports whether d is the zero descriptor.
func (d Descriptor) IsZero() bool {
	return d.tag == "" && d.component == nil
}

func classify(args []any) []Child {
	if len(args) == 0 {
		return nil
	}
	out := make([]Child, 0, len(args))
	for _, a := range args {
		out = append(out, C(a))
	}
	return out
}
