package el

import (
	"fmt"

	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// ChildKind discriminates a Child.
type ChildKind uint8

const (
	// ChildSkip produces nothing: nil and booleans.
	ChildSkip ChildKind = iota
	// ChildText is static text.
	ChildText
	// ChildReactive is a text node kept in sync with a Dynamic.
	ChildReactive
	// ChildNode is an already bound node, appended as is.
	ChildNode
	// ChildDescriptor is a nested descriptor.
	ChildDescriptor
	// ChildList is a nested list, flattened when bound.
	ChildList
	// ChildInvalid is a value of an unsupported type.
	ChildInvalid
)

func (k ChildKind) String() string {
	switch k {
	case ChildSkip:
		return "skip"
	case ChildText:
		return "text"
	case ChildReactive:
		return "reactive"
	case ChildNode:
		return "node"
	case ChildDescriptor:
		return "descriptor"
	case ChildList:
		return "list"
	default:
		return "invalid"
	}
}

// Child is one child slot of a descriptor.
type Child struct {
	kind    ChildKind
	text    string
	dynamic Dynamic
	node    dom.Node
	desc    Descriptor
	list    []Child
	raw     any
}

// C classifies v as a child.
func C(v any) Child {
	switch x := v.(type) {
	case nil, bool:
		return Child{kind: ChildSkip}
	case Child:
		return x
	case string:
		return Child{kind: ChildText, text: x}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Child{kind: ChildText, text: Stringify(x)}
	case Dynamic:
		if !x.Valid() {
			return Child{kind: ChildSkip}
		}
		return Child{kind: ChildReactive, dynamic: x}
	case Descriptor:
		if x.IsZero() {
			return Child{kind: ChildSkip}
		}
		return Child{kind: ChildDescriptor, desc: x}
	case *Descriptor:
		if x == nil {
			return Child{kind: ChildSkip}
		}
		return C(*x)
	case dom.Node:
		if isNilNode(x) {
			return Child{kind: ChildSkip}
		}
		return Child{kind: ChildNode, node: x}
	case []Child:
		return Child{kind: ChildList, list: append([]Child(nil), x...)}
	case []any:
		return Child{kind: ChildList, list: classify(x)}
	case []Descriptor:
		list := make([]Child, len(x))
		for i, d := range x {
			list[i] = C(d)
		}
		return Child{kind: ChildList, list: list}
	case []dom.Node:
		list := make([]Child, len(x))
		for i, n := range x {
			list[i] = C(n)
		}
		return Child{kind: ChildList, list: list}
	case []string:
		list := make([]Child, len(x))
		for i, s := range x {
			list[i] = C(s)
		}
		return Child{kind: ChildList, list: list}
	default:
		return Child{kind: ChildInvalid, raw: v}
	}
}

func isNilNode(n dom.Node) bool {
	switch x := n.(type) {
	case *dom.Element:
		return x == nil
	case *dom.Text:
		return x == nil
	case *dom.Fragment:
		return x == nil
	}
	return false
}

// Kind returns the child's kind.
func (c Child) Kind() ChildKind { return c.kind }

// Text returns the static text of a ChildText.
func (c Child) Text() string { return c.text }

// Dynamic returns the reactive payload of a ChildReactive.
func (c Child) Dynamic() Dynamic { return c.dynamic }

// Node returns the node of a ChildNode.
func (c Child) Node() dom.Node { return c.node }

// Descriptor returns the nested descriptor of a ChildDescriptor.
func (c Child) Descriptor() Descriptor { return c.desc }

// List returns the entries of a ChildList.
func (c Child) List() []Child { return append([]Child(nil), c.list...) }

// Raw returns the original value of a ChildInvalid.
func (c Child) Raw() any { return c.raw }

// Describe names the child's type for diagnostics.
func (c Child) Describe() string {
	if c.kind == ChildInvalid {
		return fmt.Sprintf("%T", c.raw)
	}
	return c.kind.String()
}
