package dom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHierarchy is the panic value for inserting a node into itself or
	// one of its descendants.
	ErrHierarchy = errors.New("dom: hierarchy request")
	// ErrNotFound is the panic value for removing or inserting relative to a
	// node that is not a child of the parent.
	ErrNotFound = errors.New("dom: node not found")
)

// NodeType mirrors the platform's node type constants.
type NodeType int

const (
	ElementNode          NodeType = 1
	TextNode             NodeType = 3
	DocumentFragmentNode NodeType = 11
)

// Node is any node in the tree.
type Node interface {
	NodeType() NodeType
	ParentNode() Parent
	TextContent() string
	OwnerDocument() *Document
	base() *nodeBase
}

// Parent is a node that holds children.
type Parent interface {
	Node
	ChildNodes() []Node
	FirstChild() Node
	AppendChild(n Node) Node
	InsertBefore(n, ref Node) Node
	RemoveChild(n Node) Node
	ReplaceChildren(nodes ...Node)
}

type nodeBase struct {
	doc       *Document
	parent    Parent
	disposers []func()
}

func (b *nodeBase) base() *nodeBase { return b }

// ParentNode returns the node's parent, or nil when detached.
func (b *nodeBase) ParentNode() Parent { return b.parent }

// OwnerDocument returns the document that created the node.
func (b *nodeBase) OwnerDocument() *Document { return b.doc }

// container implements child management for every Parent.
type container struct {
	self     Parent
	children []Node
}

// ChildNodes returns a snapshot of the children.
func (c *container) ChildNodes() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

// FirstChild returns the first child or nil.
func (c *container) FirstChild() Node {
	if len(c.children) == 0 {
		return nil
	}
	return c.children[0]
}

// AppendChild appends n, moving it from its current parent. A Fragment's
// children are moved instead of the fragment itself.
func (c *container) AppendChild(n Node) Node {
	return c.InsertBefore(n, nil)
}

// InsertBefore inserts n before ref, or at the end when ref is nil.
func (c *container) InsertBefore(n, ref Node) Node {
	if ref != nil && ref.ParentNode() != c.self {
		panic(fmt.Errorf("%w: reference node is not a child", ErrNotFound))
	}
	if f, ok := n.(*Fragment); ok {
		for _, child := range f.take() {
			c.insert(child, ref)
		}
		return n
	}
	c.insert(n, ref)
	return n
}

func (c *container) insert(n, ref Node) {
	if n == ref {
		return
	}
	c.checkHierarchy(n)
	if p := n.ParentNode(); p != nil {
		p.RemoveChild(n)
	}
	idx := len(c.children)
	if ref != nil {
		idx = c.indexOf(ref)
	}
	c.children = append(c.children, nil)
	copy(c.children[idx+1:], c.children[idx:])
	c.children[idx] = n
	n.base().parent = c.self
}

func (c *container) checkHierarchy(n Node) {
	var cur Node = c.self
	for cur != nil {
		if cur == n {
			panic(fmt.Errorf("%w: cannot insert a node into its own subtree", ErrHierarchy))
		}
		if sr, ok := cur.(*ShadowRoot); ok {
			cur = sr.host
			continue
		}
		p := cur.ParentNode()
		if p == nil {
			return
		}
		cur = p
	}
}

func (c *container) indexOf(n Node) int {
	for i, child := range c.children {
		if child == n {
			return i
		}
	}
	return -1
}

// RemoveChild detaches n. Disposers on n are not run; use Unmount for that.
func (c *container) RemoveChild(n Node) Node {
	idx := c.indexOf(n)
	if idx < 0 {
		panic(fmt.Errorf("%w: node is not a child", ErrNotFound))
	}
	c.children = append(c.children[:idx], c.children[idx+1:]...)
	n.base().parent = nil
	return n
}

// ReplaceChildren detaches every child and appends nodes in order.
func (c *container) ReplaceChildren(nodes ...Node) {
	for _, child := range c.children {
		child.base().parent = nil
	}
	c.children = nil
	for _, n := range nodes {
		c.AppendChild(n)
	}
}

func (c *container) textContent() string {
	var sb strings.Builder
	for _, child := range c.children {
		if child.NodeType() == TextNode || child.NodeType() == ElementNode {
			sb.WriteString(child.TextContent())
		}
	}
	return sb.String()
}

// Text is a text node.
type Text struct {
	nodeBase
	data string
}

// NodeType returns TextNode.
func (t *Text) NodeType() NodeType { return TextNode }

// TextContent returns the node's data.
func (t *Text) TextContent() string { return t.data }

// Data returns the node's data.
func (t *Text) Data() string { return t.data }

// SetData replaces the node's data.
func (t *Text) SetData(s string) { t.data = s }

// Fragment is a lightweight container whose children move into the parent
// it is appended to.
type Fragment struct {
	nodeBase
	container
}

// NodeType returns DocumentFragmentNode.
func (f *Fragment) NodeType() NodeType { return DocumentFragmentNode }

// TextContent concatenates the text of all children.
func (f *Fragment) TextContent() string { return f.textContent() }

func (f *Fragment) take() []Node {
	kids := f.children
	f.children = nil
	for _, k := range kids {
		k.base().parent = nil
	}
	return kids
}

// ShadowRoot is the root of an element's isolated subtree.
type ShadowRoot struct {
	nodeBase
	container
	host *Element
	mode string
}

// NodeType returns DocumentFragmentNode.
func (s *ShadowRoot) NodeType() NodeType { return DocumentFragmentNode }

// TextContent concatenates the text of all children.
func (s *ShadowRoot) TextContent() string { return s.textContent() }

// Host returns the element the shadow root is attached to.
func (s *ShadowRoot) Host() *Element { return s.host }

// Mode returns "open" or "closed".
func (s *ShadowRoot) Mode() string { return s.mode }

// SetInnerHTML replaces the shadow root's children with parsed markup.
func (s *ShadowRoot) SetInnerHTML(src string) error {
	nodes, err := ParseHTML(s.doc, src)
	if err != nil {
		return err
	}
	s.ReplaceChildren(nodes...)
	return nil
}

// CloneNode copies n into a detached node. With deep set, descendants are
// copied too. Listeners, disposers and shadow roots are not copied.
func CloneNode(n Node, deep bool) Node {
	switch x := n.(type) {
	case *Text:
		return x.doc.CreateTextNode(x.data)
	case *Element:
		c := x.doc.CreateElement(x.tag)
		for _, a := range x.attrs {
			c.SetAttribute(a.Name, a.Value)
		}
		if deep {
			for _, child := range x.children {
				c.AppendChild(CloneNode(child, true))
			}
		}
		return c
	case *Fragment:
		c := x.doc.CreateDocumentFragment()
		if deep {
			for _, child := range x.children {
				c.AppendChild(CloneNode(child, true))
			}
		}
		return c
	default:
		return nil
	}
}
