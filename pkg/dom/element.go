package dom

import (
	"errors"
	"strings"
)

// ErrShadowAttached is returned when attaching a second shadow root.
var ErrShadowAttached = errors.New("dom: shadow root already attached")

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Element is an element node.
type Element struct {
	nodeBase
	container
	eventTarget

	tag    string
	attrs  []Attr
	style  Style
	shadow *ShadowRoot

	value      string
	valueDirty bool
}

// NodeType returns ElementNode.
func (e *Element) NodeType() NodeType { return ElementNode }

// TagName returns the lower-case tag name.
func (e *Element) TagName() string { return e.tag }

// TextContent concatenates the text of all descendants.
func (e *Element) TextContent() string { return e.textContent() }

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(s string) {
	if s == "" {
		e.ReplaceChildren()
		return
	}
	e.ReplaceChildren(e.doc.CreateTextNode(s))
}

// SetInnerHTML replaces all children with the nodes parsed from src.
func (e *Element) SetInnerHTML(src string) error {
	nodes, err := ParseHTML(e.doc, src)
	if err != nil {
		return err
	}
	e.ReplaceChildren(nodes...)
	return nil
}

// Attributes returns a snapshot of the attributes in insertion order.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	v, _ := e.LookupAttribute(name)
	return v
}

// LookupAttribute returns the attribute value and whether it is present.
func (e *Element) LookupAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.LookupAttribute(name)
	return ok
}

// SetAttribute sets an attribute. Setting "style" replaces the inline
// style declarations with the parsed value.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	e.setAttr(name, value)
	if name == "style" {
		e.style.parse(value)
	}
}

func (e *Element) setAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			break
		}
	}
	if name == "style" {
		e.style.decls = nil
	}
}

// ID returns the id attribute.
func (e *Element) ID() string { return e.GetAttribute("id") }

// ClassName returns the class attribute.
func (e *Element) ClassName() string { return e.GetAttribute("class") }

// SetClassName sets the class attribute.
func (e *Element) SetClassName(s string) { e.SetAttribute("class", s) }

// HasClass reports whether name is one of the element's classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.ClassName()) {
		if c == name {
			return true
		}
	}
	return false
}

// Style returns the inline style declaration.
func (e *Element) Style() *Style {
	e.style.el = e
	return &e.style
}

// Value returns the current value of a form control.
func (e *Element) Value() string {
	if e.valueDirty {
		return e.value
	}
	return e.GetAttribute("value")
}

// SetValue sets the current value without touching the value attribute.
func (e *Element) SetValue(v string) {
	e.value = v
	e.valueDirty = true
}

// AttachShadow attaches a shadow root to the element.
func (e *Element) AttachShadow(mode string) (*ShadowRoot, error) {
	if e.shadow != nil {
		return nil, ErrShadowAttached
	}
	sr := &ShadowRoot{host: e, mode: mode}
	sr.doc = e.doc
	sr.self = sr
	e.shadow = sr
	return sr, nil
}

// ShadowRoot returns the attached shadow root, or nil.
func (e *Element) ShadowRoot() *ShadowRoot { return e.shadow }

// DispatchEvent dispatches ev at the element. Bubbling events then visit
// each ancestor element, crossing shadow boundaries to the host. It returns
// false if a listener called PreventDefault.
func (e *Element) DispatchEvent(ev *Event) bool {
	ev.Target = e
	e.fire(e, ev)
	if ev.Bubbles {
		var cur Node = e
		for !ev.stopped {
			cur = ancestor(cur)
			if cur == nil {
				break
			}
			if el, ok := cur.(*Element); ok {
				el.fire(el, ev)
			}
		}
	}
	return !ev.defaultPrevented
}

func ancestor(n Node) Node {
	if sr, ok := n.(*ShadowRoot); ok {
		if sr.host == nil {
			return nil
		}
		return sr.host
	}
	p := n.ParentNode()
	if p == nil {
		return nil
	}
	return p
}

// Click dispatches a bubbling click event.
func (e *Element) Click() bool {
	return e.DispatchEvent(NewEvent("click", true))
}

// Input sets the control's value and dispatches a bubbling input event.
func (e *Element) Input(value string) bool {
	e.SetValue(value)
	return e.DispatchEvent(NewEvent("input", true))
}
