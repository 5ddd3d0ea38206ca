package dom

import "strings"

// Document creates nodes and holds the html, head and body elements.
type Document struct {
	root *Element
	head *Element
	body *Element
}

// NewDocument returns a document with empty head and body.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("html")
	d.head = d.CreateElement("head")
	d.body = d.CreateElement("body")
	d.root.AppendChild(d.head)
	d.root.AppendChild(d.body)
	return d
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Element {
	e := &Element{tag: strings.ToLower(tag)}
	e.doc = d
	e.self = e
	e.style.el = e
	return e
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) *Text {
	t := &Text{data: data}
	t.doc = d
	return t
}

// CreateDocumentFragment creates an empty fragment.
func (d *Document) CreateDocumentFragment() *Fragment {
	f := &Fragment{}
	f.doc = d
	f.self = f
	return f
}

// DocumentElement returns the html element.
func (d *Document) DocumentElement() *Element { return d.root }

// Head returns the head element.
func (d *Document) Head() *Element { return d.head }

// Body returns the body element.
func (d *Document) Body() *Element { return d.body }

// GetElementByID returns the first element in the document with the id.
func (d *Document) GetElementByID(id string) *Element {
	return Find(d.root, ByID(id))
}
