package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty writes block elements on their own indented lines.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// SkipShadow omits shadow roots from the output.
	SkipShadow bool
}

// Renderer serializes dom nodes.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders n, including n itself, to a string.
func (r *Renderer) RenderToString(n dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n to w.
func (r *Renderer) RenderToWriter(w io.Writer, n dom.Node) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, n, 0, false)
	return ew.err
}

// OuterHTML returns the compact serialization of n.
func OuterHTML(n dom.Node) string {
	var sb strings.Builder
	r := NewRenderer(RendererConfig{})
	r.renderNode(&errWriter{w: &sb}, n, 0, false)
	return sb.String()
}

// InnerHTML returns the compact serialization of p's children.
func InnerHTML(p dom.Parent) string {
	var sb strings.Builder
	r := NewRenderer(RendererConfig{})
	ew := &errWriter{w: &sb}
	for _, child := range p.ChildNodes() {
		r.renderNode(ew, child, 0, false)
	}
	return sb.String()
}

// errWriter remembers the first write error so the walk stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) WriteString(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) renderNode(w *errWriter, n dom.Node, depth int, raw bool) {
	switch n := n.(type) {
	case *dom.Text:
		r.renderText(w, n, depth, raw)
	case *dom.Element:
		r.renderElement(w, n, depth)
	case *dom.ShadowRoot:
		r.renderShadow(w, n, depth)
	case *dom.Fragment:
		for _, child := range n.ChildNodes() {
			r.renderNode(w, child, depth, raw)
		}
	case nil:
	default:
		w.err = fmt.Errorf("render: unknown node type %T", n)
	}
}

func (r *Renderer) renderText(w *errWriter, t *dom.Text, depth int, raw bool) {
	data := t.Data()
	if !raw {
		data = EscapeText(data)
	}
	if !r.config.Pretty || depth < 0 {
		w.WriteString(data)
		return
	}
	if strings.TrimSpace(data) == "" {
		return
	}
	r.writeIndent(w, depth)
	w.WriteString(strings.TrimSpace(data))
	w.WriteString("\n")
}

func (r *Renderer) renderElement(w *errWriter, e *dom.Element, depth int) {
	tag := e.TagName()
	pretty := r.config.Pretty && depth >= 0

	if pretty {
		r.writeIndent(w, depth)
	}
	w.WriteString("<" + tag)
	for _, a := range e.Attributes() {
		if a.Value == "" && isBooleanAttr(a.Name) {
			w.WriteString(" " + a.Name)
			continue
		}
		w.WriteString(" " + a.Name + `="` + EscapeAttr(a.Value) + `"`)
	}
	w.WriteString(">")

	if isVoidElement(tag) {
		if pretty {
			w.WriteString("\n")
		}
		return
	}

	children := e.ChildNodes()
	shadow := e.ShadowRoot()
	if r.config.SkipShadow {
		shadow = nil
	}
	raw := rawTextElements[tag]

	// Inline content is written on the opening line.
	childDepth := depth + 1
	block := pretty && (shadow != nil || hasBlockContent(children))
	if !block {
		childDepth = -1
	} else {
		w.WriteString("\n")
	}
	if !r.config.Pretty {
		childDepth = 0
	}

	if shadow != nil {
		r.renderShadow(w, shadow, childDepth)
	}
	for _, child := range children {
		r.renderNode(w, child, childDepth, raw)
	}

	if block {
		r.writeIndent(w, depth)
	}
	w.WriteString("</" + tag + ">")
	if pretty {
		w.WriteString("\n")
	}
}

func (r *Renderer) renderShadow(w *errWriter, s *dom.ShadowRoot, depth int) {
	pretty := r.config.Pretty && depth >= 0
	if pretty {
		r.writeIndent(w, depth)
	}
	w.WriteString(`<template shadowrootmode="` + EscapeAttr(s.Mode()) + `">`)
	children := s.ChildNodes()
	childDepth := depth + 1
	if pretty && hasBlockContent(children) {
		w.WriteString("\n")
	} else {
		pretty = false
		if r.config.Pretty {
			childDepth = -1
		}
	}
	if !r.config.Pretty {
		childDepth = 0
	}
	for _, child := range children {
		r.renderNode(w, child, childDepth, false)
	}
	if pretty {
		r.writeIndent(w, depth)
	}
	w.WriteString("</template>")
	if r.config.Pretty && depth >= 0 {
		w.WriteString("\n")
	}
}

// hasBlockContent reports whether any child is an element that is not
// inline, looking through fragments.
func hasBlockContent(children []dom.Node) bool {
	for _, child := range children {
		switch c := child.(type) {
		case *dom.Element:
			if !isInlineElement(c.TagName()) || hasBlockContent(c.ChildNodes()) {
				return true
			}
		case *dom.Fragment:
			if hasBlockContent(c.ChildNodes()) {
				return true
			}
		}
	}
	return false
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}
