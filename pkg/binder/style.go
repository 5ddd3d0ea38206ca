package binder

import (
	"strconv"
	"strings"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// IDSource hands out unique identifiers.
type IDSource interface {
	NextID() string
}

// Counter is a monotonic IDSource producing prefix0, prefix1 and so on.
// Like everything reactive it is confined to one goroutine.
type Counter struct {
	prefix string
	next   int
}

// NewCounter returns a counter starting at zero.
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// NextID returns the next identifier.
func (c *Counter) NextID() string {
	id := c.prefix + strconv.Itoa(c.next)
	c.next++
	return id
}

// ScopedStyle is a stylesheet whose rules only match inside elements
// carrying its scope attribute.
type ScopedStyle struct {
	ID      string
	Element *dom.Element
}

// Attr returns the prop marking an element as inside the scope.
func (s ScopedStyle) Attr() el.Prop {
	return el.Data("scope", s.ID)
}

// CSS scopes css to a new ID and injects it into the document head.
func (b *Binder) CSS(css string) ScopedStyle {
	id := b.ids.NextID()
	style := b.doc.CreateElement("style")
	style.SetTextContent(ScopeCSS(id, css))
	b.doc.Head().AppendChild(style)
	return ScopedStyle{ID: id, Element: style}
}

// ScopeCSS prefixes every selector in css with [data-scope="id"]. Rules
// nested in at-rules such as @media are scoped too; @keyframes and
// @font-face bodies are left alone.
func ScopeCSS(id, css string) string {
	prefix := `[data-scope="` + id + `"] `
	var sb strings.Builder
	scopeBlock(&sb, css, prefix)
	return sb.String()
}

func scopeBlock(sb *strings.Builder, css, prefix string) {
	for {
		open := strings.IndexByte(css, '{')
		if open < 0 {
			sb.WriteString(css)
			return
		}
		head := css[:open]
		end := matchingBrace(css, open)
		body := css[open+1 : end]
		rest := ""
		if end < len(css) {
			rest = css[end+1:]
		}

		selector := strings.TrimSpace(head)
		lead := head[:len(head)-len(strings.TrimLeft(head, " \t\r\n"))]
		sb.WriteString(lead)
		switch {
		case strings.HasPrefix(selector, "@keyframes"), strings.HasPrefix(selector, "@font-face"):
			sb.WriteString(selector + " {" + body + "}")
		case strings.HasPrefix(selector, "@"):
			sb.WriteString(selector + " {")
			scopeBlock(sb, body, prefix)
			sb.WriteString("}")
		default:
			parts := strings.Split(selector, ",")
			for i, p := range parts {
				parts[i] = prefix + strings.TrimSpace(p)
			}
			sb.WriteString(strings.Join(parts, ", ") + " {" + body + "}")
		}
		if end >= len(css) {
			return
		}
		css = rest
	}
}

// matchingBrace returns the index of the brace closing the one at open, or
// len(css) when it is unbalanced.
func matchingBrace(css string, open int) int {
	depth := 0
	for i := open; i < len(css); i++ {
		switch css[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(css)
}

// IsolatedHTML parses markup into the shadow root of a new div so page
// styles do not reach it. With includeGlobalStyles, copies of the
// document's <style> and stylesheet <link> elements are placed in the
// shadow root first.
func (b *Binder) IsolatedHTML(html string, includeGlobalStyles bool) (*dom.Element, error) {
	host := b.doc.CreateElement("div")
	shadow, err := host.AttachShadow("open")
	if err != nil {
		return nil, err
	}
	if includeGlobalStyles {
		sheets := dom.FindAll(b.doc.DocumentElement(), func(e *dom.Element) bool {
			return e.TagName() == "style" || (e.TagName() == "link" && e.GetAttribute("rel") == "stylesheet")
		})
		for _, s := range sheets {
			shadow.AppendChild(dom.CloneNode(s, true))
		}
	}
	wrapper := b.doc.CreateElement("div")
	if err := wrapper.SetInnerHTML(html); err != nil {
		return nil, err
	}
	shadow.AppendChild(wrapper)
	return host, nil
}
