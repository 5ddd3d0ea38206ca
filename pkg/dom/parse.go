package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses src as body content and returns the top-level nodes,
// detached. Comments and doctypes are dropped.
func ParseHTML(doc *Document, src string) ([]Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(src), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}
	out := make([]Node, 0, len(parsed))
	for _, hn := range parsed {
		if n := convert(doc, hn); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func convert(doc *Document, hn *html.Node) Node {
	switch hn.Type {
	case html.TextNode:
		return doc.CreateTextNode(hn.Data)
	case html.ElementNode:
		e := doc.CreateElement(hn.Data)
		for _, a := range hn.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			e.SetAttribute(name, a.Val)
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			if n := convert(doc, c); n != nil {
				e.AppendChild(n)
			}
		}
		return e
	default:
		return nil
	}
}
