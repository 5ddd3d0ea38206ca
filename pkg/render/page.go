package render

import (
	"io"

	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// PageData describes a complete HTML document.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// BaseHref, when set, is written as <base href>.
	BaseHref string

	// Styles are inline stylesheets written into the head.
	Styles []string

	// Scripts are written at the end of the body.
	Scripts []ScriptTag

	// Body holds the nodes placed inside <body>. It may be nil.
	Body dom.Node
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Module bool
	Inline string
}

// RenderPage writes a full document for page.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	ew := &errWriter{w: w}
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + EscapeAttr(lang) + `">` + "\n")
	ew.WriteString("<head>\n")
	ew.WriteString(`<meta charset="utf-8">` + "\n")
	if page.BaseHref != "" {
		ew.WriteString(`<base href="` + EscapeAttr(page.BaseHref) + `">` + "\n")
	}
	if page.Title != "" {
		ew.WriteString("<title>" + EscapeText(page.Title) + "</title>\n")
	}
	for _, css := range page.Styles {
		ew.WriteString("<style>" + css + "</style>\n")
	}
	ew.WriteString("</head>\n")
	ew.WriteString("<body>\n")

	if page.Body != nil {
		r.renderNode(ew, page.Body, 0, false)
		if !r.config.Pretty {
			ew.WriteString("\n")
		}
	}

	for _, s := range page.Scripts {
		ew.WriteString("<script")
		if s.Module {
			ew.WriteString(` type="module"`)
		}
		if s.Src != "" {
			ew.WriteString(` src="` + EscapeAttr(s.Src) + `"`)
		}
		ew.WriteString(">" + s.Inline + "</script>\n")
	}
	ew.WriteString("</body>\n</html>\n")
	return ew.err
}
