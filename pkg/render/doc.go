// Package render serializes dom trees to HTML.
//
// It is used to print a mounted application from the command line, to build
// the dev server's page shell, and to compare rendered output in tests.
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := r.RenderToString(doc.Body())
//
// Text and attribute values are escaped. Void elements have no closing tag,
// the contents of style and script elements are written raw, and an
// attached shadow root is written as a declarative
// <template shadowrootmode="..."> first child of its host.
package render
