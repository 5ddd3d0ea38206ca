package el

// element splits args into props and children, the same way for every tag.
func element(tag string, args []any) Descriptor {
	d := Descriptor{tag: tag}
	for _, arg := range args {
		switch v := arg.(type) {
		case Prop:
			if v.Key != "" {
				d.props = append(d.props, v)
			}
		case Props:
			d.props = append(d.props, v...)
		case []Prop:
			d.props = append(d.props, v...)
		default:
			d.children = append(d.children, C(arg))
		}
	}
	return d
}

// E describes an element with an arbitrary tag from variadic args.
func E(tag string, args ...any) Descriptor { return element(tag, args) }

func A(args ...any) Descriptor { return element("a", args) }
func Article(args ...any) Descriptor { return element("article", args) }
func Aside(args ...any) Descriptor { return element("aside", args) }
func B(args ...any) Descriptor { return element("b", args) }
func Br(args ...any) Descriptor { return element("br", args) }
func Button(args ...any) Descriptor { return element("button", args) }
func Code(args ...any) Descriptor { return element("code", args) }
func Div(args ...any) Descriptor { return element("div", args) }
func Em(args ...any) Descriptor { return element("em", args) }
func Footer(args ...any) Descriptor { return element("footer", args) }
func Form(args ...any) Descriptor { return element("form", args) }
func H1(args ...any) Descriptor { return element("h1", args) }
func H2(args ...any) Descriptor { return element("h2", args) }
func H3(args ...any) Descriptor { return element("h3", args) }
func Header(args ...any) Descriptor { return element("header", args) }
func Hr(args ...any) Descriptor { return element("hr", args) }
func Img(args ...any) Descriptor { return element("img", args) }
func Input(args ...any) Descriptor { return element("input", args) }
func Label(args ...any) Descriptor { return element("label", args) }
func Li(args ...any) Descriptor { return element("li", args) }
func Main(args ...any) Descriptor { return element("main", args) }
func Nav(args ...any) Descriptor { return element("nav", args) }
func Ol(args ...any) Descriptor { return element("ol", args) }
func Option(args ...any) Descriptor { return element("option", args) }
func P(args ...any) Descriptor { return element("p", args) }
func Pre(args ...any) Descriptor { return element("pre", args) }
func Section(args ...any) Descriptor { return element("section", args) }
func Select(args ...any) Descriptor { return element("select", args) }
func Small(args ...any) Descriptor { return element("small", args) }
func Span(args ...any) Descriptor { return element("span", args) }
func Strong(args ...any) Descriptor { return element("strong", args) }
func Textarea(args ...any) Descriptor { return element("textarea", args) }
func Ul(args ...any) Descriptor { return element("ul", args) }

// StyleEl describes a <style> element. The name avoids the Style prop helper.
func StyleEl(args ...any) Descriptor { return element("style", args) }
