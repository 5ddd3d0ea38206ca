package el

import "strings"

func ID(id string) Prop { return Attr("id", id) }

// Class joins non-empty class names.
func Class(classes ...string) Prop {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return Attr("class", strings.Join(parts, " "))
}

// ClassOf binds the class attribute to d.
func ClassOf(d Dynamic) Prop { return Prop{Key: "class", Value: Bound(d)} }

func Href(url string) Prop { return Attr("href", url) }
func Src(url string) Prop { return Attr("src", url) }
func Alt(text string) Prop { return Attr("alt", text) }
func Type(t string) Prop { return Attr("type", t) }
func Name(n string) Prop { return Attr("name", n) }
func Title(t string) Prop { return Attr("title", t) }
func Placeholder(p string) Prop { return Attr("placeholder", p) }
func Role(r string) Prop { return Attr("role", r) }
func AriaLabel(label string) Prop { return Attr("aria-label", label) }
func AriaCurrent(v any) Prop { return Attr("aria-current", v) }
func Data(key string, v any) Prop { return Attr("data-"+key, v) }
func InputValue(v any) Prop { return Attr("value", v) }
func Disabled(v any) Prop { return Attr("disabled", v) }
func Checked(v any) Prop { return Attr("checked", v) }
func Hidden(v any) Prop { return Attr("hidden", v) }
func Required(v any) Prop { return Attr("required", v) }
func TabIndex(i int) Prop { return Attr("tabindex", i) }

// For sets the label's target. The htmlFor key is written as "for".
func For(id string) Prop { return Attr("htmlFor", id) }

// StyleText sets the raw style attribute.
func StyleText(css string) Prop { return Attr("style", css) }

// Style merges declarations onto the element's style. Names may be
// camelCase or kebab-case.
func Style(decls ...StyleDecl) Prop { return Prop{Key: "style", Value: StyleObject(decls...)} }

// StyleMap merges a map of declarations, applied in key order.
func StyleMap(m map[string]string) Prop { return Attr("style", m) }

// S is shorthand for a StyleDecl.
func S(name, value string) StyleDecl { return StyleDecl{Name: name, Value: value} }
