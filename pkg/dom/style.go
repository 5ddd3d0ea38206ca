package dom

import (
	"strings"
	"unicode"
)

type declaration struct {
	name  string
	value string
}

// Style is an element's inline style declaration. Property names may be
// given in camelCase or kebab-case; they are stored kebab-cased.
type Style struct {
	el    *Element
	decls []declaration
}

// Get returns a property value or "".
func (s *Style) Get(name string) string {
	name = PropertyName(name)
	for _, d := range s.decls {
		if d.name == name {
			return d.value
		}
	}
	return ""
}

// Set assigns a property. An empty value removes it.
func (s *Style) Set(name, value string) {
	s.set(PropertyName(name), value)
	s.sync()
}

// Remove deletes a property.
func (s *Style) Remove(name string) {
	s.set(PropertyName(name), "")
	s.sync()
}

// Len returns the number of declarations.
func (s *Style) Len() int { return len(s.decls) }

// CSSText serializes the declarations as "name: value;" pairs.
func (s *Style) CSSText() string {
	parts := make([]string, 0, len(s.decls))
	for _, d := range s.decls {
		parts = append(parts, d.name+": "+d.value+";")
	}
	return strings.Join(parts, " ")
}

func (s *Style) set(name, value string) {
	for i, d := range s.decls {
		if d.name == name {
			if value == "" {
				s.decls = append(s.decls[:i], s.decls[i+1:]...)
			} else {
				s.decls[i].value = value
			}
			return
		}
	}
	if value != "" {
		s.decls = append(s.decls, declaration{name: name, value: value})
	}
}

// sync mirrors the declarations into the style attribute.
func (s *Style) sync() {
	if s.el == nil {
		return
	}
	if len(s.decls) == 0 {
		for i, a := range s.el.attrs {
			if a.Name == "style" {
				s.el.attrs = append(s.el.attrs[:i], s.el.attrs[i+1:]...)
				break
			}
		}
		return
	}
	s.el.setAttr("style", s.CSSText())
}

func (s *Style) parse(text string) {
	s.decls = nil
	for _, part := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		s.set(PropertyName(strings.TrimSpace(name)), strings.TrimSpace(value))
	}
}

// PropertyName converts a camelCase style property to its kebab-case CSS
// name. Custom properties and names that are already kebab-case pass
// through unchanged.
func PropertyName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
