package binder

import (
	"strings"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// propKind is the closed set of ways a prop can apply to an element.
type propKind uint8

const (
	propSkip propKind = iota
	propEvent
	propClass
	propStyleObject
	propStyleText
	propFor
	propBoolean
	propReactive
	propAttr
	propInvalid
)

func (k propKind) String() string {
	switch k {
	case propSkip:
		return "skip"
	case propEvent:
		return "event"
	case propClass:
		return "class"
	case propStyleObject:
		return "style-object"
	case propStyleText:
		return "style-text"
	case propFor:
		return "for"
	case propBoolean:
		return "boolean"
	case propReactive:
		return "reactive"
	case propAttr:
		return "attribute"
	default:
		return "invalid"
	}
}

// classifyProp decides, once per prop, how it applies.
func classifyProp(p el.Prop) propKind {
	v := p.Value
	switch v.Kind() {
	case el.KindHandler:
		if eventName(p.Key) == "" || v.Handler() == nil {
			return propInvalid
		}
		return propEvent
	case el.KindStyle:
		if p.Key != "style" {
			return propInvalid
		}
		return propStyleObject
	}

	if p.Key == "" || p.Key == "children" || p.Key == "key" {
		return propSkip
	}
	switch p.Key {
	case "class", "className":
		if v.Kind() == el.KindLiteral && v.Literal() == nil {
			return propSkip
		}
		return propClass
	case "htmlFor":
		if v.Kind() == el.KindLiteral && v.Literal() == nil {
			return propSkip
		}
		return propFor
	}

	if v.Kind() == el.KindReactive {
		return propReactive
	}
	switch v.Literal().(type) {
	case nil:
		return propSkip
	case bool:
		return propBoolean
	case string:
		if p.Key == "style" {
			return propStyleText
		}
	}
	return propAttr
}

// eventName returns the lower-cased event for an "on"-prefixed key, or "".
func eventName(key string) string {
	if len(key) <= 2 || !strings.EqualFold(key[:2], "on") {
		return ""
	}
	return strings.ToLower(key[2:])
}

func (b *Binder) applyProp(e *dom.Element, p el.Prop) {
	v := p.Value
	switch classifyProp(p) {
	case propSkip:
	case propEvent:
		remove := e.AddEventListener(eventName(p.Key), v.Handler())
		dom.Own(e, remove)
	case propClass:
		if v.Kind() == el.KindReactive {
			d := v.Dynamic()
			b.Watch(e, func() {
				e.SetClassName(el.Stringify(d.Get()))
			})
			return
		}
		e.SetClassName(el.Stringify(v.Literal()))
	case propStyleObject:
		style := e.Style()
		for _, decl := range v.Style() {
			style.Set(decl.Name, decl.Value)
		}
	case propStyleText:
		e.SetAttribute("style", v.Literal().(string))
	case propFor:
		if v.Kind() == el.KindReactive {
			d := v.Dynamic()
			b.Watch(e, func() { setAttr(e, "for", d.Get()) })
			return
		}
		e.SetAttribute("for", el.Stringify(v.Literal()))
	case propBoolean:
		if v.Literal().(bool) {
			e.SetAttribute(p.Key, "")
		} else {
			e.RemoveAttribute(p.Key)
		}
	case propReactive:
		d := v.Dynamic()
		key := p.Key
		b.Watch(e, func() { setAttr(e, key, d.Get()) })
	case propAttr:
		e.SetAttribute(p.Key, el.Stringify(v.Literal()))
	default:
		b.logger.Warn("skipping prop that cannot apply",
			"code", CodeInvalidProp,
			"key", p.Key,
			"kind", v.Kind().String(),
			"tag", e.TagName(),
		)
	}
}

// setAttr applies a reactive attribute value: nil removes the attribute,
// booleans toggle presence, anything else is stringified.
func setAttr(e *dom.Element, key string, v any) {
	switch x := v.(type) {
	case nil:
		e.RemoveAttribute(key)
	case bool:
		if x {
			e.SetAttribute(key, "")
		} else {
			e.RemoveAttribute(key)
		}
	default:
		e.SetAttribute(key, el.Stringify(v))
	}
}
