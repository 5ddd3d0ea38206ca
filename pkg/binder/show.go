package binder

import (
	"math"
	"reflect"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

// Branch is what Show displays: either a callback receiving the truthy
// condition value, or pre-built nodes.
type Branch struct {
	render func(v any) dom.Node
	nodes  []dom.Node
}

// Render returns a branch that calls fn with the condition value every time
// the branch is shown. Its output is owned by the Show container.
func Render(fn func(v any) dom.Node) Branch {
	return Branch{render: fn}
}

// Nodes returns a branch of pre-built nodes. They are detached, not
// disposed, when hidden, so their bindings keep working across toggles.
func Nodes(nodes ...dom.Node) Branch {
	var flat []dom.Node
	for _, n := range nodes {
		if n != nil {
			flat = append(flat, topLevel(n)...)
		}
	}
	return Branch{nodes: flat}
}

// IsZero reports whether the branch displays nothing.
func (br Branch) IsZero() bool {
	return br.render == nil && len(br.nodes) == 0
}

func (br Branch) mount(s *Slot, v any) {
	if br.render != nil {
		s.Render(func() dom.Node { return br.render(v) })
		return
	}
	s.Place(br.nodes...)
}

// Show returns a div whose content follows when. An el.Dynamic condition is
// re-read by an effect; any other value is a static condition. Whenever the
// condition changes the container is cleared, then filled with branch if
// the condition is truthy or with the first fallback otherwise.
func (b *Binder) Show(when any, branch Branch, fallback ...Branch) *dom.Element {
	slot := b.NewSlot("div")
	var alt Branch
	if len(fallback) > 0 {
		alt = fallback[0]
	}

	cond, reactiveCond := when.(el.Dynamic)
	b.Watch(slot.Host(), func() {
		v := when
		if reactiveCond {
			v = cond.Get()
		}
		switch {
		case Truthy(v):
			branch.mount(slot, v)
		case !alt.IsZero():
			alt.mount(slot, nil)
		default:
			slot.Clear()
		}
	})
	return slot.Host()
}

// When is Show for a typed reactive value.
func When[T any](b *Binder, r reactive.Readable[T], fn func(T) dom.Node, fallback ...Branch) *dom.Element {
	return b.Show(el.Reactive(r), Render(func(v any) dom.Node {
		return fn(v.(T))
	}), fallback...)
}

// Truthy reports whether v counts as true: false, nil, zero numbers, NaN,
// the empty string and nil pointers, maps, slices, funcs and channels are
// false; everything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
