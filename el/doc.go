// Package el builds element descriptors: immutable values naming a tag or a
// component, an ordered list of props and a list of children.
//
// Descriptors are plain data. Nothing touches the DOM until a binder turns a
// descriptor into nodes, and whether a prop or child is reactive is decided
// here, at construction time, rather than probed for when binding.
//
// Typical usage:
//
//	import (
//	    "github.com/einblatt-dev/einblatt/pkg/reactive"
//	    . "github.com/einblatt-dev/einblatt/el"
//	)
//
//	count := reactive.NewSignal(0)
//	view := Div(Class("counter"),
//	    Span("Count: ", Reactive[int](count)),
//	    Button(OnClick(func() { count.Update(inc) }), "+"),
//	)
//
// Element constructors take variadic arguments. A Prop (or Props) becomes a
// prop; any other argument becomes a child. Reactive values must be wrapped
// with Reactive or Func.
package el
