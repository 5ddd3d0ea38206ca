package el

import (
	"strings"

	"github.com/einblatt-dev/einblatt/pkg/dom"
)

// EventFunc is the set of accepted handler signatures.
type EventFunc interface {
	func() | func(*dom.Event)
}

// On registers fn for the named event. The prop key is "on" followed by
// the lower-cased event name.
func On[F EventFunc](event string, fn F) Prop {
	return Prop{Key: "on" + strings.ToLower(event), Value: V(any(fn))}
}

func OnClick[F EventFunc](fn F) Prop { return On("click", fn) }
func OnInput[F EventFunc](fn F) Prop { return On("input", fn) }
func OnChange[F EventFunc](fn F) Prop { return On("change", fn) }
func OnSubmit[F EventFunc](fn F) Prop { return On("submit", fn) }
func OnKeyDown[F EventFunc](fn F) Prop { return On("keydown", fn) }
func OnFocus[F EventFunc](fn F) Prop { return On("focus", fn) }
func OnBlur[F EventFunc](fn F) Prop { return On("blur", fn) }
