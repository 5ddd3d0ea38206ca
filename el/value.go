package el

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

// ValueKind discriminates a prop Value.
type ValueKind uint8

const (
	// KindLiteral is a plain value set once.
	KindLiteral ValueKind = iota
	// KindReactive is re-applied whenever its dependencies change.
	KindReactive
	// KindHandler is an event listener.
	KindHandler
	// KindStyle is a style object merged onto the element's style.
	KindStyle
)

func (k ValueKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindReactive:
		return "reactive"
	case KindHandler:
		return "handler"
	case KindStyle:
		return "style"
	default:
		return "unknown"
	}
}

// Dynamic is a type-erased reactive read. Calling Get inside an effect
// subscribes the effect to whatever the underlying computation reads.
type Dynamic struct {
	get func() any
}

// Reactive wraps a signal or memo.
func Reactive[T any](r reactive.Readable[T]) Dynamic {
	return Dynamic{get: func() any { return r.Get() }}
}

// Func wraps a computation. It is re-evaluated on every read, tracking
// whatever it reads.
func Func[T any](fn func() T) Dynamic {
	return Dynamic{get: func() any { return fn() }}
}

// Get evaluates the value with dependency tracking.
func (d Dynamic) Get() any {
	if d.get == nil {
		return nil
	}
	return d.get()
}

// Valid reports whether d wraps a computation.
func (d Dynamic) Valid() bool { return d.get != nil }

// StyleDecl is one style property.
type StyleDecl struct {
	Name  string
	Value string
}

// Value is a prop value: exactly one of literal, reactive, handler or style.
type Value struct {
	kind    ValueKind
	literal any
	dynamic Dynamic
	handler func(*dom.Event)
	style   []StyleDecl
}

// Literal returns a literal value.
func Literal(v any) Value { return Value{kind: KindLiteral, literal: v} }

// Bound returns a reactive value.
func Bound(d Dynamic) Value { return Value{kind: KindReactive, dynamic: d} }

// Handler returns an event handler value.
func Handler(fn func(*dom.Event)) Value { return Value{kind: KindHandler, handler: fn} }

// StyleObject returns a style value from declarations in order.
func StyleObject(decls ...StyleDecl) Value {
	return Value{kind: KindStyle, style: append([]StyleDecl(nil), decls...)}
}

// V classifies v once: Value passes through, Dynamic becomes reactive,
// func() and func(*dom.Event) become handlers, []StyleDecl and
// map[string]string become style objects, everything else is literal.
func V(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case Dynamic:
		if !x.Valid() {
			return Literal(nil)
		}
		return Bound(x)
	case func(*dom.Event):
		return Handler(x)
	case func():
		return Handler(func(*dom.Event) { x() })
	case []StyleDecl:
		return StyleObject(x...)
	case map[string]string:
		return StyleObject(sortedDecls(x)...)
	default:
		return Literal(v)
	}
}

func sortedDecls(m map[string]string) []StyleDecl {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	decls := make([]StyleDecl, 0, len(keys))
	for _, k := range keys {
		decls = append(decls, StyleDecl{Name: k, Value: m[k]})
	}
	return decls
}

// Kind returns the value's kind.
func (v Value) Kind() ValueKind { return v.kind }

// Literal returns the literal payload.
func (v Value) Literal() any { return v.literal }

// Dynamic returns the reactive payload.
func (v Value) Dynamic() Dynamic { return v.dynamic }

// Handler returns the handler payload.
func (v Value) Handler() func(*dom.Event) { return v.handler }

// Style returns a copy of the style declarations.
func (v Value) Style() []StyleDecl { return append([]StyleDecl(nil), v.style...) }

// Stringify converts a literal to attribute or text form. Numbers use the
// shortest representation, nil is "".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(toInt64(x), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(toUint64(x), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	}
	return 0
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	}
	return 0
}
