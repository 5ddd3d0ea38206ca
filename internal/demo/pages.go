package demo

import (
	"fmt"

	"github.com/einblatt-dev/einblatt/el"
	"github.com/einblatt-dev/einblatt/pkg/binder"
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

// WelcomeMessage is the home page's initial heading.
const WelcomeMessage = "Welcome to einblatt!"

// HomePage shows an editable heading bound to a signal.
func HomePage(b *binder.Binder) dom.Node {
	message := reactive.NewSignal(WelcomeMessage)

	return b.Bind(el.Div(el.Class("container"),
		el.H1(el.Class("title"), el.Reactive[string](message)),
		el.P("A small client-side runtime with:"),
		el.Ul(el.Class("features"),
			el.Li("Signal-based reactivity"),
			el.Li("Routing with parameters and guards"),
			el.Li("History, hash and memory navigation"),
			el.Li("Style isolation with shadow roots"),
		),
		el.Input(
			el.Type("text"),
			el.ID("message"),
			el.InputValue(el.Reactive[string](message)),
			el.Placeholder("Edit the welcome message..."),
			el.OnInput(func(ev *dom.Event) {
				if input, ok := ev.Target.(*dom.Element); ok {
					message.Set(input.Value())
				}
			}),
		),
	))
}

const counterCSS = `
.panel { padding: 1.5rem; border-radius: .5rem; box-shadow: 0 2px 8px rgba(0,0,0,.1); }
.value { font-weight: bold; }
`

// CounterPage shows a counter with derived values. Passing ten is logged
// by an effect.
func CounterPage(b *binder.Binder) dom.Node {
	count := reactive.NewSignal(0)
	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })
	tripled := reactive.NewMemo(func() int { return count.Get() * 3 })
	style := b.CSS(counterCSS)

	add := func(delta int) func() {
		return func() { count.Update(func(n int) int { return n + delta }) }
	}

	n := b.Bind(el.Div(el.Class("container"), style.Attr(),
		el.H1(el.Class("title"), "Counter Example"),
		el.Div(el.Class("panel"),
			el.P("Count: ", el.Span(el.Class("value"), el.ID("count"), el.Reactive[int](count))),
			el.P("Doubled: ", el.Span(el.Class("value"), el.ID("doubled"), el.Reactive[int](doubled))),
			el.P("Tripled: ", el.Span(el.Class("value"), el.ID("tripled"), el.Reactive[int](tripled))),
			el.Div(el.Class("actions"),
				el.Button(el.ID("increment"), el.OnClick(add(1)), "Increment"),
				el.Button(el.ID("decrement"), el.OnClick(add(-1)), "Decrement"),
				el.Button(el.ID("reset"), el.OnClick(func() { count.Set(0) }), "Reset"),
			),
		),
		el.P(el.Class("note"), el.Strong("Note: "), "Increment past 10 to see an effect in the log."),
	))

	b.Watch(n, func() {
		if v := count.Get(); v > 10 {
			b.Logger().Info("count is greater than 10", "count", v)
		}
	})
	dom.Own(n, doubled.Dispose)
	dom.Own(n, tripled.Dispose)
	dom.Own(n, func() { style.Element.ParentNode().RemoveChild(style.Element) })
	return n
}

// User is the record the user page displays.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// LookupUser returns the demo record for id. User 123 is an admin.
func LookupUser(id string) User {
	role := "User"
	if id == "123" {
		role = "Admin"
	}
	return User{
		ID:    id,
		Name:  "User " + id,
		Email: fmt.Sprintf("user%s@example.com", id),
		Role:  role,
	}
}

// UserPage shows the user named by the route's id parameter.
func UserPage(b *binder.Binder, r *router.Router, m router.Match) dom.Node {
	u := LookupUser(m.Params.Get("id"))

	admin := b.Bind(el.Span(el.Class("role", "admin"), u.Role))
	regular := b.Bind(el.Span(el.Class("role"), u.Role))

	return b.Bind(el.Div(el.Class("container"),
		el.H1(el.Class("title"), "User Details"),
		el.Div(el.Class("panel"),
			el.H2(u.Name),
			el.P(el.Strong("ID: "), u.ID),
			el.P(el.Strong("Email: "), u.Email),
			el.P(el.Strong("Role: "), b.Show(u.Role == "Admin", binder.Nodes(admin), binder.Nodes(regular))),
		),
		el.P(el.Class("note"),
			"Try another user: ",
			router.Link(r, "/user/456", "User 456"),
		),
	))
}

const legacyHTML = `<style>
.container { background: yellow; padding: 20px; border: 3px solid red; }
.title { color: red; font-size: 24px; font-weight: bold; }
p { color: blue; }
</style>
<div class="container">
<h2 class="title">This is Legacy HTML</h2>
<p>These styles are isolated in a shadow root and do not affect the rest of the page.</p>
</div>`

// IsolatedPage embeds markup with conflicting styles in a shadow root.
func IsolatedPage(b *binder.Binder) dom.Node {
	legacy, err := b.IsolatedHTML(legacyHTML, false)
	if err != nil {
		b.Logger().Warn("isolated html failed", "code", "E202", "error", err)
	}

	return b.Bind(el.Div(el.Class("container"),
		el.H1(el.Class("title"), "Style Isolation Example"),
		el.Div(el.Class("panel"),
			el.H2("Normal Content"),
			el.P("This content uses the page styles."),
		),
		el.Div(el.Class("panel"), el.ID("legacy"),
			el.H2("Isolated Legacy HTML"),
			legacy,
		),
		el.Div(el.Class("panel"),
			el.H2("More Normal Content"),
			el.P("The legacy rules for .container and p do not reach this content."),
		),
	))
}

// AboutPage describes the runtime.
func AboutPage(b *binder.Binder) dom.Node {
	return b.Bind(el.Div(el.Class("container"),
		el.H1(el.Class("title"), "About"),
		el.P("einblatt binds element descriptors to DOM nodes without a virtual DOM. ",
			"Reactive props and children each get one effect that keeps the node in sync."),
		el.P("The router matches paths against named templates, runs guards in order and ",
			"publishes the current match as a signal."),
	))
}

// NotFoundPage is shown for paths no other route matches.
func NotFoundPage(b *binder.Binder, r *router.Router, m router.Match) dom.Node {
	return b.Bind(el.Div(el.Class("container", "not-found"),
		el.H1(el.Class("title"), "404"),
		el.P("No page at ", el.Code(m.Path), "."),
		router.Link(r, "/", el.Class("button"), "Go home"),
	))
}
