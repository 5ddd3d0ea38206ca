package router

import (
	"errors"
	"reflect"
	"testing"

	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

func demoTable() *Table {
	return NewTable(
		Define("home", "/"),
		Define("user", "/user/:id"),
		Define("login", "/login"),
		Define("fallback", "/fallback"),
		Define("notFound", "*"),
	)
}

func newMemoryRouter(t *testing.T, opts ...Option) *Router {
	t.Helper()
	r, err := New(Config{Routes: demoTable(), Mode: ModeMemory}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func TestRouterEndToEnd(t *testing.T) {
	routes := NewTable(
		Define("home", "/"),
		Define("user", "/user/:id"),
		Define("notFound", "*"),
	)
	r, err := New(Config{Routes: routes, Mode: ModeMemory})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()

	if m := r.Current().Peek(); m.Path != "/" || !m.Is("home") {
		t.Fatalf("initial match = %+v", m)
	}

	r.Navigate("/user/42")
	user, _ := routes.Lookup("user")
	m := r.Current().Peek()
	if m.Path != "/user/42" || m.Route != user || !reflect.DeepEqual(m.Params, Params{"id": "42"}) {
		t.Errorf("after /user/42: %+v", m)
	}

	r.Navigate("/unknown")
	m = r.Current().Peek()
	notFound, _ := routes.Lookup("notFound")
	if m.Path != "/unknown" || m.Route != notFound || len(m.Params) != 0 {
		t.Errorf("after /unknown: %+v", m)
	}
}

func TestRouterNoRouteMatch(t *testing.T) {
	r, err := New(Config{Routes: NewTable(Define("home", "/")), Mode: ModeMemory})
	if err != nil {
		t.Fatal(err)
	}
	r.Navigate("/unknown")
	m := r.Current().Peek()
	if m.Path != "/unknown" || m.Route != nil || m.Params == nil || len(m.Params) != 0 {
		t.Errorf("expected not-found match, got %+v", m)
	}
}

func TestRouterInitialPath(t *testing.T) {
	r, err := New(Config{Routes: demoTable(), Mode: ModeMemory, InitialPath: "/user/9"})
	if err != nil {
		t.Fatal(err)
	}
	if m := r.Current().Peek(); !m.Is("user") || m.Params["id"] != "9" {
		t.Errorf("initial match = %+v", m)
	}
}

func TestRouterConfigErrors(t *testing.T) {
	if _, err := New(Config{Mode: "bogus"}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("bogus mode: %v", err)
	}
	if _, err := New(Config{Mode: ModeHash}); !errors.Is(err, ErrNoWindow) {
		t.Errorf("hash without window: %v", err)
	}
	r, err := New(Config{Mode: ModeMemory})
	if err != nil {
		t.Fatal(err)
	}
	if r.Current().Peek().Found() {
		t.Error("nil table should match nothing")
	}
}

func TestRouterCurrentIsReactive(t *testing.T) {
	r := newMemoryRouter(t)
	var paths []string
	e := reactive.CreateEffect(func() reactive.Cleanup {
		paths = append(paths, r.Current().Get().Path)
		return nil
	})
	defer e.Dispose()

	r.Navigate("/user/1")
	r.Navigate("/user/1")
	want := []string{"/", "/user/1", "/user/1"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestRouterNavigateToAndName(t *testing.T) {
	r := newMemoryRouter(t)
	user, _ := r.Routes().Lookup("user")

	r.NavigateTo(user, Params{"id": "7"})
	if m := r.Current().Peek(); m.Path != "/user/7" {
		t.Errorf("NavigateTo: %+v", m)
	}

	if err := r.NavigateName("user", Params{"id": "8"}); err != nil {
		t.Fatal(err)
	}
	if m := r.Current().Peek(); m.Params["id"] != "8" {
		t.Errorf("NavigateName: %+v", m)
	}

	if err := r.NavigateName("nope", nil); !errors.Is(err, ErrUnknownRoute) {
		t.Errorf("NavigateName(nope) = %v", err)
	}
}

func TestGuardRedirectSkipsLaterGuards(t *testing.T) {
	r := newMemoryRouter(t)

	var calls []string
	r.BeforeEach(func(to, from Match) Verdict {
		calls = append(calls, "1:"+to.Path)
		return Proceed()
	})
	r.BeforeEach(func(to, from Match) Verdict {
		calls = append(calls, "2:"+to.Path)
		if to.Path == "/user/1" {
			return Redirect("/fallback")
		}
		return Proceed()
	})
	r.BeforeEach(func(to, from Match) Verdict {
		calls = append(calls, "3:"+to.Path)
		return Proceed()
	})

	r.Navigate("/user/1")

	if m := r.Current().Peek(); m.Path != "/fallback" || !m.Is("fallback") {
		t.Errorf("committed %+v, want /fallback", m)
	}
	want := []string{"1:/user/1", "2:/user/1", "1:/fallback", "2:/fallback", "3:/fallback"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestContinuationGuardRedirect(t *testing.T) {
	r := newMemoryRouter(t)
	third := 0
	r.BeforeEachFunc(func(to, from Match, next Next) { next(Proceed()) })
	r.BeforeEachFunc(func(to, from Match, next Next) {
		if to.Path == "/user/1" {
			next(Redirect("/fallback"))
			return
		}
		next(Proceed())
	})
	r.BeforeEachFunc(func(to, from Match, next Next) {
		if to.Path == "/user/1" {
			third++
		}
		next(Proceed())
	})

	r.Navigate("/user/1")
	if r.Current().Peek().Path != "/fallback" {
		t.Errorf("committed %q", r.Current().Peek().Path)
	}
	if third != 0 {
		t.Errorf("third guard ran %d times for the original target", third)
	}
}

func TestRedirectToRoute(t *testing.T) {
	r := newMemoryRouter(t)
	user, _ := r.Routes().Lookup("user")
	r.BeforeEach(func(to, from Match) Verdict {
		if to.Is("home") && from.Path != "" {
			return RedirectTo(user, Params{"id": "me"})
		}
		return Proceed()
	})

	r.Navigate("/")
	if m := r.Current().Peek(); m.Path != "/user/me" {
		t.Errorf("committed %+v", m)
	}
}

func TestGuardStallKeepsPreviousMatch(t *testing.T) {
	r := newMemoryRouter(t)
	r.Navigate("/user/1")

	after := 0
	remove := r.BeforeEach(func(to, from Match) Verdict {
		if to.Path == "/login" {
			return Stall()
		}
		return Proceed()
	})
	r.BeforeEach(func(to, from Match) Verdict {
		after++
		return Proceed()
	})

	r.Navigate("/login")
	if m := r.Current().Peek(); m.Path != "/user/1" {
		t.Errorf("stalled transition committed %+v", m)
	}
	if after != 0 {
		t.Error("guard after a stall ran")
	}

	remove()
	r.Navigate("/login")
	if m := r.Current().Peek(); m.Path != "/login" {
		t.Errorf("after removing the guard: %+v", m)
	}
	if r.Guards() != 1 {
		t.Errorf("Guards() = %d", r.Guards())
	}
}

func TestContinuationGuardNeverCalled(t *testing.T) {
	r := newMemoryRouter(t)
	r.BeforeEachFunc(func(to, from Match, next Next) {})

	r.Navigate("/user/5")
	if m := r.Current().Peek(); m.Path != "/" {
		t.Errorf("guard that never continues still committed %+v", m)
	}
}

func TestContinuationGuardResumesLater(t *testing.T) {
	r := newMemoryRouter(t)

	var pending []Next
	r.BeforeEachFunc(func(to, from Match, next Next) {
		pending = append(pending, next)
	})
	second := 0
	r.BeforeEach(func(to, from Match) Verdict {
		second++
		return Proceed()
	})

	r.Navigate("/user/1")
	r.Navigate("/user/2")
	if r.Current().Peek().Path != "/" || len(pending) != 2 || second != 0 {
		t.Fatalf("expected two pending walks, path=%q pending=%d", r.Current().Peek().Path, len(pending))
	}

	// Walks are independent; the later one can finish first.
	pending[1](Proceed())
	if r.Current().Peek().Path != "/user/2" {
		t.Errorf("second walk did not commit")
	}
	pending[0](Proceed())
	if r.Current().Peek().Path != "/user/1" {
		t.Errorf("first walk did not commit")
	}

	// Only the first call to next counts.
	pending[0](Redirect("/login"))
	if r.Current().Peek().Path != "/user/1" || second != 2 {
		t.Errorf("repeated next acted: path=%q second=%d", r.Current().Peek().Path, second)
	}
}

func TestGuardRemovedMidWalkStillRuns(t *testing.T) {
	r := newMemoryRouter(t)
	ran := 0
	var remove func()
	r.BeforeEach(func(to, from Match) Verdict {
		remove()
		return Proceed()
	})
	remove = r.BeforeEach(func(to, from Match) Verdict {
		ran++
		return Proceed()
	})

	r.Navigate("/user/1")
	r.Navigate("/user/2")
	if ran != 1 {
		t.Errorf("removed guard ran %d times, want 1", ran)
	}
}

func TestGuardSeesFromMatch(t *testing.T) {
	r := newMemoryRouter(t)
	var seen []string
	r.BeforeEach(func(to, from Match) Verdict {
		seen = append(seen, from.Path+"->"+to.Path)
		return Proceed()
	})
	r.Navigate("/user/1")
	r.Navigate("/login")
	want := []string{"/->/user/1", "/user/1->/login"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("seen = %v", seen)
	}
}

func TestRedirectLoopIsBounded(t *testing.T) {
	r := newMemoryRouter(t)
	calls := 0
	r.BeforeEach(func(to, from Match) Verdict {
		calls++
		if to.Path == "/a" {
			return Redirect("/b")
		}
		return Redirect("/a")
	})

	r.Navigate("/a")
	if calls != maxRedirects+1 {
		t.Errorf("calls = %d, want %d", calls, maxRedirects+1)
	}
	if r.Current().Peek().Path != "/" {
		t.Errorf("loop committed %q", r.Current().Peek().Path)
	}
}

func TestOnNavigate(t *testing.T) {
	type hop struct{ to, from string }
	var hops []hop
	r, err := New(Config{
		Routes: demoTable(),
		Mode:   ModeMemory,
		OnNavigate: func(to, from Match) {
			hops = append(hops, hop{to.Path, from.Path})
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	r.Navigate("/user/1")
	r.Navigate("/login")
	want := []hop{{"/", "/"}, {"/user/1", "/"}, {"/login", "/user/1"}}
	if !reflect.DeepEqual(hops, want) {
		t.Errorf("hops = %v, want %v", hops, want)
	}

	r.Destroy()
	r.Destroy()
	r.Navigate("/user/2")
	if len(hops) != 3 {
		t.Errorf("OnNavigate ran after Destroy: %v", hops)
	}
}

func TestDestroyKeepsStateAndGuards(t *testing.T) {
	s := NewMemoryStrategy("/")
	r, err := New(Config{Routes: demoTable(), Strategy: s})
	if err != nil {
		t.Fatal(err)
	}
	r.BeforeEach(func(to, from Match) Verdict { return Proceed() })
	r.Navigate("/user/3")
	if s.Listeners() != 1 {
		t.Fatalf("listeners = %d", s.Listeners())
	}

	r.Destroy()
	if s.Listeners() != 0 {
		t.Error("Destroy did not unsubscribe")
	}
	r.Navigate("/login")
	if r.Current().Peek().Path != "/user/3" {
		t.Errorf("match changed after Destroy: %q", r.Current().Peek().Path)
	}
	if r.Guards() != 1 {
		t.Error("Destroy cleared guards")
	}
	if s.CurrentPath() != "/login" {
		t.Error("Navigate should still reach the strategy")
	}
}

func TestRouterHashMode(t *testing.T) {
	w := newWindow(t, "http://example.test/#/user/4")
	r, err := New(Config{Routes: demoTable(), Mode: ModeHash, Window: w})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()

	if m := r.Current().Peek(); !m.Is("user") || m.Params["id"] != "4" {
		t.Fatalf("initial = %+v", m)
	}

	r.Navigate("/login")
	if r.Current().Peek().Path != "/user/4" {
		t.Error("hash mode committed synchronously")
	}
	w.Flush()
	if r.Current().Peek().Path != "/login" {
		t.Errorf("after flush: %q", r.Current().Peek().Path)
	}
	if r.Href("/x") != "#/x" {
		t.Errorf("Href = %q", r.Href("/x"))
	}
}

func TestRouterBrowserMode(t *testing.T) {
	w := newWindow(t, "http://example.test/base/")
	r, err := New(Config{Routes: demoTable(), Mode: ModeBrowser, Basename: "/base", Window: w})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()

	if !r.Current().Peek().Is("home") {
		t.Fatalf("initial = %+v", r.Current().Peek())
	}

	r.Navigate("/user/2?tab=a")
	w.Flush()
	m := r.Current().Peek()
	if !m.Is("user") || m.Params["id"] != "2" || m.Query != "tab=a" {
		t.Errorf("after navigate: %+v", m)
	}
	if w.Location().Pathname() != "/base/user/2" {
		t.Errorf("pathname = %q", w.Location().Pathname())
	}

	w.History().Back()
	w.Flush()
	if !r.Current().Peek().Is("home") {
		t.Errorf("after back: %+v", r.Current().Peek())
	}
	if r.Href("/login") != "/base/login" {
		t.Errorf("Href = %q", r.Href("/login"))
	}
}

func TestRouterAsyncRedirect(t *testing.T) {
	w := newWindow(t, "http://example.test/")
	r, err := New(Config{Routes: demoTable(), Mode: ModeHash, Window: w})
	if err != nil {
		t.Fatal(err)
	}
	r.BeforeEach(func(to, from Match) Verdict {
		if to.Is("user") {
			return Redirect("/login")
		}
		return Proceed()
	})

	r.Navigate("/user/1")
	w.Flush()
	if r.Current().Peek().Path != "/login" {
		t.Errorf("committed %q", r.Current().Peek().Path)
	}
}

func TestMemoryHrefIsPath(t *testing.T) {
	r := newMemoryRouter(t)
	if r.Href("/a") != "/a" {
		t.Errorf("Href = %q", r.Href("/a"))
	}
	if _, ok := r.Strategy().(*MemoryStrategy); !ok {
		t.Errorf("Strategy() = %T", r.Strategy())
	}
}

func TestVerdictString(t *testing.T) {
	user := Compile("/user/:id")
	tests := []struct {
		v    Verdict
		want string
	}{
		{Proceed(), "proceed"},
		{Stall(), "stall"},
		{Redirect("/x"), "redirect /x"},
		{RedirectTo(user, Params{"id": "1"}), "redirect /user/1"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if Proceed().Target() != "" || !Redirect("/y").IsRedirect() || Stall().IsRedirect() {
		t.Error("Target/IsRedirect mismatch")
	}
}
