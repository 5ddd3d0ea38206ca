package dom

import (
	"errors"
	"testing"
)

func newWindow(t *testing.T, rawURL string) *Window {
	t.Helper()
	w, err := NewWindow(rawURL)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func TestNewWindowLocation(t *testing.T) {
	w := newWindow(t, "http://example.test/app/users?x=1#top")
	loc := w.Location()
	if loc.Pathname() != "/app/users" || loc.Search() != "?x=1" || loc.Hash() != "#top" {
		t.Errorf("unexpected location %q %q %q", loc.Pathname(), loc.Search(), loc.Hash())
	}
	if loc.Href() != "http://example.test/app/users?x=1#top" {
		t.Errorf("unexpected href %q", loc.Href())
	}

	if _, err := NewWindow("/relative"); err == nil {
		t.Error("relative window url should fail")
	}
}

func TestPushStateFiresNothing(t *testing.T) {
	w := newWindow(t, "http://example.test/")
	fired := 0
	w.AddEventListener("popstate", func(*Event) { fired++ })

	if err := w.History().PushState(nil, "/a/b"); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	if w.Location().Pathname() != "/a/b" {
		t.Errorf("expected /a/b, got %q", w.Location().Pathname())
	}
	if fired != 0 {
		t.Error("pushState must not fire popstate")
	}
	if w.History().Length() != 2 {
		t.Errorf("expected 2 entries, got %d", w.History().Length())
	}
}

func TestPushStateCrossOrigin(t *testing.T) {
	w := newWindow(t, "http://example.test/")
	if err := w.History().PushState(nil, "http://other.test/"); !errors.Is(err, ErrCrossOrigin) {
		t.Errorf("expected ErrCrossOrigin, got %v", err)
	}
}

func TestBackIsAsynchronous(t *testing.T) {
	w := newWindow(t, "http://example.test/one")
	_ = w.History().PushState("s2", "/two")

	var state any
	fired := 0
	w.AddEventListener("popstate", func(ev *Event) {
		fired++
		state = ev.Detail
	})

	w.History().Back()
	if fired != 0 || w.Location().Pathname() != "/two" {
		t.Fatal("traversal should wait for the next task")
	}
	w.Flush()
	if fired != 1 || w.Location().Pathname() != "/one" || state != nil {
		t.Errorf("unexpected state after back: fired=%d path=%q state=%v", fired, w.Location().Pathname(), state)
	}

	w.History().Forward()
	w.Flush()
	if state != "s2" {
		t.Errorf("expected forward state s2, got %v", state)
	}

	w.History().Go(5)
	if w.Flush() != 1 || w.Location().Pathname() != "/two" {
		t.Error("out of range traversal should do nothing")
	}
}

func TestSetHashQueuesHashChange(t *testing.T) {
	w := newWindow(t, "http://example.test/")
	var detail HashChange
	fired := 0
	w.AddEventListener("hashchange", func(ev *Event) {
		fired++
		detail = ev.Detail.(HashChange)
	})

	w.Location().SetHash("/user/1")
	if w.Location().Hash() != "#/user/1" {
		t.Errorf("unexpected hash %q", w.Location().Hash())
	}
	if fired != 0 {
		t.Fatal("hashchange must be asynchronous")
	}
	w.Flush()
	if fired != 1 || detail.NewURL != "http://example.test/#/user/1" || detail.OldURL != "http://example.test/" {
		t.Errorf("unexpected hashchange %d %+v", fired, detail)
	}

	w.Location().SetHash("#/user/1")
	w.Flush()
	if fired != 1 {
		t.Error("setting the same hash should not fire")
	}
}

func TestBackAcrossHashFiresBoth(t *testing.T) {
	w := newWindow(t, "http://example.test/")
	w.Location().SetHash("#/a")
	w.Flush()

	var got []string
	w.AddEventListener("popstate", func(*Event) { got = append(got, "popstate") })
	w.AddEventListener("hashchange", func(*Event) { got = append(got, "hashchange") })
	w.History().Back()
	w.Flush()

	if len(got) != 2 || got[0] != "popstate" || got[1] != "hashchange" {
		t.Errorf("unexpected events %v", got)
	}
	if w.Location().Hash() != "" {
		t.Errorf("expected empty hash, got %q", w.Location().Hash())
	}
}
