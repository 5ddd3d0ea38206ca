package router

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/einblatt-dev/einblatt/pkg/dom"
)

func newWindow(t *testing.T, rawURL string) *dom.Window {
	t.Helper()
	w, err := dom.NewWindow(rawURL)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"", ModeBrowser, false},
		{"browser", ModeBrowser, false},
		{"HASH", ModeHash, false},
		{"memory", ModeMemory, false},
		{"history", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if tt.err && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewStrategy(t *testing.T) {
	w := newWindow(t, "http://example.test/")

	if _, err := NewStrategy(ModeBrowser, nil, "", ""); !errors.Is(err, ErrNoWindow) {
		t.Errorf("browser without window: %v", err)
	}
	if _, err := NewStrategy(ModeHash, nil, "", ""); !errors.Is(err, ErrNoWindow) {
		t.Errorf("hash without window: %v", err)
	}
	if _, err := NewStrategy("bogus", w, "", ""); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("bogus mode: %v", err)
	}

	s, err := NewStrategy(ModeMemory, nil, "", "/start")
	if err != nil {
		t.Fatal(err)
	}
	if s.CurrentPath() != "/start" {
		t.Errorf("memory initial = %q", s.CurrentPath())
	}
	if s, _ := NewStrategy("", w, "", ""); s == nil {
		t.Error("empty mode should default to browser")
	} else if _, ok := s.(*HistoryStrategy); !ok {
		t.Errorf("empty mode built %T", s)
	}
}

func TestMemoryStrategyNotifiesSynchronously(t *testing.T) {
	s := NewMemoryStrategy("")
	if s.CurrentPath() != "/" {
		t.Fatalf("initial path = %q", s.CurrentPath())
	}

	var order []string
	s.Listen(func(p string) { order = append(order, "a:"+p) })
	stop := s.Listen(func(p string) { order = append(order, "b:"+p) })

	s.Navigate("/x")
	if len(order) != 2 || order[0] != "a:/x" || order[1] != "b:/x" {
		t.Fatalf("listeners not called in order before return: %v", order)
	}

	// The same path again still notifies.
	s.Navigate("/x")
	if len(order) != 4 {
		t.Errorf("repeat navigation did not notify: %v", order)
	}

	stop()
	stop()
	s.Navigate("/y")
	if len(order) != 5 || order[4] != "a:/y" || s.Listeners() != 1 {
		t.Errorf("unsubscribe failed: %v", order)
	}
	if s.CurrentPath() != "/y" {
		t.Errorf("CurrentPath = %q", s.CurrentPath())
	}
}

func TestMemoryStrategyUnsubscribeDuringNotify(t *testing.T) {
	s := NewMemoryStrategy("/")
	calls := 0
	var stop func()
	stop = s.Listen(func(string) {
		calls++
		stop()
	})
	s.Listen(func(string) { calls++ })

	s.Navigate("/a")
	s.Navigate("/b")
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestHistoryStrategy(t *testing.T) {
	w := newWindow(t, "http://example.test/app/users?page=2")
	s := NewHistoryStrategy(w, "/app/")

	if s.Basename() != "/app" {
		t.Errorf("Basename = %q", s.Basename())
	}
	if got := s.CurrentPath(); got != "/users?page=2" {
		t.Errorf("CurrentPath = %q", got)
	}

	var got []string
	s.Listen(func(p string) { got = append(got, p) })

	s.Navigate("/about")
	if len(got) != 0 {
		t.Fatal("history navigation must not notify synchronously")
	}
	if w.Location().Pathname() != "/app/about" {
		t.Errorf("pathname = %q", w.Location().Pathname())
	}
	w.Flush()
	if len(got) != 1 || got[0] != "/about" {
		t.Fatalf("notifications = %v", got)
	}

	w.History().Back()
	w.Flush()
	if len(got) != 2 || got[1] != "/users?page=2" {
		t.Errorf("back notifications = %v", got)
	}

	if s.Href("/x") != "/app/x" {
		t.Errorf("Href = %q", s.Href("/x"))
	}
}

func TestHistoryStrategyDropsInvalidPath(t *testing.T) {
	w := newWindow(t, "http://example.test/app/users")
	s := NewHistoryStrategy(w, "/app")
	var logs bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	calls := 0
	s.Listen(func(string) { calls++ })

	s.Navigate("/a%zz")
	w.Flush()
	if calls != 0 {
		t.Errorf("dropped navigation notified %d times", calls)
	}
	if got := s.CurrentPath(); got != "/users" {
		t.Errorf("CurrentPath = %q", got)
	}
	if !strings.Contains(logs.String(), CodeInvalidPath) {
		t.Errorf("expected %s in log, got %q", CodeInvalidPath, logs.String())
	}
}

func TestRouterBrowserModeSurvivesInvalidPath(t *testing.T) {
	w := newWindow(t, "http://example.test/user/1")
	var logs bytes.Buffer
	r, err := New(Config{Routes: demoTable(), Mode: ModeBrowser, Window: w},
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Destroy()

	r.Navigate("/user/%zz")
	w.Flush()
	if got := r.Current().Peek().Path; got != "/user/1" {
		t.Errorf("Path = %q", got)
	}
	if !strings.Contains(logs.String(), "E305") {
		t.Errorf("log = %q", logs.String())
	}

	r.Navigate("/user/2")
	w.Flush()
	if got := r.Current().Peek().Path; got != "/user/2" {
		t.Errorf("Path after valid navigation = %q", got)
	}
}

func TestHistoryStrategyBasenameBoundary(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://example.test/app", "/"},
		{"http://example.test/app/", "/"},
		{"http://example.test/application", "/application"},
		{"http://example.test/other", "/other"},
	}
	for _, tt := range tests {
		s := NewHistoryStrategy(newWindow(t, tt.url), "/app")
		if got := s.CurrentPath(); got != tt.want {
			t.Errorf("%s: CurrentPath = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestHashStrategy(t *testing.T) {
	w := newWindow(t, "http://example.test/index.html")
	s := NewHashStrategy(w)

	if s.CurrentPath() != "/" {
		t.Errorf("empty hash path = %q", s.CurrentPath())
	}

	var got []string
	stop := s.Listen(func(p string) { got = append(got, p) })

	s.Navigate("/user/1")
	if len(got) != 0 {
		t.Fatal("hash navigation must not notify synchronously")
	}
	if w.Location().Hash() != "#/user/1" || s.CurrentPath() != "/user/1" {
		t.Errorf("hash = %q", w.Location().Hash())
	}
	w.Flush()
	if len(got) != 1 || got[0] != "/user/1" {
		t.Fatalf("notifications = %v", got)
	}

	stop()
	s.Navigate("/user/2")
	w.Flush()
	if len(got) != 1 {
		t.Errorf("listener called after unsubscribe: %v", got)
	}
	if s.Href("/a") != "#/a" {
		t.Errorf("Href = %q", s.Href("/a"))
	}
}
