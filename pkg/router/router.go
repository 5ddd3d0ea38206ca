package router

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

var (
	// ErrUnknownRoute is returned by NavigateName for a name not in the table.
	ErrUnknownRoute = errors.New("router: unknown route")

	// ErrRedirectLoop is logged when guards keep redirecting synchronously.
	ErrRedirectLoop = errors.New("router: redirect limit exceeded")
)

// maxRedirects bounds nested synchronous redirects, which only the memory
// strategy produces.
const maxRedirects = 32

// Config configures a Router.
type Config struct {
	// Routes is the route table. A nil table matches nothing.
	Routes *Table

	// Mode selects a built-in strategy. Ignored when Strategy is set.
	Mode Mode

	// Basename is the path prefix for browser mode.
	Basename string

	// Window backs the browser and hash strategies.
	Window *dom.Window

	// Strategy overrides Mode with a custom strategy.
	Strategy Strategy

	// InitialPath is the starting path for memory mode.
	InitialPath string

	// OnNavigate is called with the new and previous match after every
	// commit, and once at construction with the initial match as both.
	OnNavigate func(to, from Match)
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records transitions and guard timings in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for transition spans. The default is the
// global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) {
		if t != nil {
			r.tracer = t
		}
	}
}

// Router matches paths reported by its Strategy against a route table,
// runs the guard chain and publishes the committed match.
//
// A Router is not safe for concurrent use; like the reactive runtime it
// belongs to one goroutine.
type Router struct {
	routes   *Table
	strategy Strategy
	current  *reactive.Signal[Match]
	guards   []*guardEntry

	unlisten func()
	hook     *reactive.Effect

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	redirects int
	destroyed bool
}

// New creates a router. The initial match is computed synchronously from
// the strategy's current path.
func New(cfg Config, opts ...Option) (*Router, error) {
	r := &Router{
		routes: cfg.Routes,
		logger: slog.Default().With("component", "router"),
		tracer: otel.Tracer(tracerName),
	}
	if r.routes == nil {
		r.routes = NewTable()
	}
	for _, opt := range opts {
		opt(r)
	}

	r.strategy = cfg.Strategy
	if r.strategy == nil {
		s, err := NewStrategy(cfg.Mode, cfg.Window, cfg.Basename, cfg.InitialPath)
		if err != nil {
			return nil, err
		}
		if hs, ok := s.(*HistoryStrategy); ok {
			hs.SetLogger(r.logger)
		}
		r.strategy = s
	}

	// Every commit notifies, even when the new match equals the old one.
	r.current = reactive.NewSignal(r.Match(r.strategy.CurrentPath())).
		WithEquals(reactive.NeverEqual[Match])
	r.unlisten = r.strategy.Listen(r.handle)

	if cfg.OnNavigate != nil {
		onNavigate := cfg.OnNavigate
		prev := r.current.Peek()
		r.hook = reactive.CreateEffect(func() reactive.Cleanup {
			to := r.current.Get()
			from := prev
			prev = to
			reactive.Untracked(func() { onNavigate(to, from) })
			return nil
		})
	}

	r.logger.Debug("router started", "path", r.current.Peek().Path, "routes", r.routes.Len())
	return r, nil
}

// Current returns the committed match. Reading it inside an effect
// subscribes the effect to future commits.
func (r *Router) Current() reactive.Readable[Match] { return r.current }

// Routes returns the route table.
func (r *Router) Routes() *Table { return r.routes }

// Strategy returns the navigation strategy.
func (r *Router) Strategy() Strategy { return r.strategy }

// Match tests path against the route table without navigating.
func (r *Router) Match(path string) Match { return r.routes.Match(path) }

// Href returns the link target for path under the router's strategy.
func (r *Router) Href(path string) string {
	if h, ok := r.strategy.(Hrefer); ok {
		return h.Href(path)
	}
	return path
}

// Navigate asks the strategy to go to path. The resulting match is
// committed when the strategy reports the change, which for the memory
// strategy happens before Navigate returns.
func (r *Router) Navigate(path string) {
	r.logger.Debug("navigate", "path", path)
	r.strategy.Navigate(path)
}

// NavigateTo navigates to route with params substituted into its template.
func (r *Router) NavigateTo(route *Route, params Params) {
	r.Navigate(route.Build(params))
}

// NavigateName navigates to the named route.
func (r *Router) NavigateName(name string, params Params) error {
	route, ok := r.routes.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	r.NavigateTo(route, params)
	return nil
}

// BeforeEach registers a guard. The returned function removes it; a
// transition already in progress keeps the guards it started with.
func (r *Router) BeforeEach(g Guard) (remove func()) {
	return r.addGuard(&guardEntry{fn: g})
}

// BeforeEachFunc registers a continuation guard.
func (r *Router) BeforeEachFunc(g ContinuationGuard) (remove func()) {
	return r.addGuard(&guardEntry{cont: g})
}

func (r *Router) addGuard(g *guardEntry) func() {
	r.guards = append(r.guards, g)
	r.metrics.setGuards(len(r.guards))
	return func() {
		for i, x := range r.guards {
			if x == g {
				r.guards = append(r.guards[:i:i], r.guards[i+1:]...)
				r.metrics.setGuards(len(r.guards))
				return
			}
		}
	}
}

// Guards returns the number of registered guards.
func (r *Router) Guards() int { return len(r.guards) }

// Destroy stops listening to the strategy and detaches the OnNavigate
// hook. Guards and the last committed match are kept.
func (r *Router) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.unlisten()
	if r.hook != nil {
		r.hook.Dispose()
	}
	r.logger.Debug("router destroyed")
}

// handle starts a transition for a path reported by the strategy.
func (r *Router) handle(path string) {
	t := &transition{
		id:     uuid.NewString(),
		to:     r.Match(path),
		from:   r.current.Peek(),
		guards: append([]*guardEntry(nil), r.guards...),
	}
	t.trace = r.startSpan(t)
	r.walk(t)
}

// walk runs guards from t.index until one stops the transition or the list
// is exhausted, in which case the match is committed.
func (r *Router) walk(t *transition) {
	for t.index < len(t.guards) {
		g := t.guards[t.index]
		start := time.Now()
		v := t.run(g, func(v Verdict) { r.resume(t, v) })
		r.metrics.observeGuard(time.Since(start))
		if !r.apply(t, v) {
			return
		}
	}
	r.commit(t)
}

// resume continues a walk after a continuation guard called next late.
func (r *Router) resume(t *transition, v Verdict) {
	if t.done {
		return
	}
	if t.suspended {
		t.suspended = false
		r.metrics.addPending(-1)
		t.trace = r.resumeSpan(t)
	}
	if r.apply(t, v) {
		r.walk(t)
	}
}

// apply acts on a guard verdict and reports whether the walk goes on.
func (r *Router) apply(t *transition, v Verdict) bool {
	switch v.kind {
	case verdictProceed:
		t.index++
		return true
	case verdictRedirect:
		r.redirect(t, v.Target())
	case verdictStall:
		r.finish(t, OutcomeStalled)
	case verdictPending:
		r.logger.Debug("guard pending", "transition", t.id, "guard", t.index, "to", t.to.Path)
		t.suspended = true
		t.trace.suspend(t.index)
		r.metrics.addPending(1)
	}
	return false
}

func (r *Router) commit(t *transition) {
	r.current.Set(t.to)
	r.finish(t, OutcomeCommitted)
}

func (r *Router) redirect(t *transition, target string) {
	r.finish(t, OutcomeRedirected)
	r.logger.Info("navigation redirected", "transition", t.id, "from", t.to.Path, "to", target)

	if r.redirects >= maxRedirects {
		r.logger.Error("redirect loop", "error", ErrRedirectLoop, "to", target)
		return
	}
	r.redirects++
	defer func() { r.redirects-- }()
	r.strategy.Navigate(target)
}

func (r *Router) finish(t *transition, outcome Outcome) {
	t.done = true
	t.trace.end(outcome)
	r.metrics.countTransition(outcome)
	r.logger.Debug("transition",
		"transition", t.id,
		"from", t.from.Path,
		"to", t.to.Path,
		"route", t.to.Name,
		"outcome", string(outcome),
	)
}
