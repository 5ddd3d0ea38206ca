package router

// Guard inspects a pending transition and decides how it continues.
// Guards run in registration order, one at a time.
type Guard func(to, from Match) Verdict

// Next is the continuation handed to a ContinuationGuard. Only the first
// call counts; later calls are ignored.
type Next func(v Verdict)

// ContinuationGuard is a guard that reports its verdict through next,
// possibly after it returns. A guard that never calls next stalls the
// transition: nothing is committed and no error is raised.
type ContinuationGuard func(to, from Match, next Next)

type verdictKind uint8

const (
	verdictProceed verdictKind = iota
	verdictRedirect
	verdictStall
	// verdictPending means a continuation guard returned without calling next.
	verdictPending
)

func (k verdictKind) String() string {
	switch k {
	case verdictProceed:
		return "proceed"
	case verdictRedirect:
		return "redirect"
	case verdictStall:
		return "stall"
	case verdictPending:
		return "pending"
	}
	return "unknown"
}

// Verdict is the outcome of one guard step.
type Verdict struct {
	kind   verdictKind
	path   string
	route  *Route
	params Params
}

// Proceed continues with the next guard, or commits after the last one.
func Proceed() Verdict { return Verdict{kind: verdictProceed} }

// Redirect abandons the transition and navigates to path instead.
func Redirect(path string) Verdict { return Verdict{kind: verdictRedirect, path: path} }

// RedirectTo abandons the transition and navigates to route built with params.
func RedirectTo(route *Route, params Params) Verdict {
	return Verdict{kind: verdictRedirect, route: route, params: params}
}

// Stall abandons the transition silently. The current match stays.
func Stall() Verdict { return Verdict{kind: verdictStall} }

// Target returns the redirect path, or "" for other verdicts.
func (v Verdict) Target() string {
	if v.kind != verdictRedirect {
		return ""
	}
	if v.route != nil {
		return v.route.Build(v.params)
	}
	return v.path
}

// IsRedirect reports whether v is a redirect.
func (v Verdict) IsRedirect() bool { return v.kind == verdictRedirect }

func (v Verdict) String() string {
	if v.kind == verdictRedirect {
		return "redirect " + v.Target()
	}
	return v.kind.String()
}

// guardEntry is a registered guard. Exactly one of fn and cont is set.
type guardEntry struct {
	fn   Guard
	cont ContinuationGuard
}

// transition is one walk over a snapshot of the guard list. index is the
// guard to run next; the walk ends at a commit, a redirect or a stall.
// suspended is set while a continuation guard holds next.
type transition struct {
	id        string
	to        Match
	from      Match
	guards    []*guardEntry
	index     int
	done      bool
	suspended bool
	trace     *transitionSpan
}

// run executes the guard at t.index and returns its verdict. A
// continuation guard that defers next yields verdictPending; the late call
// is delivered to resume.
func (t *transition) run(g *guardEntry, resume func(Verdict)) Verdict {
	if g.fn != nil {
		return g.fn(t.to, t.from)
	}

	var (
		called  bool
		inline  = true
		verdict Verdict
	)
	g.cont(t.to, t.from, func(v Verdict) {
		if called {
			return
		}
		called = true
		if inline {
			verdict = v
			return
		}
		resume(v)
	})
	inline = false
	if !called {
		return Verdict{kind: verdictPending}
	}
	return verdict
}
