package reactive

import (
	"errors"
	"log/slog"
)

// ErrEffectLoop is logged when an effect keeps invalidating itself.
var ErrEffectLoop = errors.New("reactive: effect re-run limit exceeded")

// maxReruns bounds how many times an effect re-runs back to back because it
// was invalidated while running.
const maxReruns = 100

// Effect is a side effect that re-runs whenever anything it read changes.
// Re-runs happen synchronously inside the write that caused them.
type Effect struct {
	id      uint64
	fn      func() Cleanup
	cleanup Cleanup
	sources []*signalBase

	// scope owns effects created while fn runs; it is disposed before each
	// re-run so nested effects never outlive the run that made them.
	scope *Owner

	running  bool
	dirty    bool
	disposed bool
}

// CreateEffect runs fn immediately and again whenever a value it read changes.
// The effect is attached to the current owner, if any.
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{id: nextID(), fn: fn}
	if owner := CurrentOwner(); owner != nil {
		owner.registerEffect(e)
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. If it is already running the re-run is
// deferred until the current run returns.
func (e *Effect) MarkDirty() {
	if e.disposed {
		return
	}
	if e.running {
		e.dirty = true
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool {
	return e.disposed
}

func (e *Effect) addSource(s *signalBase) {
	for _, existing := range e.sources {
		if existing == s {
			return
		}
	}
	e.sources = append(e.sources, s)
}

func (e *Effect) run() {
	for n := 0; ; n++ {
		if e.disposed {
			return
		}
		if n == maxReruns {
			slog.Default().Warn("effect stopped", "error", ErrEffectLoop, "effect", e.id)
			e.dirty = false
			return
		}
		e.dirty = false
		e.once()
		if !e.dirty {
			return
		}
	}
}

func (e *Effect) once() {
	e.running = true
	defer func() { e.running = false }()

	e.reset()

	if e.scope == nil {
		e.scope = NewOwner(nil)
	}
	prevOwner := setCurrentOwner(e.scope)
	prevListener := setCurrentListener(e)
	defer func() {
		setCurrentListener(prevListener)
		setCurrentOwner(prevOwner)
	}()

	e.cleanup = e.fn()
}

// reset runs the previous cleanup, disposes nested effects and drops
// every subscription.
func (e *Effect) reset() {
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
	if e.scope != nil {
		e.scope.Dispose()
		e.scope = nil
	}
	for _, s := range e.sources {
		s.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

// Dispose stops the effect and runs its cleanup. Calling it again is a no-op.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.reset()
	e.sources = nil
}
