package reactive

import "reflect"

// signalBase provides type-erased subscriber management shared by Signal and Memo.
type signalBase struct {
	id uint64

	// subs are kept in subscription order; notification follows it.
	subs []Listener
}

// subscribe adds l unless a listener with the same ID is already present.
func (s *signalBase) subscribe(l Listener) {
	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

func (s *signalBase) unsubscribe(l Listener) {
	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notifySubscribers marks every current subscriber dirty. The list is copied
// first because re-running effects resubscribe while we iterate.
func (s *signalBase) notifySubscribers() {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)

	if runtime.batchDepth > 0 {
		runtime.pending = append(runtime.pending, subs...)
		return
	}
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// Signal is a mutable reactive value.
type Signal[T any] struct {
	base  signalBase
	value T
	equal func(T, T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	track(&s.base)
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores value and notifies subscribers if it differs from the current one.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.base.notifySubscribers()
}

// Update replaces the value with fn(current).
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals configures the equality function used by Set.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// NeverEqual is an equality function that reports every write as a change.
// Use it with WithEquals when identity, not value, is what subscribers track.
func NeverEqual[T any](T, T) bool {
	return false
}

// defaultEquals uses == for basic kinds and reflect.DeepEqual for the rest.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
