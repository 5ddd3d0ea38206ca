package reactive

// Memo is a cached computation that tracks its dependencies.
// It is lazy: the value is computed on the first read after an invalidation,
// so several writes between reads cost one recomputation.
type Memo[T any] struct {
	base    signalBase
	compute func() T
	value   T
	valid   bool
	sources []*signalBase

	// computing guards against a memo reading itself.
	computing bool
}

// NewMemo creates a memo. compute does not run until the first read.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if needed, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	track(&m.base)
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// Peek returns the value without subscribing. It still recomputes when stale.
func (m *Memo[T]) Peek() T {
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// MarkDirty invalidates the cached value and propagates to dependents.
func (m *Memo[T]) MarkDirty() {
	if !m.valid {
		return
	}
	m.valid = false
	m.base.notifySubscribers()
}

// Dispose unsubscribes the memo from its sources. A later read recomputes
// and subscribes again.
func (m *Memo[T]) Dispose() {
	for _, s := range m.sources {
		s.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.valid = false
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

func (m *Memo[T]) addSource(s *signalBase) {
	for _, existing := range m.sources {
		if existing == s {
			return
		}
	}
	m.sources = append(m.sources, s)
}

func (m *Memo[T]) recompute() {
	if m.computing {
		panic("reactive: memo read during its own computation")
	}
	m.computing = true
	defer func() { m.computing = false }()

	for _, s := range m.sources {
		s.unsubscribe(m)
	}
	m.sources = m.sources[:0]

	old := setCurrentListener(m)
	defer setCurrentListener(old)

	m.value = m.compute()
	m.valid = true
}
