package reactive

// Listener is anything that can be notified when a dependency changes.
// Implemented by memos and effects.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// Memos invalidate their cached value, effects re-run.
	MarkDirty()

	// ID returns a unique identifier used for deduplication.
	ID() uint64
}

// Cleanup is returned by an effect function. It runs before the effect
// re-runs and when the effect is disposed.
type Cleanup func()

// Readable is a read-only view of a reactive value.
// Both *Signal[T] and *Memo[T] satisfy it.
type Readable[T any] interface {
	// Get returns the value and subscribes the current listener.
	Get() T
	// Peek returns the value without subscribing.
	Peek() T
}

// sourced is a listener that records what it read so it can unsubscribe.
type sourced interface {
	Listener
	addSource(s *signalBase)
}
