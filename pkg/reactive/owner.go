package reactive

// Owner is a disposal scope. Disposing an owner disposes its child owners,
// its effects and then runs its cleanups.
//
// Owners form a tree mirroring the mounted view tree: each conditional
// branch or routed view renders inside its own owner.
type Owner struct {
	id       uint64
	parent   *Owner
	children []*Owner
	effects  []*Effect
	cleanups []func()
	disposed bool
}

// NewOwner creates an owner. A non-nil parent disposes it along with itself.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{id: nextID(), parent: parent}
	if parent != nil && !parent.disposed {
		parent.children = append(parent.children, o)
	}
	return o
}

// WithOwner runs fn with o as the current owner.
func WithOwner(o *Owner, fn func()) {
	prev := setCurrentOwner(o)
	defer setCurrentOwner(prev)
	fn()
}

// ID returns the unique identifier for this owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Disposed reports whether the owner has been disposed.
func (o *Owner) Disposed() bool {
	return o.disposed
}

// OnCleanup registers fn to run when the owner is disposed. On an already
// disposed owner fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed {
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed {
		e.disposed = true
		return
	}
	o.effects = append(o.effects, e)
}

// Dispose tears the scope down, children first, cleanups in reverse
// registration order.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true

	for i := len(o.children) - 1; i >= 0; i-- {
		o.children[i].Dispose()
	}
	o.children = nil

	for _, e := range o.effects {
		e.Dispose()
	}
	o.effects = nil

	for i := len(o.cleanups) - 1; i >= 0; i-- {
		o.cleanups[i]()
	}
	o.cleanups = nil

	if o.parent != nil {
		o.parent.removeChild(o)
	}
}

func (o *Owner) removeChild(child *Owner) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers fn with the current owner. It is a no-op without one.
func OnCleanup(fn func()) {
	if o := CurrentOwner(); o != nil {
		o.OnCleanup(fn)
	}
}
