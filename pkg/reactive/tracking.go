package reactive

// runtime is the process-wide tracking state. The single-threaded execution
// model means one instance serves every primitive.
var runtime struct {
	// listener is the memo or effect currently computing.
	listener Listener
	// owner receives effects and cleanups created right now.
	owner *Owner
	// batchDepth counts nested Batch calls.
	batchDepth int
	// pending collects listeners notified during a batch.
	pending []Listener
}

func setCurrentListener(l Listener) Listener {
	old := runtime.listener
	runtime.listener = l
	return old
}

func currentListener() Listener {
	return runtime.listener
}

func setCurrentOwner(o *Owner) *Owner {
	old := runtime.owner
	runtime.owner = o
	return old
}

// CurrentOwner returns the owner that new effects are attached to, or nil.
func CurrentOwner() *Owner {
	return runtime.owner
}

// track subscribes the current listener, if any, to s.
func track(s *signalBase) {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if src, ok := l.(sourced); ok {
		src.addSource(s)
	}
}
