package reactive

// Batch defers notifications until fn returns. Listeners notified several
// times inside the batch run once. Batches nest; only the outermost one
// flushes.
//
//	reactive.Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
func Batch(fn func()) {
	runtime.batchDepth++
	defer func() {
		runtime.batchDepth--
		if runtime.batchDepth == 0 {
			flushPending()
		}
	}()
	fn()
}

func flushPending() {
	for len(runtime.pending) > 0 {
		updates := runtime.pending
		runtime.pending = nil

		seen := make(map[uint64]bool, len(updates))
		for _, l := range updates {
			if seen[l.ID()] {
				continue
			}
			seen[l.ID()] = true
			l.MarkDirty()
		}
	}
}

// Untracked runs fn without subscribing the current listener to anything
// fn reads.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedValue returns fn's result computed without dependency tracking.
func UntrackedValue[T any](fn func() T) T {
	var v T
	Untracked(func() { v = fn() })
	return v
}
