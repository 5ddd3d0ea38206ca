// Package reactive provides the fine-grained reactive primitives the
// renderer and router are built on.
//
// Reading a Signal or Memo while an Effect or Memo is computing subscribes
// that listener to the value. Writing a Signal synchronously re-runs every
// dependent effect before Set returns.
//
// # Core Types
//
// Signal[T] is a mutable observable cell:
//
//	count := reactive.NewSignal(0)
//	count.Get()   // tracked read
//	count.Peek()  // untracked read
//	count.Set(5)  // notifies subscribers if the value changed
//
// Memo[T] is a cached derived value:
//
//	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })
//
// Effect is an auto-tracked side effect:
//
//	e := reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	defer e.Dispose()
//
// # Execution Model
//
// The package is single-threaded. Every primitive must be created, read and
// written from the same goroutine, the way a browser event loop drives a
// page. There is no locking.
package reactive
