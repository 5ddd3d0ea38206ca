package reactive

import (
	"reflect"
	"testing"
)

func TestSignalGetSetPeek(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 || s.Peek() != 1 {
		t.Fatalf("expected 1, got %d/%d", s.Get(), s.Peek())
	}
	s.Set(2)
	s.Update(func(n int) int { return n * 10 })
	if s.Peek() != 20 {
		t.Errorf("expected 20, got %d", s.Peek())
	}
}

func TestEffectRunsOnCreate(t *testing.T) {
	ran := 0
	e := CreateEffect(func() Cleanup {
		ran++
		return nil
	})
	defer e.Dispose()

	if ran != 1 {
		t.Errorf("effect should run immediately, ran %d times", ran)
	}
}

func TestEffectRerunsSynchronously(t *testing.T) {
	count := NewSignal(0)
	var seen []int
	e := CreateEffect(func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})
	defer e.Dispose()

	count.Set(1)
	count.Set(1) // unchanged, no re-run
	count.Set(2)

	if !reflect.DeepEqual(seen, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2], got %v", seen)
	}
}

func TestPeekDoesNotTrack(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = count.Peek()
		runs++
		return nil
	})
	defer e.Dispose()

	count.Set(5)
	if runs != 1 {
		t.Errorf("Peek should not subscribe, got %d runs", runs)
	}
}

func TestUntracked(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		Untracked(func() { _ = count.Get() })
		runs++
		return nil
	})
	defer e.Dispose()

	count.Set(1)
	if runs != 1 {
		t.Errorf("Untracked read should not subscribe, got %d runs", runs)
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	s := NewSignal(0)
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		e := CreateEffect(func() Cleanup {
			if s.Get() > 0 {
				order = append(order, name)
			}
			return nil
		})
		defer e.Dispose()
	}

	s.Set(1)
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("expected registration order, got %v", order)
	}
}

func TestEffectCleanupAndDispose(t *testing.T) {
	s := NewSignal(0)
	cleanups := 0
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return func() { cleanups++ }
	})

	s.Set(1)
	if cleanups != 1 {
		t.Errorf("cleanup should run before re-run, got %d", cleanups)
	}

	e.Dispose()
	if cleanups != 2 {
		t.Errorf("cleanup should run on dispose, got %d", cleanups)
	}
	s.Set(2)
	if runs != 2 {
		t.Errorf("disposed effect must not re-run, got %d runs", runs)
	}
	e.Dispose()
}

func TestNestedEffectDisposedOnRerun(t *testing.T) {
	outer := NewSignal(0)
	inner := NewSignal(0)
	innerRuns := 0

	e := CreateEffect(func() Cleanup {
		_ = outer.Get()
		CreateEffect(func() Cleanup {
			_ = inner.Get()
			innerRuns++
			return nil
		})
		return nil
	})
	defer e.Dispose()

	outer.Set(1) // disposes the first inner effect, creates a second
	innerRuns = 0
	inner.Set(1)
	if innerRuns != 1 {
		t.Errorf("expected exactly one live inner effect, got %d runs", innerRuns)
	}
}

func TestEffectWriteDuringRunReruns(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		if v := s.Get(); v < 3 {
			s.Set(v + 1)
		}
		return nil
	})
	defer e.Dispose()

	if s.Peek() != 3 {
		t.Errorf("expected 3, got %d", s.Peek())
	}
	if runs != 4 {
		t.Errorf("expected 4 runs, got %d", runs)
	}
}

func TestEffectLoopIsBounded(t *testing.T) {
	s := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		s.Set(s.Get() + 1)
		return nil
	})
	defer e.Dispose()

	if runs != maxReruns {
		t.Errorf("expected %d runs, got %d", maxReruns, runs)
	}
}

func TestMemoLazyAndCached(t *testing.T) {
	count := NewSignal(2)
	computes := 0
	doubled := NewMemo(func() int {
		computes++
		return count.Get() * 2
	})

	if computes != 0 {
		t.Fatal("memo should be lazy")
	}
	if doubled.Get() != 4 || doubled.Get() != 4 {
		t.Fatal("expected 4")
	}
	if computes != 1 {
		t.Errorf("expected 1 compute, got %d", computes)
	}

	count.Set(3)
	count.Set(4)
	if doubled.Peek() != 8 {
		t.Errorf("expected 8, got %d", doubled.Peek())
	}
	if computes != 2 {
		t.Errorf("expected 2 computes, got %d", computes)
	}
}

func TestMemoDrivesEffect(t *testing.T) {
	count := NewSignal(1)
	label := NewMemo(func() string {
		if count.Get()%2 == 0 {
			return "even"
		}
		return "odd"
	})
	var seen []string
	e := CreateEffect(func() Cleanup {
		seen = append(seen, label.Get())
		return nil
	})
	defer e.Dispose()

	count.Set(2)
	if !reflect.DeepEqual(seen, []string{"odd", "even"}) {
		t.Errorf("got %v", seen)
	}
}

func TestMemoDispose(t *testing.T) {
	count := NewSignal(1)
	m := NewMemo(func() int { return count.Get() + 1 })
	if m.Get() != 2 {
		t.Fatal("expected 2")
	}
	if len(count.base.subs) != 1 {
		t.Fatalf("memo should subscribe, got %d subscribers", len(count.base.subs))
	}

	m.Dispose()
	if len(count.base.subs) != 0 {
		t.Errorf("disposed memo still subscribed")
	}
	count.Set(5)
	if m.Peek() != 6 {
		t.Errorf("expected recompute after dispose, got %d", m.Peek())
	}
}

func TestBatchDeduplicates(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = a.Get() + b.Get()
		runs++
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		a.Set(1)
		b.Set(1)
		Batch(func() { a.Set(2) })
		if runs != 1 {
			t.Errorf("effect ran inside batch")
		}
	})
	if runs != 2 {
		t.Errorf("expected one re-run after batch, got %d runs", runs)
	}
}

func TestOwnerDisposesEffectsAndChildren(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	s := NewSignal(0)
	runs := 0
	var order []string

	WithOwner(child, func() {
		CreateEffect(func() Cleanup {
			_ = s.Get()
			runs++
			return nil
		})
		OnCleanup(func() { order = append(order, "child") })
	})
	root.OnCleanup(func() { order = append(order, "root-1") })
	root.OnCleanup(func() { order = append(order, "root-2") })

	root.Dispose()
	s.Set(1)

	if runs != 1 {
		t.Errorf("effect should be disposed with its owner, got %d runs", runs)
	}
	if !child.Disposed() {
		t.Error("child owner should be disposed")
	}
	if !reflect.DeepEqual(order, []string{"child", "root-2", "root-1"}) {
		t.Errorf("unexpected cleanup order %v", order)
	}

	late := false
	root.OnCleanup(func() { late = true })
	if !late {
		t.Error("cleanup on a disposed owner should run immediately")
	}
}

func TestNeverEqualAlwaysNotifies(t *testing.T) {
	s := NewSignal("x").WithEquals(NeverEqual[string])
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})
	defer e.Dispose()

	s.Set("x")
	s.Set("x")
	if runs != 3 {
		t.Errorf("expected 3 runs, got %d", runs)
	}
}

func TestDefaultEqualsDeep(t *testing.T) {
	s := NewSignal(map[string]string{"a": "1"})
	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})
	defer e.Dispose()

	s.Set(map[string]string{"a": "1"})
	if runs != 1 {
		t.Errorf("deep-equal value should not notify, got %d runs", runs)
	}
}

func TestReadableInterface(t *testing.T) {
	var _ Readable[int] = NewSignal(0)
	var _ Readable[int] = NewMemo(func() int { return 0 })
}
