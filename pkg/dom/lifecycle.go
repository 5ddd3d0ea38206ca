package dom

// Own ties fn to n's lifetime: it runs when n, or an ancestor, is unmounted.
func Own(n Node, fn func()) {
	b := n.base()
	b.disposers = append(b.disposers, fn)
}

// Unmount detaches n from its parent and disposes its subtree.
func Unmount(n Node) {
	if p := n.ParentNode(); p != nil {
		p.RemoveChild(n)
	}
	Dispose(n)
}

// Dispose runs the disposers of n's subtree, descendants first, without
// detaching anything. Each disposer runs at most once.
func Dispose(n Node) {
	if p, ok := n.(Parent); ok {
		for _, child := range p.ChildNodes() {
			Dispose(child)
		}
	}
	if e, ok := n.(*Element); ok && e.shadow != nil {
		Dispose(e.shadow)
	}
	b := n.base()
	ds := b.disposers
	b.disposers = nil
	for i := len(ds) - 1; i >= 0; i-- {
		ds[i]()
	}
}

// Owned reports how many disposers n itself carries.
func Owned(n Node) int {
	return len(n.base().disposers)
}
