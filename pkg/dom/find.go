package dom

// Find returns the first element under root, root included, for which
// match returns true. The walk is depth-first in document order and does
// not enter shadow roots.
func Find(root Node, match func(*Element) bool) *Element {
	var found *Element
	walk(root, func(e *Element) bool {
		if match(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// FindAll returns every matching element under root in document order.
func FindAll(root Node, match func(*Element) bool) []*Element {
	var out []*Element
	walk(root, func(e *Element) bool {
		if match(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

func walk(n Node, visit func(*Element) bool) bool {
	if e, ok := n.(*Element); ok && !visit(e) {
		return false
	}
	p, ok := n.(Parent)
	if !ok {
		return true
	}
	for _, child := range p.ChildNodes() {
		if !walk(child, visit) {
			return false
		}
	}
	return true
}

// ByID matches elements by id.
func ByID(id string) func(*Element) bool {
	return func(e *Element) bool { return e.ID() == id }
}

// ByTag matches elements by tag name.
func ByTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.tag == tag }
}

// ByClass matches elements carrying the class.
func ByClass(class string) func(*Element) bool {
	return func(e *Element) bool { return e.HasClass(class) }
}

// ByAttr matches elements whose attribute has the value.
func ByAttr(name, value string) func(*Element) bool {
	return func(e *Element) bool {
		v, ok := e.LookupAttribute(name)
		return ok && v == value
	}
}
