package binder

import (
	"github.com/einblatt-dev/einblatt/pkg/dom"
	"github.com/einblatt-dev/einblatt/pkg/reactive"
)

// Slot is a container element holding at most one piece of content. Content
// is either rendered, in which case the slot owns it, or placed, in which
// case it is borrowed. Clearing unmounts owned content, disposing its
// effects, and merely detaches borrowed content.
//
// Rendered content is owned by the owner that was current when the slot was
// created, not by whatever effect calls Render, so an effect re-run that
// keeps the content does not dispose it.
type Slot struct {
	b        *Binder
	host     *dom.Element
	parent   *reactive.Owner
	owner    *reactive.Owner
	owned    []dom.Node
	borrowed []dom.Node
}

// NewSlot creates a slot around a new element with the given tag.
func (b *Binder) NewSlot(tag string) *Slot {
	s := &Slot{b: b, host: b.doc.CreateElement(tag), parent: reactive.CurrentOwner()}
	dom.Own(s.host, s.Clear)
	return s
}

// Host returns the container element.
func (s *Slot) Host() *dom.Element { return s.host }

// Empty reports whether the slot holds nothing.
func (s *Slot) Empty() bool { return len(s.owned) == 0 && len(s.borrowed) == 0 }

// Clear removes the current content.
func (s *Slot) Clear() {
	owned, borrowed, owner := s.owned, s.borrowed, s.owner
	s.owned, s.borrowed, s.owner = nil, nil, nil

	if owner != nil {
		owner.Dispose()
	}
	for _, n := range owned {
		dom.Unmount(n)
	}
	for _, n := range borrowed {
		if n.ParentNode() == dom.Parent(s.host) {
			s.host.RemoveChild(n)
		}
	}
}

// Render clears the slot, then calls fn inside a fresh child of the slot's
// owner and without dependency tracking, and appends the result. Reads
// inside fn therefore never re-trigger the effect that called Render.
func (s *Slot) Render(fn func() dom.Node) {
	s.Clear()
	owner := reactive.NewOwner(s.parent)
	var n dom.Node
	reactive.WithOwner(owner, func() {
		reactive.Untracked(func() { n = fn() })
	})
	s.owner = owner
	if n == nil {
		return
	}
	s.owned = topLevel(n)
	s.host.AppendChild(n)
}

// Place clears the slot and appends nodes that stay alive after removal.
func (s *Slot) Place(nodes ...dom.Node) {
	s.Clear()
	for _, n := range nodes {
		if n == nil {
			continue
		}
		s.borrowed = append(s.borrowed, topLevel(n)...)
		s.host.AppendChild(n)
	}
}
