// Package binder turns element descriptors into live dom nodes.
//
// Binding is fine-grained: there is no virtual tree and no diffing. Each
// reactive prop or child gets exactly one effect that re-applies it to the
// node it was bound to, and that effect is owned by the node. Unmounting the
// node (dom.Unmount) disposes it.
//
//	b := binder.New(doc)
//	unmount := b.Mount(doc.Body(), el.Div(el.Class("app"), "hello"))
//	defer unmount()
//
// Conditional content goes through Show, which swaps exactly one branch into
// a container element whenever its condition changes.
package binder
