// Package dom is a headless implementation of the slice of the browser DOM
// the renderer and router drive: a node tree of elements, text, fragments
// and shadow roots, a Document factory, events with bubbling, and a Window
// carrying Location, History and an event-loop task queue.
//
// The tree follows platform semantics where they matter to callers:
// appending a Fragment moves its children, appending an attached node moves
// it, and inserting a node into its own subtree panics with ErrHierarchy.
//
// Nodes may carry disposers registered with Own. Unmount detaches a node
// and runs the disposers of its whole subtree; RemoveChild only detaches.
//
// Like a browser page, the package is single-threaded. Window.Post queues a
// task for a later turn and Flush drains the queue, which is how history
// traversal and hash changes deliver their popstate and hashchange events.
package dom
