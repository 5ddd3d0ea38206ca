// Package router implements client-side routing on top of the binder.
//
// The pieces, leaves first:
//   - Compile turns a path template into a Route
//   - Table holds named routes and matches paths first-match-wins
//   - Strategy stores the current path (history, hash or memory)
//   - Router runs the guard chain and publishes the committed Match
//   - Dispatch mounts the view for the current path
//
// # Templates
//
// Literal segments match themselves, ":name" captures one segment and "*"
// matches the rest of the path:
//
//	/                          → "/"
//	/user/:id                  → "/user/42"          id=42
//	/user/:userId/post/:postId → "/user/1/post/2"    userId=1 postId=2
//	*                          → anything
//
// Matching is anchored at both ends and tests routes in declaration order,
// so a catch-all must come last.
//
// # Guards
//
// Guards run before every commit, in registration order. Each returns a
// Verdict: Proceed, Redirect, RedirectTo or Stall.
//
//	r.BeforeEach(func(to, from router.Match) router.Verdict {
//	    if to.Is("admin") && !loggedIn() {
//	        return router.Redirect("/login")
//	    }
//	    return router.Proceed()
//	})
//
// A ContinuationGuard reports through next instead, possibly later. A guard
// that never calls next leaves the router on the previous match; nothing is
// committed and no error is raised.
//
// # Dispatch
//
//	view := router.Dispatch(b, r.Current(),
//	    router.On("/", home),
//	    router.On("/user/:id", user),
//	    router.On("*", notFound),
//	)
//
// The router and everything it drives run on one goroutine.
package router
