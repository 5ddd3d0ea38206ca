// Package errors provides structured, actionable error messages for the
// einblatt command line tool and dev server.
//
// Every error carries a code from the registry, a short message, and
// optionally a longer explanation, a file location and a hint on how to
// fix it.
//
// # Error Categories
//
//   - config: einblatt.yaml and flag validation
//   - render: descriptor and HTML output problems
//   - routing: route tables, navigation and guards
//   - cli: command arguments
//   - dev: dev server, file watcher and live reload
//
// # Error Codes
//
// Codes are grouped by category: E1xx config, E2xx render, E3xx routing
// and E4xx cli/dev.
//
// # Usage
//
//	err := errors.New("E103").
//	    WithDetailf("router.mode is %q", mode).
//	    WithLocation("einblatt.yaml", 4, 9)
//
//	errors.PrintError(err)
//	// ERROR E103: Invalid router mode
//	//
//	//   einblatt.yaml:4:9
//	//
//	//        2 │ router:
//	//        3 │   basename: /app
//	//   →    4 │   mode: tabs
//	//          │         ^
//	//        5 │   routes:
//	//        6 │     - name: home
//	//
//	//   router.mode is "tabs"
//	//
//	//   Hint: Set router.mode to "browser", "hash" or "memory".
package errors
