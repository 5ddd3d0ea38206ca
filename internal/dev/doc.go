// Package dev provides the development server and live reload.
//
// This package implements:
//   - Static file serving with a history fallback to the app shell
//   - File watching for HTML, CSS and asset changes
//   - WebSocket-based browser refresh
//   - Prometheus metrics for the server and the app's router
//
// # Architecture
//
//   - Server: chi router serving static files, the app shell, the reload
//     socket and /metrics
//   - Watcher: fsnotify-based recursive watcher with debounced batches
//   - ReloadServer: notifies browsers of changes via WebSocket
//
// Any GET under router.basename that names no static file and has no file
// extension receives the app shell: index.html from the static directory
// when present, otherwise the page rendered by ServerOptions.Shell. This
// lets browser-mode routes load directly. Hash and memory mode apps only
// ever request the basename itself.
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// # Hot Reload Protocol
//
// The browser connects to /_einblatt/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                  // Triggers full page reload
//	{"type": "css", "file": "/app.css"} // Triggers CSS-only reload
//	{"type": "error", "error": "..."}   // Shows error overlay
//	{"type": "clear"}                   // Clears error overlay
package dev
