// Package dev provides the development server for hashview pages.
//
// The server builds the page, serves its root directory and rebuilds when
// a watched source changes:
//
//   - Watcher: polls the page directory, the lang directory and dev.watch
//   - ReloadServer: tells browsers to reload (or refresh stylesheets) over
//     a WebSocket at /_hashview/reload
//   - hash bridge: browsers mirror their URL fragment at /_hashview/hash,
//     and every reported fragment is decoded and logged as a route
//   - /metrics: build, request and Go runtime metrics
//
// Build outputs are written next to their sources, so the watcher skips
// every file a build produced.
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg, Logger: logger})
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
// The reload socket at ReloadPath carries hashsync.Message frames, server
// to browser only:
//
//	{"type": "reload"}                // full page reload
//	{"type": "css", "file": "..."}    // refresh stylesheets
//	{"type": "error", "error": "..."} // show the build error overlay
//	{"type": "clear"}                 // hide the overlay
package dev
