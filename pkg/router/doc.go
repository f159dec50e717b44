// Package router implements hash-based client routing.
//
// A route is a handler name plus an ordered list of JSON values. It is
// carried in the URL fragment as a token: the JSON array [name, args]
// encoded as base64.
//
//	token, _ := router.Encode("user", 42, "edit")   // "WyJ1c2VyIixbNDIsImVkaXQiXV0="
//	route, _ := router.Decode(token)                 // {Name: "user", Args: [42 "edit"]}
//
// A Dispatcher owns two registries. Static handlers are looked up by the
// raw fragment and never decoded; dynamic handlers are looked up by the
// name of the decoded route.
//
//	d := router.New(surface, router.WithLogger(logger))
//	d.Register("user", func(c *router.Call) {
//	    id, _ := c.ArgInt(0)
//	    showUser(id)
//	})
//	d.RegisterStatic("about", func(*router.Call) { showAbout() })
//	if ok, _ := d.Init(app); !ok {
//	    showHome()
//	}
//
// # Navigation Surface
//
// The fragment itself lives behind the Surface interface. Init subscribes
// the Dispatcher to the surface, replacing any earlier subscription, and
// dispatches the current token once. MemorySurface keeps the fragment in
// memory with a back/forward history; the hashsync package mirrors the
// fragment of a remote browser.
//
// # Errors
//
// Malformed tokens are logged and reported as unhandled, never as errors.
// A decoded route naming an unregistered handler is a programming error and
// is returned as a *HandlerNotFoundError.
package router
