// Package view defines the build-once, patch-in-place protocol every
// renderable value implements, and the primitive views built on it.
//
// A View is an immutable description produced by a render pass. The first
// pass turns it into a Product with Build; every later pass hands a fresh
// description to Update together with the existing Product:
//
//	p := view.Of(count).Build(rt)   // creates a text node
//	view.Of(count + 1).Update(p)     // rewrites the text in place
//	view.Of(count + 1).Update(p)     // no primitive call at all
//
// There is no diffing. Each mounted position has one statically known update
// path: a Product remembers the description it was last built or updated
// with and only touches the host when the new description differs.
//
// # Runtime
//
// Build receives a *Runtime bundling the dom.Host with the ambient
// collaborators of a mount: logger, task scheduler, UI executor, observer
// and tracer.
//
//	rt := view.NewRuntime(host,
//	    view.WithLogger(logger),
//	    view.WithObserver(metrics.NewCollector()),
//	)
//
// # Composition
//
// Maybe mounts an optional child behind a placeholder node. List mounts a
// positional run of children inside a dom.Fragment, updating the common
// prefix in place and appending or unmounting the rest.
package view
