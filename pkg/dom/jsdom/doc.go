// Package jsdom implements dom.Host over the browser document through
// syscall/js. It is only built for GOOS=js GOARCH=wasm.
//
//	host := jsdom.New()
//	app := tether.Start(host, host.Body(), root(), tether.Config{})
//	select {} // keep the wasm module alive
//
// Fragments are DocumentFragments bounded by two empty text nodes. While a
// fragment is mounted its DocumentFragment is empty; removing or replacing
// it moves the marker-delimited range back in.
package jsdom
