// Package remote implements a dom.Host whose document lives in a thin
// client at the other end of a WebSocket.
//
// Node and listener handles are uint32 IDs. Every primitive operation is
// queued as a dom.Patch and written to the client as FramePatches frames
// when the session flushes, which it does after every job on its UI loop.
// The client applies patches in order and reports events as FrameEvent
// frames addressed to listener IDs.
//
// # Usage
//
//	h := remote.NewHandler(func() view.View { return app.Root() },
//	    remote.WithLogger(logger),
//	    remote.WithMetrics(collector),
//	)
//	http.ListenAndServe(":8080", h)
//
// The handler serves the socket at /ws and a health check at /healthz.
// Every connection gets its own Host, UI loop and mounted view; the view
// is unmounted when the socket closes.
package remote
