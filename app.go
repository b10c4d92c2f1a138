package tether

import (
	"sync"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
)

// App is a view mounted into a container node.
type App struct {
	rt        *view.Runtime
	container dom.Node

	mu      sync.Mutex
	product view.Product
}

// Start builds v through cfg's executor and appends its anchor to
// container. A *sched.Loop executor must already be started; a stopped
// loop drops the build and Product returns nil.
func Start(h dom.Host, container dom.Node, v view.View, cfg Config) *App {
	a := &App{
		rt:        view.NewRuntime(h, cfg.Options()...),
		container: container,
	}
	a.rt.Executor().Do(func() {
		p := v.Build(a.rt)
		h.Append(container, p.El().Anchor())
		a.mu.Lock()
		a.product = p
		a.mu.Unlock()
	})
	a.rt.Logger().Debug("app started")
	return a
}

// Runtime returns the runtime shared by every component of the app.
func (a *App) Runtime() *view.Runtime { return a.rt }

// Product returns the root product, or nil after Unmount.
func (a *App) Product() view.Product {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.product
}

// Update re-describes the root. v must be of the same type as the view the
// app was started with.
func (a *App) Update(v view.View) {
	a.rt.Executor().Do(func() {
		if p := a.Product(); p != nil {
			v.Update(p)
		}
	})
}

// Unmount detaches the root, releases its listeners and kills every Signal
// it handed out. Calling it twice is a no-op.
func (a *App) Unmount() {
	a.rt.Executor().Do(func() {
		a.mu.Lock()
		p := a.product
		a.product = nil
		a.mu.Unlock()
		if p == nil {
			return
		}
		el := p.El()
		el.Unmount()
		el.Release()
		view.Release(p)
	})
	a.rt.Logger().Debug("app unmounted")
}
