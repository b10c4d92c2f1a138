package remote

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/tether/pkg/view"
)

// Handler serves remote sessions over WebSocket.
type Handler struct {
	root     func() view.View
	config   *Config
	upgrader websocket.Upgrader
	router   chi.Router
	active   atomic.Int64
}

// NewHandler creates a Handler mounting root() for every connection.
func NewHandler(root func() view.View, opts ...Option) *Handler {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	config.normalize()

	h := &Handler{
		root:   root,
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: config.CheckOrigin,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.health)
	r.Get("/ws", h.serveWS)
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Sessions returns the number of open sessions.
func (h *Handler) Sessions() int64 { return h.active.Load() }

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": h.active.Load(),
	})
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.config.Logger.Error("websocket upgrade failed", "error", err)
		return
	}

	h.active.Add(1)
	defer h.active.Add(-1)

	s := NewSession(conn, h.config)
	if err := s.Serve(h.root()); err != nil {
		h.config.Logger.Warn("session ended with error", "error", err)
	}
}
