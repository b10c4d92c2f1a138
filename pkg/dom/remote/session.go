package remote

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/tether/pkg/protocol"
	"github.com/vango-dev/tether/pkg/sched"
	"github.com/vango-dev/tether/pkg/view"
)

// Session is one connected client: a Host, the UI loop that owns it and
// the view mounted into the client's root container.
type Session struct {
	conn   *websocket.Conn
	host   *Host
	loop   *sched.Loop
	rt     *view.Runtime
	config *Config
	logger *slog.Logger

	root view.Product
	seq  uint64

	writeMu sync.Mutex
	started atomic.Bool
	closed  atomic.Bool
}

// NewSession wraps an upgraded connection. Serve mounts the view and runs
// the session.
func NewSession(conn *websocket.Conn, config *Config) *Session {
	if config == nil {
		config = defaultConfig()
	}
	config.normalize()

	s := &Session{
		conn:   conn,
		host:   NewHost(),
		config: config,
		logger: config.Logger.With("remote", conn.RemoteAddr().String()),
	}
	s.loop = sched.NewLoop(sched.WithLogger(s.logger), sched.AfterEach(s.flush))

	opts := append([]view.Option(nil), config.RuntimeOptions...)
	opts = append(opts,
		view.WithLogger(s.logger),
		view.WithScheduler(s.loop),
		view.WithExecutor(s.loop),
	)
	s.rt = view.NewRuntime(s.host, opts...)
	return s
}

// Host returns the session's host.
func (s *Session) Host() *Host { return s.host }

// Serve mounts v and processes client frames until the connection closes.
// The view is unmounted before Serve returns.
func (s *Session) Serve(v view.View) error {
	s.config.Metrics.SessionOpened()
	s.logger.Info("session opened")
	s.started.Store(true)
	s.loop.Start()
	defer s.Close()

	s.conn.SetReadLimit(s.config.ReadLimit)
	s.loop.Do(func() {
		s.root = v.Build(s.rt)
		s.host.Append(s.host.Root(), s.root.El().Anchor())
	})
	return s.readLoop()
}

// Close unmounts the view, stops the UI loop and closes the connection.
// Signals held by tasks become inert. Calling Close more than once has no
// effect.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	if !s.started.Load() {
		s.conn.Close()
		return
	}
	s.loop.Do(func() {
		if s.root == nil {
			return
		}
		el := s.root.El()
		el.Unmount()
		el.Release()
		view.Release(s.root)
		s.root = nil
	})
	s.loop.Stop()
	s.conn.Close()
	s.config.Metrics.SessionClosed()
	s.logger.Info("session closed")
}

func (s *Session) readLoop() error {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.config.Metrics.TransportError("read")
				return fmt.Errorf("remote: read: %w", err)
			}
			return nil
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.badFrame(err)
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEvent(frame.Payload)

		case protocol.FrameControl:
			c, err := protocol.DecodeControl(frame.Payload)
			if err != nil {
				s.badFrame(err)
				continue
			}
			switch c.Type {
			case protocol.ControlPing:
				s.write(protocol.FrameControl, 0, protocol.EncodeControl(&protocol.Control{
					Type:      protocol.ControlPong,
					Timestamp: c.Timestamp,
				}))
			case protocol.ControlClose:
				s.logger.Debug("client closing", "reason", c.Reason)
				return nil
			}

		default:
			s.badFrame(fmt.Errorf("unexpected %s frame", frame.Type))
		}
	}
}

func (s *Session) handleEvent(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.badFrame(err)
		return
	}
	s.loop.Post(func() {
		if !s.traceEvent(ev, func() bool { return s.host.Dispatch(ev) }) {
			s.logger.Debug("event for unknown listener", "listener", ev.Listener, "type", ev.Type)
			s.sendError(protocol.ErrCodeUnknownListener, fmt.Sprintf("listener %d", ev.Listener))
		}
	})
}

func (s *Session) badFrame(err error) {
	s.config.Metrics.TransportError("decode")
	s.logger.Warn("bad frame", "error", err)
	s.sendError(protocol.ErrCodeBadFrame, err.Error())
}

func (s *Session) sendError(code uint16, msg string) {
	s.write(protocol.FrameError, 0, protocol.EncodeError(&protocol.ErrorMessage{Code: code, Message: msg}))
}

// flush writes the operations queued since the last flush. It runs on the
// UI loop after every job.
func (s *Session) flush() {
	patches := s.host.Take()
	if len(patches) == 0 || s.closed.Load() {
		return
	}

	runs, err := protocol.SplitPatches(patches, protocol.MaxPayloadSize)
	if err != nil {
		s.logger.Error("patch batch cannot be framed", "error", err)
		s.config.Metrics.TransportError("encode")
		return
	}
	for i, run := range runs {
		s.seq++
		var flags protocol.FrameFlags
		if i == len(runs)-1 {
			flags = protocol.FlagFinal
		}
		s.write(protocol.FramePatches, flags, protocol.EncodePatches(&protocol.PatchBatch{Seq: s.seq, Patches: run}))
	}
	s.config.Metrics.PatchesSent(len(patches))
}

func (s *Session) write(ft protocol.FrameType, flags protocol.FrameFlags, payload []byte) {
	frame := protocol.NewFrame(ft, payload)
	frame.Flags = flags

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		s.config.Metrics.TransportError("write")
		s.logger.Error("write error", "error", err, "frame", ft)
	}
}
