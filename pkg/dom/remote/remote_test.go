package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/protocol"
	"github.com/vango-dev/tether/pkg/state"
	"github.com/vango-dev/tether/pkg/view"
)

func counterView() view.View {
	return state.Stateful(0, func(h *state.Hook[int]) view.View {
		return view.H("button", view.Of(h.Get())).
			On("click", h.Bind(func(n *int, e dom.Event) state.Then {
				*n++
				return state.Render
			}))
	})
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	f, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

func readPatches(t *testing.T, conn *websocket.Conn) *protocol.PatchBatch {
	t.Helper()
	f := readFrame(t, conn)
	if f.Type != protocol.FramePatches {
		t.Fatalf("expected patches frame, got %s", f.Type)
	}
	b, err := protocol.DecodePatches(f.Payload)
	if err != nil {
		t.Fatalf("decode patches: %v", err)
	}
	return b
}

func send(t *testing.T, conn *websocket.Conn, ft protocol.FrameType, payload []byte) {
	t.Helper()
	if err := conn.WriteMessage(websocket.BinaryMessage, protocol.NewFrame(ft, payload).Encode()); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	srv := httptest.NewServer(NewHandler(counterView))
	defer srv.Close()
	conn := dial(t, srv)

	mount := readPatches(t, conn)
	var listener, text uint32
	for _, p := range mount.Patches {
		switch p.Op {
		case dom.PatchNewListener:
			listener = p.Target
		case dom.PatchCreateText:
			text = p.Target
		}
	}
	last := mount.Patches[len(mount.Patches)-1]
	if last.Op != dom.PatchAppendNode || last.Target != uint32(RootID) {
		t.Errorf("expected mount to end with append to root, got %+v", last)
	}
	if listener == 0 || text == 0 {
		t.Fatalf("mount batch missing listener or text: %+v", mount.Patches)
	}

	send(t, conn, protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{Listener: listener, Type: "click"}))

	update := readPatches(t, conn)
	if update.Seq != mount.Seq+1 {
		t.Errorf("expected seq %d, got %d", mount.Seq+1, update.Seq)
	}
	want := dom.Patch{Op: dom.PatchSetText, Target: text, Text: "1"}
	if len(update.Patches) != 1 || update.Patches[0] != want {
		t.Errorf("expected %+v, got %+v", want, update.Patches)
	}
}

func TestSessionPingAndErrors(t *testing.T) {
	srv := httptest.NewServer(NewHandler(counterView))
	defer srv.Close()
	conn := dial(t, srv)
	readPatches(t, conn)

	send(t, conn, protocol.FrameControl, protocol.EncodeControl(&protocol.Control{Type: protocol.ControlPing, Timestamp: 99}))
	f := readFrame(t, conn)
	c, err := protocol.DecodeControl(f.Payload)
	if err != nil || c.Type != protocol.ControlPong || c.Timestamp != 99 {
		t.Errorf("expected pong 99, got %+v, %v", c, err)
	}

	send(t, conn, protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{Listener: 9999, Type: "click"}))
	f = readFrame(t, conn)
	em, err := protocol.DecodeError(f.Payload)
	if f.Type != protocol.FrameError || err != nil || em.Code != protocol.ErrCodeUnknownListener {
		t.Errorf("expected unknown listener error, got %s %+v %v", f.Type, em, err)
	}

	send(t, conn, protocol.FrameEvent, []byte{0xFF})
	f = readFrame(t, conn)
	em, err = protocol.DecodeError(f.Payload)
	if err != nil || em.Code != protocol.ErrCodeBadFrame {
		t.Errorf("expected bad frame error, got %+v %v", em, err)
	}
}

func TestHealth(t *testing.T) {
	h := NewHandler(counterView)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Sessions int64  `json:"sessions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Sessions != 0 {
		t.Errorf("unexpected health body %+v", body)
	}
}

func TestSessionCloseUnmounts(t *testing.T) {
	closed := make(chan struct{})
	var sig state.Signal[int]
	root := func() view.View {
		return state.Stateful(0, func(h *state.Hook[int]) view.View {
			sig = h.Signal()
			return view.Of(h.Get())
		})
	}

	m := &recordingMetrics{closed: closed}
	srv := httptest.NewServer(NewHandler(root, WithMetrics(m)))
	defer srv.Close()
	conn := dial(t, srv)
	readPatches(t, conn)

	send(t, conn, protocol.FrameControl, protocol.EncodeControl(&protocol.Control{Type: protocol.ControlClose, Reason: "done"}))
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not close")
	}

	if sig.Alive() {
		t.Error("signal alive after session close")
	}
	sig.Set(5) // must be a silent no-op
}

type recordingMetrics struct {
	closed chan struct{}
}

func (m *recordingMetrics) SessionOpened()        {}
func (m *recordingMetrics) SessionClosed()        { close(m.closed) }
func (m *recordingMetrics) PatchesSent(int)       {}
func (m *recordingMetrics) TransportError(string) {}

func TestHostRecordsOperations(t *testing.T) {
	h := NewHost()
	frag, tail := h.CreateFragment()
	txt := h.CreateText("a")
	h.InsertBefore(tail, txt)
	h.Append(h.Root(), frag)
	l := h.NewListener(func(dom.Event) {})
	h.ReleaseListener(l)
	h.ReleaseListener(l)

	ops := []dom.PatchOp{
		dom.PatchCreateFragment, dom.PatchCreateText, dom.PatchInsertNode,
		dom.PatchAppendNode, dom.PatchNewListener, dom.PatchReleaseListener,
	}
	got := h.Take()
	if len(got) != len(ops) {
		t.Fatalf("expected %d operations, got %+v", len(ops), got)
	}
	for i, op := range ops {
		if got[i].Op != op {
			t.Errorf("op %d: expected %s, got %s", i, op, got[i].Op)
		}
	}
	if got[0].Target != uint32(frag.(NodeID)) || got[0].Arg != uint32(tail.(NodeID)) {
		t.Errorf("fragment patch has wrong IDs: %+v", got[0])
	}
	if h.Pending() != 0 || h.Listeners() != 0 {
		t.Errorf("expected empty host, pending=%d listeners=%d", h.Pending(), h.Listeners())
	}
	if h.Dispatch(&protocol.Event{Listener: uint32(l.(ListenerID))}) {
		t.Error("dispatch to released listener succeeded")
	}
}
