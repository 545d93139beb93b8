package signal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialrealm/server/internal/app"
	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
	"github.com/spatialrealm/server/internal/event"
)

type captureConn struct {
	frames []core.Frame
}

func (c *captureConn) TrySend(f core.Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

func (c *captureConn) Close() {}

func (c *captureConn) ofType(t *testing.T, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, f := range c.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(f, &m))
		if m["type"] == typ {
			out = append(out, m)
		}
	}
	return out
}

func newTestController(limiter *MessageRateLimiter) *WSController {
	coord := app.NewCoordinator(domain.Position{X: 150, Y: 150})
	return NewWSController(coord, 32768, time.Minute, limiter)
}

func attach(ctl *WSController, uid string) (core.ClientSession, *captureConn) {
	conn := &captureConn{}
	sess := core.NewClientSession(domain.UserID(uid), conn)
	ctl.Coord.Connect(sess)
	return sess, conn
}

func TestHandleEventDispatchesRoomJoin(t *testing.T) {
	ctl := newTestController(nil)
	sess, conn := attach(ctl, "alice")

	ctl.handleEvent(sess, nil, []byte(`{"type":"room:join","room":"lobby","peerId":"p1"}`))

	require.Len(t, conn.ofType(t, event.TypeExistingUsers), 1)
	counts := conn.ofType(t, event.TypeUserCount)
	require.Len(t, counts, 1)
	assert.EqualValues(t, 1, counts[0]["count"])
}

func TestHandleEventDropsInvalidPayloads(t *testing.T) {
	ctl := newTestController(nil)
	sess, conn := attach(ctl, "alice")

	for _, frame := range []string{
		`not json`,
		`{"type":"room:join","room":"lobby"}`,
		`{"type":"room:join","peerId":"p1"}`,
		`{"type":"chat:join","room":"lobby"}`,
		`{"type":"player:join","room":"lobby"}`,
		`{"type":"private:join","room":"lobby_private_1","playerId":"pa"}`,
		`{"type":"call:offer","payload":{}}`,
		`{"type":"no:such:event"}`,
	} {
		ctl.handleEvent(sess, nil, []byte(frame))
	}

	assert.Empty(t, conn.frames, "invalid frames must not reach the coordinator")
}

func TestHandleEventPingPong(t *testing.T) {
	ctl := newTestController(nil)
	sess, _ := attach(ctl, "alice")

	ws := &WsConn{send: make(chan core.Frame, 1)}
	ctl.handleEvent(sess, ws, []byte(`{"type":"ping"}`))

	select {
	case f := <-ws.send:
		var m map[string]any
		require.NoError(t, json.Unmarshal(f, &m))
		assert.Equal(t, event.TypePong, m["type"])
	default:
		t.Fatal("expected a pong frame")
	}
}

func TestCallOfferRelayedAsIncoming(t *testing.T) {
	ctl := newTestController(nil)
	sessA, _ := attach(ctl, "alice")
	sessB, connB := attach(ctl, "bob")

	ctl.handleEvent(sessA, nil, []byte(`{"type":"room:join","room":"lobby","peerId":"p1"}`))
	ctl.handleEvent(sessB, nil, []byte(`{"type":"room:join","room":"lobby","peerId":"p2"}`))

	ctl.handleEvent(sessA, nil, []byte(`{"type":"call:offer","target":"p2","payload":{"sdp":"v=0"}}`))

	calls := connB.ofType(t, event.TypeIncomingCall)
	require.Len(t, calls, 1)
	assert.Equal(t, "p1", calls[0]["from"])
	assert.Equal(t, map[string]any{"sdp": "v=0"}, calls[0]["payload"])
}

func TestMessageRequiresContent(t *testing.T) {
	ctl := newTestController(nil)
	sessA, _ := attach(ctl, "alice")
	sessB, connB := attach(ctl, "bob")

	ctl.handleEvent(sessA, nil, []byte(`{"type":"chat:join","room":"lobby","username":"Alice"}`))
	ctl.handleEvent(sessB, nil, []byte(`{"type":"chat:join","room":"lobby","username":"Bob"}`))

	ctl.handleEvent(sessA, nil, []byte(`{"type":"message","room":"lobby","sender":"Alice"}`))
	assert.Empty(t, connB.ofType(t, event.TypeMessage), "empty body without attachment must be dropped")

	ctl.handleEvent(sessA, nil, []byte(`{"type":"message","room":"lobby","sender":"Alice","message":"hi"}`))
	assert.Len(t, connB.ofType(t, event.TypeMessage), 1)
}

func TestMessageRateLimitDropsExcess(t *testing.T) {
	ctl := newTestController(NewMessageRateLimiter(2, time.Minute))
	sessA, _ := attach(ctl, "alice")
	sessB, connB := attach(ctl, "bob")

	ctl.handleEvent(sessA, nil, []byte(`{"type":"chat:join","room":"lobby","username":"Alice"}`))
	ctl.handleEvent(sessB, nil, []byte(`{"type":"chat:join","room":"lobby","username":"Bob"}`))

	for i := 0; i < 5; i++ {
		ctl.handleEvent(sessA, nil, []byte(`{"type":"message","room":"lobby","sender":"Alice","message":"spam"}`))
	}
	assert.Len(t, connB.ofType(t, event.TypeMessage), 2, "messages over the window cap are dropped")
}

func TestWsConnBackpressure(t *testing.T) {
	c := &WsConn{send: make(chan core.Frame, 1)}

	require.NoError(t, c.TrySend(core.Frame("a")))
	assert.ErrorIs(t, c.TrySend(core.Frame("b")), ErrBackpressure)

	<-c.send
	require.NoError(t, c.TrySend(core.Frame("c")))
}

func TestHandleRejectsMissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctl := newTestController(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/ws", nil)

	ctl.Handle(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
