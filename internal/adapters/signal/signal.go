package signal

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/app"
	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type WSController struct {
	Coord      *app.Coordinator
	readLimit  int64
	pingPeriod time.Duration
	limiter    *MessageRateLimiter
}

func NewWSController(coord *app.Coordinator, readLimit int64, pingPeriod time.Duration, limiter *MessageRateLimiter) *WSController {
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	return &WSController{Coord: coord, readLimit: readLimit, pingPeriod: pingPeriod, limiter: limiter}
}

// WsConn wraps the websocket with a buffered outbound queue. Sends never
// block the coordinator; a full queue drops the frame for this receiver.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.Mutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and binds it to the caller-supplied
// identity. A missing identity fails closed before the upgrade.
func (ctl *WSController) Handle(c *gin.Context) {
	uid, err := domain.ParseUserID(c.Query("uid"))
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("connection rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.readLimit > 0 {
		ws.SetReadLimit(ctl.readLimit)
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, 64),
	}
	sess := core.NewClientSession(uid, conn)
	ctl.Coord.Connect(sess)
	log.Info().Str("module", "signal").Str("user", string(uid)).Msg("new WS connection")

	go ctl.writePump(conn)
	go ctl.readPump(sess, conn)
}
