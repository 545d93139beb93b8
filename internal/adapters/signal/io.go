package signal

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/event"
)

const writeWait = 5 * time.Second

func (ctl *WSController) writePump(c *WsConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump keepalive failed")
				return
			}
		}
	}
}

// readPump drives the two-phase teardown on exit: membership unwinding
// first, then the final identity/peer cleanup.
func (ctl *WSController) readPump(sess core.ClientSession, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("user", string(sess.Identity())).Msg("readPump closing")
		ctl.Coord.Disconnecting(sess)
		ctl.Coord.Disconnect(sess)
		c.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		ctl.handleEvent(sess, c, data)
	}
}

func (ctl *WSController) handleEvent(sess core.ClientSession, c *WsConn, data []byte) {
	var env event.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case event.TypeRoomJoin:
		ctl.handleRoomJoin(sess, data)
	case event.TypeRoomLeave:
		ctl.handleRoomLeave(sess, data)
	case event.TypeChatJoin:
		ctl.handleChatJoin(sess, data)
	case event.TypePlayerJoin:
		ctl.handlePlayerJoin(sess, data)
	case event.TypePlayerMove:
		ctl.handlePlayerMove(sess, data)
	case event.TypePrivateJoin:
		ctl.handlePrivateJoin(sess, data)
	case event.TypePrivateLeave:
		ctl.handlePrivateLeave(sess, data)
	case event.TypePrivateRegisterPeer:
		ctl.handleRegisterPeer(sess, data)
	case event.TypeMessage:
		ctl.handleMessage(sess, data)
	case event.TypeCallOffer:
		ctl.handleCall(sess, data, event.TypeIncomingCall)
	case event.TypeCallAccepted:
		ctl.handleCall(sess, data, event.TypeCallAccepted)
	case event.TypeNegotiationNeeded:
		ctl.handleCall(sess, data, event.TypeNegotiationNeeded)
	case event.TypeNegotiationDone:
		ctl.handleCall(sess, data, event.TypeNegotiationDone)
	case event.TypeScreenShareStart:
		ctl.handleScreenShare(sess, data, true)
	case event.TypeScreenShareStop:
		ctl.handleScreenShare(sess, data, false)
	case event.TypePing:
		ctl.sendJSON(c, event.Pong{Type: event.TypePong})
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *WSController) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
