package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/domain"
	"github.com/spatialrealm/server/internal/event"
)

// Relay forwards a negotiation message to the target peer's connection,
// substituting the sender's current-context peer id as the return address.
// The payload is not inspected; a missing target drops the message
// silently (the target's absence surfaces via membership-left events).
func (c *Coordinator) Relay(uid domain.UserID, outType string, target domain.PeerID, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, ok := c.peers[target]
	if !ok {
		log.Debug().Str("module", "app.relay").Str("target", string(target)).Str("event", outType).Msg("relay miss")
		return
	}
	sess, ok := c.identities.resolve(owner)
	if !ok {
		return
	}

	st := c.statusOf(uid)
	from := st.publicPeer
	if st.inPrivate && st.privatePeer != "" {
		from = st.privatePeer
	}

	c.send(sess, event.CallRelay{Type: outType, From: from, Payload: payload})
}

// ScreenShare announces a share starting or stopping to the sender's
// current context scope: the private area's room when isPrivate, otherwise
// the public room.
func (c *Coordinator) ScreenShare(uid domain.UserID, started bool, room domain.RoomKey, peer domain.PeerID, isPrivate bool, area domain.AreaID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scope := room
	if isPrivate {
		scope = domain.PrivateRoomKey(room, area)
	}
	typ := event.TypeScreenShareStarted
	if !started {
		typ = event.TypeScreenShareStopped
	}
	c.broadcast(scope, uid, event.ScreenShare{Type: typ, PeerID: peer})
}
