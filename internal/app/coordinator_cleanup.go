package app

import (
	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
	"github.com/spatialrealm/server/internal/event"
)

// Disconnecting is phase one of teardown: while the connection still knows
// its bound rooms, unwind chat/video/movement membership per room with the
// matching broadcasts. Everything here is idempotent; racing an explicit
// leave is harmless. A session that has already been superseded is skipped
// so it cannot unwind its successor's state.
func (c *Coordinator) Disconnecting(sess core.ClientSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	uid := sess.Identity()
	if cur, ok := c.identities.resolve(uid); !ok || cur != sess {
		return
	}

	for _, room := range c.bindings.roomsOf(uid) {
		if changed, count := c.presence.leaveChat(room, uid); changed {
			c.broadcast(room, uid, event.UserCount{Type: event.TypeUserCount, Count: count})
		}
		if removed, count := c.presence.removeVideoPeersOf(room, uid); len(removed) > 0 {
			for _, peer := range removed {
				c.broadcast(room, uid, event.UserLeft{Type: event.TypeUserLeft, PeerID: peer})
			}
			c.broadcast(room, uid, event.UserCount{Type: event.TypeUserCount, Count: count})
		}
		for _, player := range c.presence.removePlayersOf(room, uid) {
			c.broadcast(room, uid, event.PlayerLeft{Type: event.TypePlayerLeft, ID: player})
		}
	}
	log.Debug().Str("module", "app.coordinator").Str("user", string(uid)).Msg("pre-disconnect cleanup done")
}

// Disconnect is phase two: drop the identity binding, the status record,
// peer bindings, and any private-area membership, destroying the area's
// key if the user was its last member. No failure here reaches a caller;
// all of it is best-effort convergence to a clean state.
func (c *Coordinator) Disconnect(sess core.ClientSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	uid := sess.Identity()
	if cur, ok := c.identities.resolve(uid); !ok || cur != sess {
		return
	}

	st := c.statusOf(uid)
	if st.inPrivate {
		c.leaveAreaLocked(uid, st)
	}
	if st.publicPeer != "" {
		delete(c.peers, st.publicPeer)
	}
	if st.privatePeer != "" {
		delete(c.peers, st.privatePeer)
	}

	c.sweepPresenceOf(uid)
	c.bindings.unbindAll(uid)
	delete(c.status, uid)
	c.identities.unbind(uid, sess)
	log.Info().Str("module", "app.coordinator").Str("user", string(uid)).Msg("disconnected")
}

// sweepPresenceOf catches entries phase one missed, e.g. rooms the
// connection was never transport-bound to.
func (c *Coordinator) sweepPresenceOf(uid domain.UserID) {
	for key := range c.presence.rooms {
		c.presence.leaveChat(key, uid)
		c.presence.removeVideoPeersOf(key, uid)
		c.presence.removePlayersOf(key, uid)
	}
}
