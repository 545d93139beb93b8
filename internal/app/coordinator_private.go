package app

import (
	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/domain"
	"github.com/spatialrealm/server/internal/event"
)

// EnterPrivate runs the Public -> Private(area) transition. Visibility is
// always removed from the context being left before arrival is announced in
// the new one, so no observer double-counts the participant. Re-entering
// the area the user is already in is idempotent and produces no broadcasts.
func (c *Coordinator) EnterPrivate(uid domain.UserID, privRoom domain.RoomKey, player domain.PlayerID, pubRoom domain.RoomKey, area domain.AreaID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.identities.resolve(uid)
	if !ok {
		return
	}
	st := c.statusOf(uid)
	if st.inPrivate && st.area == area && st.privateRoom == privRoom {
		return
	}
	// Converge if the client skipped the leave for its previous area.
	if st.inPrivate {
		c.leaveAreaLocked(uid, st)
	}

	st.playerID = player
	st.publicRoom = pubRoom
	c.bindings.unbind(pubRoom, uid)
	c.bindings.bind(privRoom, sess)

	a := c.areas.getOrCreate(pubRoom, area)
	a.members[player] = uid
	c.presence.joinChat(privRoom, uid, st.username)

	c.broadcastAll(privRoom, event.PrivateUserCount{Type: event.TypePrivateUserCount, Area: area, Count: len(a.members)})
	c.broadcast(privRoom, uid, event.PrivateUserJoined{Type: event.TypePrivateUserJoined, PlayerID: player, AreaID: area})
	c.send(sess, event.PrivateExisting{Type: event.TypePrivateExisting, Area: area, Users: a.peerIDs(uid)})
	c.send(sess, event.PrivateKey{Type: event.TypePrivateKey, Area: area, Key: a.key()})

	// Public video teardown: the peer's stream must come down for everyone
	// still in the public context. The private-video arrival stays deferred
	// until the client registers its private-context peer id.
	if st.publicPeer != "" {
		if changed, count := c.presence.leaveVideo(pubRoom, st.publicPeer); changed {
			c.broadcast(pubRoom, uid, event.UserLeft{
				Type:   event.TypeUserLeft,
				PeerID: st.publicPeer,
				Reason: event.ReasonEnteredPrivate,
			})
			c.broadcastAll(pubRoom, event.UserCount{Type: event.TypeUserCount, Count: count})
		}
	}

	st.inPrivate = true
	st.area = area
	st.privateRoom = privRoom
	log.Info().Str("module", "app.coordinator").Str("user", string(uid)).Str("room", string(pubRoom)).Int("area", int(area)).Msg("entered private area")
}

// RegisterPrivatePeer completes the deferred media migration: the client
// reports the peer id it presents inside the area, which is then announced
// to the other area members.
func (c *Coordinator) RegisterPrivatePeer(uid domain.UserID, peer domain.PeerID, area domain.AreaID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.statusOf(uid)
	if !st.inPrivate || st.area != area {
		return
	}
	a, ok := c.areas.get(st.publicRoom, area)
	if !ok {
		return
	}
	a.peers[peer] = uid
	c.peers[peer] = uid
	st.privatePeer = peer

	c.broadcast(st.privateRoom, uid, event.PrivateVideoJoined{Type: event.TypePrivateVideoJoined, PeerID: peer, Area: area})
}

// LeavePrivate runs the Private(area) -> Public transition and always ends
// with a leave acknowledgment, so the client can clear its private-mode
// flag even when nobody was left to notify.
func (c *Coordinator) LeavePrivate(uid domain.UserID, privRoom domain.RoomKey, player domain.PlayerID, pubRoom domain.RoomKey, area domain.AreaID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.identities.resolve(uid)
	if !ok {
		return
	}
	st := c.statusOf(uid)
	if !st.inPrivate || st.area != area {
		c.send(sess, event.PrivateLeaveAck{Type: event.TypePrivateLeaveAck, Area: area})
		return
	}

	c.leaveAreaLocked(uid, st)

	// Rejoin the public context and re-announce so remaining peers rebuild
	// their mesh connections.
	c.bindings.bind(pubRoom, sess)
	if st.publicPeer != "" {
		count := c.presence.joinVideo(pubRoom, st.publicPeer, uid)
		c.broadcast(pubRoom, uid, event.UserJoined{Type: event.TypeUserJoined, PeerID: st.publicPeer})
		c.broadcastAll(pubRoom, event.UserCount{Type: event.TypeUserCount, Count: count})
	}
	c.send(sess, event.ExistingUsers{Type: event.TypeExistingUsers, Users: c.publicPeersOf(pubRoom, uid)})
	c.send(sess, event.PrivateLeaveAck{Type: event.TypePrivateLeaveAck, Area: area})
	log.Info().Str("module", "app.coordinator").Str("user", string(uid)).Int("area", int(area)).Msg("left private area")
}

// leaveAreaLocked unwinds the user's private-area state: membership, chat
// entry, registered private peer, transport binding, and the area's secret
// if the user was the last member. Broadcasts go to the remaining members
// only. Caller holds the lock.
func (c *Coordinator) leaveAreaLocked(uid domain.UserID, st *userStatus) {
	privRoom := st.privateRoom
	area := st.area

	c.bindings.unbind(privRoom, uid)
	c.presence.leaveChat(privRoom, uid)

	if a, ok := c.areas.get(st.publicRoom, area); ok {
		delete(a.members, st.playerID)
		if st.privatePeer != "" {
			delete(a.peers, st.privatePeer)
			delete(c.peers, st.privatePeer)
			c.broadcast(privRoom, uid, event.PrivateVideoLeft{Type: event.TypePrivateVideoLeft, PeerID: st.privatePeer, Area: area})
		}
		c.broadcast(privRoom, uid, event.PrivateUserLeft{Type: event.TypePrivateUserLeft, PlayerID: st.playerID, AreaID: area})
		c.broadcast(privRoom, uid, event.PrivateUserCount{Type: event.TypePrivateUserCount, Area: area, Count: len(a.members)})
		if c.areas.dropIfEmpty(st.publicRoom, area) {
			log.Debug().Str("module", "app.coordinator").Str("room", string(st.publicRoom)).Int("area", int(area)).Msg("private area emptied, key destroyed")
		}
	}

	st.inPrivate = false
	st.privateRoom = ""
	st.privatePeer = ""
	st.area = 0
}
