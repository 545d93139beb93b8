package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
	"github.com/spatialrealm/server/internal/event"
)

// AnonymousName suppresses the chat joined notice, matching the workspace
// client's placeholder identity.
const AnonymousName = "Anonymous"

// userStatus is the coordinator's per-login record: current peer bindings
// and the public/private context state machine.
type userStatus struct {
	username    string
	playerID    domain.PlayerID
	publicRoom  domain.RoomKey
	publicPeer  domain.PeerID
	privatePeer domain.PeerID
	privateRoom domain.RoomKey
	area        domain.AreaID
	inPrivate   bool
}

// Coordinator owns every registry and serializes all event handling behind
// one lock, so each handler runs to completion before the next mutates
// shared state. Handlers never block: fan-out goes through non-blocking
// per-connection buffers.
type Coordinator struct {
	mu         sync.Mutex
	identities identityRegistry
	bindings   roomBindings
	presence   presenceRegistry
	areas      privateAreas
	status     map[domain.UserID]*userStatus
	peers      map[domain.PeerID]domain.UserID
}

func NewCoordinator(spawn domain.Position) *Coordinator {
	return &Coordinator{
		identities: newIdentityRegistry(),
		bindings:   newRoomBindings(),
		presence:   newPresenceRegistry(spawn),
		areas:      newPrivateAreas(),
		status:     make(map[domain.UserID]*userStatus),
		peers:      make(map[domain.PeerID]domain.UserID),
	}
}

// Connect binds the session to its identity. A prior connection for the
// same identity is notified and force-closed; the newest connection always
// wins.
func (c *Coordinator) Connect(sess core.ClientSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	uid := sess.Identity()
	if prev := c.identities.bind(uid, sess); prev != nil {
		c.send(prev, event.ForceDisconnect{Type: event.TypeForceDisconnect, Reason: "session superseded"})
		prev.Signal().Close()
	}
	if _, ok := c.status[uid]; !ok {
		c.status[uid] = &userStatus{}
	}
	log.Info().Str("module", "app.coordinator").Str("user", string(uid)).Msg("connected")
}

// JoinVideo adds the connection's public-context peer to the room's video
// membership, hands back the current mesh (excluding peers hidden inside
// private areas) and announces the arrival.
func (c *Coordinator) JoinVideo(uid domain.UserID, room domain.RoomKey, peer domain.PeerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.identities.resolve(uid)
	if !ok {
		return
	}
	st := c.statusOf(uid)
	st.publicRoom = room
	st.publicPeer = peer
	c.peers[peer] = uid

	c.bindings.bind(room, sess)
	count := c.presence.joinVideo(room, peer, uid)

	c.send(sess, event.ExistingUsers{
		Type:  event.TypeExistingUsers,
		Users: c.publicPeersOf(room, uid),
	})
	c.broadcast(room, uid, event.UserJoined{Type: event.TypeUserJoined, PeerID: peer})
	c.broadcastAll(room, event.UserCount{Type: event.TypeUserCount, Count: count})
	log.Debug().Str("module", "app.coordinator").Str("room", string(room)).Str("peer", string(peer)).Msg("video join")
}

// LeaveVideo is idempotent: only the first leave for a peer produces the
// membership broadcasts.
func (c *Coordinator) LeaveVideo(uid domain.UserID, room domain.RoomKey, peer domain.PeerID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed, count := c.presence.leaveVideo(room, peer)
	if !changed {
		return
	}
	delete(c.peers, peer)
	st := c.statusOf(uid)
	if st.publicPeer == peer {
		st.publicPeer = ""
	}
	c.broadcast(room, uid, event.UserLeft{Type: event.TypeUserLeft, PeerID: peer})
	c.broadcastAll(room, event.UserCount{Type: event.TypeUserCount, Count: count})
}

// JoinChat adds the identity to the room's chat membership and rebroadcasts
// the recomputed count. Anonymous joins still count but are not announced.
func (c *Coordinator) JoinChat(uid domain.UserID, room domain.RoomKey, username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.identities.resolve(uid)
	if !ok {
		return
	}
	st := c.statusOf(uid)
	st.username = username

	c.bindings.bind(room, sess)
	count := c.presence.joinChat(room, uid, username)

	if username != AnonymousName {
		c.broadcast(room, uid, event.UserJoined{Type: event.TypeUserJoined, Username: username})
	}
	c.broadcastAll(room, event.UserCount{Type: event.TypeUserCount, Count: count})
}

// JoinGame puts the player on the movement layer. The requester receives
// the full state snapshot; everyone else an incremental joined notice. A
// previously recorded position survives the rejoin.
func (c *Coordinator) JoinGame(uid domain.UserID, room domain.RoomKey, player domain.PlayerID, character int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.identities.resolve(uid)
	if !ok {
		return
	}
	st := c.statusOf(uid)
	st.playerID = player
	st.publicRoom = room

	c.bindings.bind(room, sess)
	state, _ := c.presence.upsertPlayer(room, player, uid, character)

	c.send(sess, event.PlayerStates{Type: event.TypePlayerStates, Players: c.presence.playerStates(room)})
	c.broadcast(room, uid, event.PlayerJoined{Type: event.TypePlayerJoined, ID: player, Position: state.Position})
}

// Move upserts the player's position (last write wins) and fans the delta
// out to the rest of the room.
func (c *Coordinator) Move(uid domain.UserID, room domain.RoomKey, player domain.PlayerID, pos domain.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.presence.movePlayer(room, player, uid, pos)
	c.broadcast(room, uid, event.PlayerMoved{Type: event.TypePlayerMoved, ID: player, Position: pos})
}

// Message relays a chat payload to every other session bound to the exact
// room key. The key already encodes public-vs-private scoping, so there is
// no area-aware branching here.
func (c *Coordinator) Message(uid domain.UserID, room domain.RoomKey, sender, text string, attachment *domain.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.broadcast(room, uid, event.ChatMessage{
		Type:       event.TypeMessage,
		Sender:     sender,
		Message:    text,
		Attachment: attachment,
	})
}

func (c *Coordinator) statusOf(uid domain.UserID) *userStatus {
	st, ok := c.status[uid]
	if !ok {
		st = &userStatus{}
		c.status[uid] = st
	}
	return st
}

// publicPeersOf is the existing-peer discovery set: the room's public video
// peers minus anyone currently inside a private area and minus the
// requester.
func (c *Coordinator) publicPeersOf(room domain.RoomKey, except domain.UserID) []domain.PeerID {
	return c.presence.videoPeers(room, func(owner domain.UserID) bool {
		if owner == except {
			return false
		}
		if st, ok := c.status[owner]; ok && st.inPrivate {
			return false
		}
		return true
	})
}

func (c *Coordinator) send(sess core.ClientSession, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("marshal outbound event")
		return
	}
	if err := sess.Signal().TrySend(core.Frame(b)); err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").Str("user", string(sess.Identity())).Msg("send dropped")
	}
}

func (c *Coordinator) broadcast(room domain.RoomKey, except domain.UserID, v any) {
	c.bindings.each(room, except, func(sess core.ClientSession) {
		c.send(sess, v)
	})
}

func (c *Coordinator) broadcastAll(room domain.RoomKey, v any) {
	c.bindings.each(room, "", func(sess core.ClientSession) {
		c.send(sess, v)
	})
}
