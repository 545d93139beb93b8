package app

import (
	"sort"

	"github.com/spatialrealm/server/internal/domain"
)

type playerEntry struct {
	state domain.PlayerState
	owner domain.UserID
}

// roomPresence holds the three parallel membership structures of one room:
// chat participants, public video peers, and movement-layer players.
type roomPresence struct {
	chat    map[domain.UserID]string
	video   map[domain.PeerID]domain.UserID
	players map[domain.PlayerID]*playerEntry
}

func (p *roomPresence) empty() bool {
	return len(p.chat) == 0 && len(p.video) == 0 && len(p.players) == 0
}

// presenceRegistry is the membership/position state store. All operations
// are total: unknown rooms are created lazily, missing members degrade to
// no-ops.
type presenceRegistry struct {
	rooms map[domain.RoomKey]*roomPresence
	spawn domain.Position
}

func newPresenceRegistry(spawn domain.Position) presenceRegistry {
	return presenceRegistry{rooms: make(map[domain.RoomKey]*roomPresence), spawn: spawn}
}

func (p presenceRegistry) room(key domain.RoomKey) *roomPresence {
	r, ok := p.rooms[key]
	if !ok {
		r = &roomPresence{
			chat:    make(map[domain.UserID]string),
			video:   make(map[domain.PeerID]domain.UserID),
			players: make(map[domain.PlayerID]*playerEntry),
		}
		p.rooms[key] = r
	}
	return r
}

func (p presenceRegistry) prune(key domain.RoomKey) {
	if r, ok := p.rooms[key]; ok && r.empty() {
		delete(p.rooms, key)
	}
}

func (p presenceRegistry) joinChat(key domain.RoomKey, uid domain.UserID, username string) int {
	r := p.room(key)
	r.chat[uid] = username
	return len(r.chat)
}

// leaveChat reports whether membership actually changed and the new count.
func (p presenceRegistry) leaveChat(key domain.RoomKey, uid domain.UserID) (bool, int) {
	r, ok := p.rooms[key]
	if !ok {
		return false, 0
	}
	if _, member := r.chat[uid]; !member {
		return false, len(r.chat)
	}
	delete(r.chat, uid)
	n := len(r.chat)
	p.prune(key)
	return true, n
}

func (p presenceRegistry) joinVideo(key domain.RoomKey, peer domain.PeerID, uid domain.UserID) int {
	r := p.room(key)
	r.video[peer] = uid
	return len(r.video)
}

func (p presenceRegistry) leaveVideo(key domain.RoomKey, peer domain.PeerID) (bool, int) {
	r, ok := p.rooms[key]
	if !ok {
		return false, 0
	}
	if _, member := r.video[peer]; !member {
		return false, len(r.video)
	}
	delete(r.video, peer)
	n := len(r.video)
	p.prune(key)
	return true, n
}

// videoPeers lists the room's public peers, skipping any whose owner the
// filter rejects. Sorted for deterministic snapshots.
func (p presenceRegistry) videoPeers(key domain.RoomKey, include func(domain.UserID) bool) []domain.PeerID {
	r, ok := p.rooms[key]
	if !ok {
		return nil
	}
	out := make([]domain.PeerID, 0, len(r.video))
	for peer, uid := range r.video {
		if include != nil && !include(uid) {
			continue
		}
		out = append(out, peer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// upsertPlayer records the player, keeping a previously recorded position
// across reconnects. New players spawn at the configured coordinate, not
// the origin.
func (p presenceRegistry) upsertPlayer(key domain.RoomKey, id domain.PlayerID, owner domain.UserID, character int) (domain.PlayerState, bool) {
	r := p.room(key)
	if e, ok := r.players[id]; ok {
		e.owner = owner
		if character != 0 {
			e.state.Character = character
		}
		return e.state, false
	}
	st := domain.PlayerState{ID: id, Position: p.spawn, Character: character}
	r.players[id] = &playerEntry{state: st, owner: owner}
	return st, true
}

func (p presenceRegistry) movePlayer(key domain.RoomKey, id domain.PlayerID, owner domain.UserID, pos domain.Position) {
	r := p.room(key)
	e, ok := r.players[id]
	if !ok {
		e = &playerEntry{state: domain.PlayerState{ID: id, Position: pos}, owner: owner}
		r.players[id] = e
		return
	}
	e.state.Position = pos
}

// removePlayersOf drops every player the identity owns in the room and
// returns their ids.
func (p presenceRegistry) removePlayersOf(key domain.RoomKey, owner domain.UserID) []domain.PlayerID {
	r, ok := p.rooms[key]
	if !ok {
		return nil
	}
	var removed []domain.PlayerID
	for id, e := range r.players {
		if e.owner == owner {
			delete(r.players, id)
			removed = append(removed, id)
		}
	}
	p.prune(key)
	return removed
}

// removeVideoPeersOf drops every public peer the identity owns in the room.
func (p presenceRegistry) removeVideoPeersOf(key domain.RoomKey, owner domain.UserID) ([]domain.PeerID, int) {
	r, ok := p.rooms[key]
	if !ok {
		return nil, 0
	}
	var removed []domain.PeerID
	for peer, uid := range r.video {
		if uid == owner {
			delete(r.video, peer)
			removed = append(removed, peer)
		}
	}
	n := len(r.video)
	p.prune(key)
	return removed, n
}

func (p presenceRegistry) playerStates(key domain.RoomKey) []domain.PlayerState {
	r, ok := p.rooms[key]
	if !ok {
		return nil
	}
	out := make([]domain.PlayerState, 0, len(r.players))
	for _, e := range r.players {
		out = append(out, e.state)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (p presenceRegistry) chatMember(key domain.RoomKey, uid domain.UserID) bool {
	r, ok := p.rooms[key]
	if !ok {
		return false
	}
	_, member := r.chat[uid]
	return member
}
