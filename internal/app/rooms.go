package app

import (
	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
)

// roomBindings is the transport-level fan-out structure: which sessions
// receive broadcasts for a room key. Rooms are created lazily and pruned
// when the last session leaves.
type roomBindings struct {
	rooms  map[domain.RoomKey]map[domain.UserID]core.ClientSession
	byUser map[domain.UserID]map[domain.RoomKey]struct{}
}

func newRoomBindings() roomBindings {
	return roomBindings{
		rooms:  make(map[domain.RoomKey]map[domain.UserID]core.ClientSession),
		byUser: make(map[domain.UserID]map[domain.RoomKey]struct{}),
	}
}

func (b roomBindings) bind(room domain.RoomKey, sess core.ClientSession) {
	uid := sess.Identity()
	members, ok := b.rooms[room]
	if !ok {
		members = make(map[domain.UserID]core.ClientSession)
		b.rooms[room] = members
	}
	members[uid] = sess
	joined, ok := b.byUser[uid]
	if !ok {
		joined = make(map[domain.RoomKey]struct{})
		b.byUser[uid] = joined
	}
	joined[room] = struct{}{}
}

func (b roomBindings) unbind(room domain.RoomKey, uid domain.UserID) {
	if members, ok := b.rooms[room]; ok {
		delete(members, uid)
		if len(members) == 0 {
			delete(b.rooms, room)
		}
	}
	if joined, ok := b.byUser[uid]; ok {
		delete(joined, room)
		if len(joined) == 0 {
			delete(b.byUser, uid)
		}
	}
}

func (b roomBindings) unbindAll(uid domain.UserID) {
	for room := range b.byUser[uid] {
		b.unbind(room, uid)
	}
}

// roomsOf returns the rooms the user is currently bound to. Phase one of
// disconnect cleanup iterates this while the connection still knows them.
func (b roomBindings) roomsOf(uid domain.UserID) []domain.RoomKey {
	out := make([]domain.RoomKey, 0, len(b.byUser[uid]))
	for room := range b.byUser[uid] {
		out = append(out, room)
	}
	return out
}

// each calls fn for every session bound to room except the sender.
func (b roomBindings) each(room domain.RoomKey, except domain.UserID, fn func(core.ClientSession)) {
	for uid, sess := range b.rooms[room] {
		if uid == except {
			continue
		}
		fn(sess)
	}
}
