package app

import (
	"crypto/rand"
	"encoding/hex"
	"sort"

	"github.com/spatialrealm/server/internal/domain"
)

const areaSecretLen = 32

type areaKey struct {
	room domain.RoomKey
	area domain.AreaID
}

// privateArea is the state of one private sub-scope: its member set, the
// private-context peers registered for media, and the ephemeral secret.
type privateArea struct {
	members map[domain.PlayerID]domain.UserID
	peers   map[domain.PeerID]domain.UserID
	secret  string
}

// privateAreas manages every live private area. An area exists only while
// it has members; deleting the last member deletes the secret with it.
type privateAreas struct {
	areas map[areaKey]*privateArea
}

func newPrivateAreas() privateAreas {
	return privateAreas{areas: make(map[areaKey]*privateArea)}
}

func (p privateAreas) get(room domain.RoomKey, id domain.AreaID) (*privateArea, bool) {
	a, ok := p.areas[areaKey{room: room, area: id}]
	return a, ok
}

func (p privateAreas) getOrCreate(room domain.RoomKey, id domain.AreaID) *privateArea {
	k := areaKey{room: room, area: id}
	a, ok := p.areas[k]
	if !ok {
		a = &privateArea{
			members: make(map[domain.PlayerID]domain.UserID),
			peers:   make(map[domain.PeerID]domain.UserID),
		}
		p.areas[k] = a
	}
	return a
}

// secret lazily creates the area's encryption key on first entry. It is
// regenerated if the area is re-entered after being emptied.
func (a *privateArea) key() string {
	if a.secret == "" {
		buf := make([]byte, areaSecretLen)
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		a.secret = hex.EncodeToString(buf)
	}
	return a.secret
}

func (a *privateArea) peerIDs(exclude domain.UserID) []domain.PeerID {
	out := make([]domain.PeerID, 0, len(a.peers))
	for peer, uid := range a.peers {
		if uid == exclude {
			continue
		}
		out = append(out, peer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// dropIfEmpty removes the area once its member set is empty, destroying the
// secret.
func (p privateAreas) dropIfEmpty(room domain.RoomKey, id domain.AreaID) bool {
	k := areaKey{room: room, area: id}
	a, ok := p.areas[k]
	if !ok {
		return false
	}
	if len(a.members) > 0 {
		return false
	}
	delete(p.areas, k)
	return true
}
