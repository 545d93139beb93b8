package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
)

func newSession(uid string) core.ClientSession {
	return core.NewClientSession(domain.UserID(uid), &fakeConn{})
}

func TestIdentityBindLastWriterWins(t *testing.T) {
	r := newIdentityRegistry()
	s1 := newSession("alice")
	s2 := newSession("alice")

	assert.Nil(t, r.bind("alice", s1))
	displaced := r.bind("alice", s2)
	require.NotNil(t, displaced)
	assert.Same(t, s1, displaced)

	cur, ok := r.resolve("alice")
	require.True(t, ok)
	assert.Same(t, s2, cur)
}

func TestIdentityUnbindGuardsAgainstStaleSession(t *testing.T) {
	r := newIdentityRegistry()
	s1 := newSession("alice")
	s2 := newSession("alice")
	r.bind("alice", s1)
	r.bind("alice", s2)

	assert.False(t, r.unbind("alice", s1), "stale session must not evict its successor")
	_, ok := r.resolve("alice")
	assert.True(t, ok)

	assert.True(t, r.unbind("alice", s2))
	_, ok = r.resolve("alice")
	assert.False(t, ok)
}

func TestRoomBindingsFanOutExcludesSender(t *testing.T) {
	b := newRoomBindings()
	sa := newSession("alice")
	sb := newSession("bob")
	b.bind("lobby", sa)
	b.bind("lobby", sb)

	var seen []domain.UserID
	b.each("lobby", "alice", func(s core.ClientSession) {
		seen = append(seen, s.Identity())
	})
	assert.Equal(t, []domain.UserID{"bob"}, seen)
}

func TestRoomBindingsUnbindAllPrunes(t *testing.T) {
	b := newRoomBindings()
	sa := newSession("alice")
	b.bind("lobby", sa)
	b.bind("lobby_private_3", sa)
	require.Len(t, b.roomsOf("alice"), 2)

	b.unbindAll("alice")
	assert.Empty(t, b.roomsOf("alice"))
	assert.Empty(t, b.rooms)
	assert.Empty(t, b.byUser)
}

func TestPresenceLeaveReportsChange(t *testing.T) {
	p := newPresenceRegistry(domain.Position{X: 150, Y: 150})

	p.joinChat("lobby", "alice", "Alice")
	changed, n := p.leaveChat("lobby", "alice")
	assert.True(t, changed)
	assert.Zero(t, n)

	changed, _ = p.leaveChat("lobby", "alice")
	assert.False(t, changed, "second leave must report no change")

	_, ok := p.rooms["lobby"]
	assert.False(t, ok, "emptied room must be pruned")
}

func TestPresenceUpsertPlayerKeepsPosition(t *testing.T) {
	p := newPresenceRegistry(domain.Position{X: 150, Y: 150})

	st, created := p.upsertPlayer("lobby", "pa", "alice", 2)
	assert.True(t, created)
	assert.Equal(t, domain.Position{X: 150, Y: 150}, st.Position)

	p.movePlayer("lobby", "pa", "alice", domain.Position{X: 9, Y: 4})
	st, created = p.upsertPlayer("lobby", "pa", "alice", 0)
	assert.False(t, created)
	assert.Equal(t, domain.Position{X: 9, Y: 4}, st.Position, "rejoin keeps the recorded position")
	assert.Equal(t, 2, st.Character, "zero character on rejoin keeps the recorded one")
}

func TestPrivateAreaKeyLifecycle(t *testing.T) {
	p := newPrivateAreas()

	a := p.getOrCreate("lobby", 3)
	a.members["pa"] = "alice"
	k1 := a.key()
	require.Len(t, k1, 2*areaSecretLen)
	assert.Equal(t, k1, a.key(), "key is stable while the area lives")

	assert.False(t, p.dropIfEmpty("lobby", 3), "occupied area must not be dropped")
	delete(a.members, "pa")
	assert.True(t, p.dropIfEmpty("lobby", 3))

	k2 := p.getOrCreate("lobby", 3).key()
	assert.NotEqual(t, k1, k2, "recreated area gets a fresh key")
}

func TestPrivateAreaPeerIDsExcludesOwner(t *testing.T) {
	p := newPrivateAreas()
	a := p.getOrCreate("lobby", 1)
	a.peers["p1"] = "alice"
	a.peers["p2"] = "bob"
	a.peers["p3"] = "bob"

	assert.Equal(t, []domain.PeerID{"p2", "p3"}, a.peerIDs("alice"))
	assert.Equal(t, []domain.PeerID{"p1"}, a.peerIDs("bob"))
}
