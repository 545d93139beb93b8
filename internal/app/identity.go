package app

import (
	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/domain"
)

// identityRegistry maps a stable user identity to exactly one live session.
// Sessions carry their identity, so the reverse direction is O(1) as well.
// Not goroutine-safe on its own; the coordinator's lock covers it.
type identityRegistry struct {
	sessions map[domain.UserID]core.ClientSession
}

func newIdentityRegistry() identityRegistry {
	return identityRegistry{sessions: make(map[domain.UserID]core.ClientSession)}
}

// bind registers the session for the identity and returns the session it
// displaced, if any. Last writer wins: a rebind for the same identity always
// supersedes the previous connection.
func (r identityRegistry) bind(id domain.UserID, sess core.ClientSession) core.ClientSession {
	prev, ok := r.sessions[id]
	r.sessions[id] = sess
	if ok && prev != sess {
		log.Info().Str("module", "app.identity").Str("user", string(id)).Msg("superseding previous connection")
		return prev
	}
	return nil
}

func (r identityRegistry) resolve(id domain.UserID) (core.ClientSession, bool) {
	sess, ok := r.sessions[id]
	return sess, ok
}

// unbind drops the binding only if sess is still the bound session. A
// preempted connection tearing down late must not evict its successor.
func (r identityRegistry) unbind(id domain.UserID, sess core.ClientSession) bool {
	cur, ok := r.sessions[id]
	if !ok || cur != sess {
		return false
	}
	delete(r.sessions, id)
	return true
}
