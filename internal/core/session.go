package core

import "github.com/spatialrealm/server/internal/domain"

// ClientSession binds a stable user identity to its transport endpoint.
// This is what the registries store and fan out to.
type ClientSession interface {
	Identity() domain.UserID
	Signal() SignalConnection
}

type clientSession struct {
	identity domain.UserID
	conn     SignalConnection
}

func NewClientSession(identity domain.UserID, conn SignalConnection) ClientSession {
	return &clientSession{identity: identity, conn: conn}
}

func (s *clientSession) Identity() domain.UserID  { return s.identity }
func (s *clientSession) Signal() SignalConnection { return s.conn }
