package event

import (
	"encoding/json"

	"github.com/spatialrealm/server/internal/domain"
)

type ForceDisconnect struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// UserJoined announces arrival on either the chat scope (username set) or a
// video scope (peerId set).
type UserJoined struct {
	Type     string        `json:"type"`
	PeerID   domain.PeerID `json:"peerId,omitempty"`
	Username string        `json:"username,omitempty"`
}

type UserLeft struct {
	Type   string        `json:"type"`
	PeerID domain.PeerID `json:"peerId"`
	Reason string        `json:"reason,omitempty"`
}

type ExistingUsers struct {
	Type  string          `json:"type"`
	Users []domain.PeerID `json:"users"`
}

type UserCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type PlayerStates struct {
	Type    string               `json:"type"`
	Players []domain.PlayerState `json:"players"`
}

type PlayerJoined struct {
	Type     string          `json:"type"`
	ID       domain.PlayerID `json:"id"`
	Position domain.Position `json:"position"`
}

type PlayerMoved struct {
	Type     string          `json:"type"`
	ID       domain.PlayerID `json:"id"`
	Position domain.Position `json:"position"`
}

type PlayerLeft struct {
	Type string          `json:"type"`
	ID   domain.PlayerID `json:"id"`
}

type ChatMessage struct {
	Type       string             `json:"type"`
	Sender     string             `json:"sender"`
	Message    string             `json:"message,omitempty"`
	Attachment *domain.Attachment `json:"attachment,omitempty"`
}

type PrivateUserJoined struct {
	Type     string          `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
	AreaID   domain.AreaID   `json:"areaId"`
}

type PrivateUserLeft struct {
	Type     string          `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
	AreaID   domain.AreaID   `json:"areaId"`
}

type PrivateUserCount struct {
	Type  string        `json:"type"`
	Area  domain.AreaID `json:"areaId"`
	Count int           `json:"count"`
}

// PrivateKey delivers the area's ephemeral encryption key to the entering
// user only. It is never broadcast.
type PrivateKey struct {
	Type string        `json:"type"`
	Area domain.AreaID `json:"areaId"`
	Key  string        `json:"key"`
}

type PrivateExisting struct {
	Type  string          `json:"type"`
	Area  domain.AreaID   `json:"areaId"`
	Users []domain.PeerID `json:"users"`
}

type PrivateLeaveAck struct {
	Type string        `json:"type"`
	Area domain.AreaID `json:"areaId"`
}

type PrivateVideoJoined struct {
	Type   string        `json:"type"`
	PeerID domain.PeerID `json:"peerId"`
	Area   domain.AreaID `json:"areaId"`
}

type PrivateVideoLeft struct {
	Type   string        `json:"type"`
	PeerID domain.PeerID `json:"peerId"`
	Area   domain.AreaID `json:"areaId"`
}

// CallRelay carries a relayed negotiation message. From is substituted by
// the relay; Payload travels verbatim (address translation only).
type CallRelay struct {
	Type    string          `json:"type"`
	From    domain.PeerID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type ScreenShare struct {
	Type   string        `json:"type"`
	PeerID domain.PeerID `json:"peerId"`
}

type Pong struct {
	Type string `json:"type"`
}
