package event

import (
	"encoding/json"

	"github.com/spatialrealm/server/internal/domain"
)

// Envelope is the minimal frame read to pick a handler.
type Envelope struct {
	Type string `json:"type"`
}

type RoomJoin struct {
	Room   domain.RoomKey `json:"room"`
	PeerID domain.PeerID  `json:"peerId"`
}

type RoomLeave struct {
	Room   domain.RoomKey `json:"room"`
	PeerID domain.PeerID  `json:"peerId"`
}

type ChatJoin struct {
	Room     domain.RoomKey `json:"room"`
	Username string         `json:"username"`
}

type PlayerJoin struct {
	Room      domain.RoomKey  `json:"room"`
	PlayerID  domain.PlayerID `json:"playerId"`
	Character int             `json:"character,omitempty"`
}

type PlayerMove struct {
	Room     domain.RoomKey  `json:"room"`
	PlayerID domain.PlayerID `json:"playerId"`
	Position domain.Position `json:"position"`
}

type PrivateJoin struct {
	Room       domain.RoomKey  `json:"room"`
	PlayerID   domain.PlayerID `json:"playerId"`
	PublicRoom domain.RoomKey  `json:"publicRoom"`
	AreaID     domain.AreaID   `json:"areaId"`
}

type PrivateLeave struct {
	Room       domain.RoomKey  `json:"room"`
	PlayerID   domain.PlayerID `json:"playerId"`
	PublicRoom domain.RoomKey  `json:"publicRoom"`
	AreaID     domain.AreaID   `json:"areaId"`
}

type PrivateRegisterPeer struct {
	PeerID domain.PeerID `json:"peerId"`
	AreaID domain.AreaID `json:"areaId"`
}

type Message struct {
	Room       domain.RoomKey     `json:"room"`
	Sender     string             `json:"sender"`
	Message    string             `json:"message,omitempty"`
	Attachment *domain.Attachment `json:"attachment,omitempty"`
}

// Call is the shared shape of the four negotiation messages. Payload is
// opaque to the relay.
type Call struct {
	Target  domain.PeerID   `json:"target"`
	Payload json.RawMessage `json:"payload"`
}

type ScreenShareToggle struct {
	Room      domain.RoomKey `json:"room"`
	PeerID    domain.PeerID  `json:"peerId"`
	IsPrivate bool           `json:"isPrivate,omitempty"`
	AreaID    domain.AreaID  `json:"areaId,omitempty"`
}
