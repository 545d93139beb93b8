// Package event defines the wire vocabulary: one JSON envelope per event,
// dispatched on the "type" field. Inbound payloads are validated at the
// boundary; malformed frames are dropped and logged, never propagated into
// shared state.
package event

// Inbound event types.
const (
	TypeRoomJoin            = "room:join"
	TypeRoomLeave           = "room:leave"
	TypeChatJoin            = "chat:join"
	TypePlayerJoin          = "player:join"
	TypePlayerMove          = "player:move"
	TypePrivateJoin         = "private:join"
	TypePrivateLeave        = "private:leave"
	TypePrivateRegisterPeer = "private:register-peer"
	TypeMessage             = "message"
	TypeCallOffer           = "call:offer"
	TypeCallAccepted        = "call:accepted"
	TypeNegotiationNeeded   = "negotiation:needed"
	TypeNegotiationDone     = "negotiation:done"
	TypeScreenShareStart    = "screen-share:start"
	TypeScreenShareStop     = "screen-share:stop"
	TypePing                = "ping"
)

// Outbound event types.
const (
	TypeForceDisconnect     = "force:disconnect"
	TypeUserJoined          = "user:joined"
	TypeUserLeft            = "user:left"
	TypeExistingUsers       = "room:existing-users"
	TypeUserCount           = "room:userCount"
	TypePlayerStates        = "room:playerStates"
	TypePlayerJoined        = "player:joined"
	TypePlayerMoved         = "player:moved"
	TypePlayerLeft          = "player:left"
	TypePrivateUserJoined   = "private:user-joined"
	TypePrivateUserLeft     = "private:user-left"
	TypePrivateUserCount    = "private:userCount"
	TypePrivateKey          = "private:encryption-key"
	TypePrivateExisting     = "private:existing-users"
	TypePrivateLeaveAck     = "private:leave-ack"
	TypePrivateVideoJoined  = "private:video-user-joined"
	TypePrivateVideoLeft    = "private:video-user-left"
	TypeIncomingCall        = "call:incoming"
	TypeScreenShareStarted  = "screen-share:user-started"
	TypeScreenShareStopped  = "screen-share:user-stopped"
	TypePong                = "pong"
)

// ReasonEnteredPrivate annotates a public-scope user:left caused by a
// private-area entry, so clients tear the stream down without treating the
// user as gone from the room.
const ReasonEnteredPrivate = "entered_private_area"
