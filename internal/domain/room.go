package domain

import "fmt"

type RoomKey string

// AreaID addresses a private area inside a public room. Area ids come from
// the map's object layer and are only unique within one room.
type AreaID int

// PrivateRoomKey derives the broadcast scope for a private area. The key
// itself encodes the public/private scoping, so relays stay area-agnostic.
func PrivateRoomKey(public RoomKey, area AreaID) RoomKey {
	return RoomKey(fmt.Sprintf("%s_private_%d", public, area))
}
