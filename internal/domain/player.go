package domain

// Position is a tile-map coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerState is the movement-layer view of a participant. It survives
// reconnects within the same logical room and is removed only on explicit
// leave or final disconnect cleanup.
type PlayerState struct {
	ID        PlayerID `json:"id"`
	Position  Position `json:"position"`
	Character int      `json:"character,omitempty"`
}
