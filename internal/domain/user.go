// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxIdentityLen = 128

var (
	ErrIdentityEmpty   = errors.New("identity empty")
	ErrIdentityTooLong = errors.New("identity too long")
)

// UserID is the stable identity supplied by the auth layer at connect time.
// The coordinator never generates one.
type UserID string

// PeerID is the ephemeral media-signaling identifier a connection presents.
// A user holds at most one for the public context and one for the current
// private area.
type PeerID string

// PlayerID identifies a participant on the movement layer.
type PlayerID string

// ParseUserID validates a caller-supplied identity. Empty identities fail
// closed at connect time.
func ParseUserID(raw string) (UserID, error) {
	if len(raw) == 0 {
		return "", ErrIdentityEmpty
	}
	if len(raw) > MaxIdentityLen {
		return "", ErrIdentityTooLong
	}
	return UserID(raw), nil
}
