package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/event"
)

// handleCall covers all four negotiation messages; they share a shape and
// differ only in the outbound type relayed to the target.
func (ctl *WSController) handleCall(sess core.ClientSession, data []byte, outType string) {
	var p event.Call
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad call payload")
		return
	}
	if p.Target == "" {
		return
	}
	ctl.Coord.Relay(sess.Identity(), outType, p.Target, p.Payload)
}

func (ctl *WSController) handleScreenShare(sess core.ClientSession, data []byte, started bool) {
	var p event.ScreenShareToggle
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad screen-share payload")
		return
	}
	if p.Room == "" || p.PeerID == "" {
		return
	}
	ctl.Coord.ScreenShare(sess.Identity(), started, p.Room, p.PeerID, p.IsPrivate, p.AreaID)
}
