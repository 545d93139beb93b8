package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/event"
)

func (ctl *WSController) handlePrivateJoin(sess core.ClientSession, data []byte) {
	var p event.PrivateJoin
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad private:join payload")
		return
	}
	if p.Room == "" || p.PlayerID == "" || p.PublicRoom == "" {
		log.Warn().Str("module", "signal").Msg("private:join missing required fields")
		return
	}
	ctl.Coord.EnterPrivate(sess.Identity(), p.Room, p.PlayerID, p.PublicRoom, p.AreaID)
}

func (ctl *WSController) handlePrivateLeave(sess core.ClientSession, data []byte) {
	var p event.PrivateLeave
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad private:leave payload")
		return
	}
	if p.Room == "" || p.PlayerID == "" || p.PublicRoom == "" {
		return
	}
	ctl.Coord.LeavePrivate(sess.Identity(), p.Room, p.PlayerID, p.PublicRoom, p.AreaID)
}

func (ctl *WSController) handleRegisterPeer(sess core.ClientSession, data []byte) {
	var p event.PrivateRegisterPeer
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad private:register-peer payload")
		return
	}
	if p.PeerID == "" {
		return
	}
	ctl.Coord.RegisterPrivatePeer(sess.Identity(), p.PeerID, p.AreaID)
}
