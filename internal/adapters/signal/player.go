package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/event"
)

func (ctl *WSController) handlePlayerJoin(sess core.ClientSession, data []byte) {
	var p event.PlayerJoin
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad player:join payload")
		return
	}
	if p.Room == "" || p.PlayerID == "" {
		log.Warn().Str("module", "signal").Msg("player:join missing room or playerId")
		return
	}
	ctl.Coord.JoinGame(sess.Identity(), p.Room, p.PlayerID, p.Character)
}

func (ctl *WSController) handlePlayerMove(sess core.ClientSession, data []byte) {
	var p event.PlayerMove
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad player:move payload")
		return
	}
	if p.Room == "" || p.PlayerID == "" {
		return
	}
	ctl.Coord.Move(sess.Identity(), p.Room, p.PlayerID, p.Position)
}
