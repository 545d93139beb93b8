package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/event"
)

func (ctl *WSController) handleRoomJoin(sess core.ClientSession, data []byte) {
	var p event.RoomJoin
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad room:join payload")
		return
	}
	if p.Room == "" || p.PeerID == "" {
		log.Warn().Str("module", "signal").Msg("room:join missing room or peerId")
		return
	}
	ctl.Coord.JoinVideo(sess.Identity(), p.Room, p.PeerID)
}

func (ctl *WSController) handleRoomLeave(sess core.ClientSession, data []byte) {
	var p event.RoomLeave
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad room:leave payload")
		return
	}
	if p.Room == "" || p.PeerID == "" {
		return
	}
	ctl.Coord.LeaveVideo(sess.Identity(), p.Room, p.PeerID)
}

func (ctl *WSController) handleChatJoin(sess core.ClientSession, data []byte) {
	var p event.ChatJoin
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad chat:join payload")
		return
	}
	if p.Room == "" || p.Username == "" {
		log.Warn().Str("module", "signal").Msg("chat:join missing room or username")
		return
	}
	ctl.Coord.JoinChat(sess.Identity(), p.Room, p.Username)
}
