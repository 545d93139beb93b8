package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/spatialrealm/server/internal/core"
	"github.com/spatialrealm/server/internal/event"
)

func (ctl *WSController) handleMessage(sess core.ClientSession, data []byte) {
	var p event.Message
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad message payload")
		return
	}
	if p.Room == "" || p.Sender == "" {
		return
	}
	if p.Message == "" && p.Attachment == nil {
		return
	}
	if ctl.limiter != nil && !ctl.limiter.Allow(sess.Identity()) {
		log.Warn().Str("module", "signal").Str("user", string(sess.Identity())).Msg("message rate limit exceeded")
		return
	}
	ctl.Coord.Message(sess.Identity(), p.Room, p.Sender, p.Message, p.Attachment)
}
