// Package rtc exposes the WebRTC session configuration clients need for
// call setup. Media never touches the server; only ICE parameters are
// distributed here.
package rtc

import "github.com/pion/webrtc/v4"

// Configuration builds the webrtc.Configuration handed to clients. An
// empty server list falls back to Google's public STUN.
func Configuration(stunServers []string) webrtc.Configuration {
	if len(stunServers) == 0 {
		stunServers = []string{"stun:stun.l.google.com:19302"}
	}
	servers := make([]webrtc.ICEServer, 0, len(stunServers))
	for _, url := range stunServers {
		servers = append(servers, webrtc.ICEServer{URLs: []string{url}})
	}
	return webrtc.Configuration{ICEServers: servers}
}
