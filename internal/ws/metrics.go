package ws

import "expvar"

var (
	metricConnectionsTotal  = expvar.NewInt("ws_connections_total")
	metricConnectionsActive = expvar.NewInt("ws_connections_active")
	metricMessagesIn        = expvar.NewInt("ws_messages_in_total")
	metricErrorReplies      = expvar.NewInt("ws_error_replies_total")
	metricSlowClientDrops   = expvar.NewInt("ws_slow_client_drops_total")
	metricBroadcastFrames   = expvar.NewInt("ws_broadcast_frames_total")
)
