package relay

import "expvar"

var (
	metricGamesCreated = expvar.NewInt("relay_games_created_total")
	metricGamesClosed  = expvar.NewInt("relay_games_closed_total")
	metricForwarded    = expvar.NewInt("relay_messages_forwarded_total")
)
