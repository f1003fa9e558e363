package lobby

import "expvar"

var (
	metricGamesCreated  = expvar.NewInt("lobby_games_created_total")
	metricGamesReaped   = expvar.NewInt("lobby_games_reaped_total")
	metricGamesActive   = expvar.NewInt("lobby_games_active")
	metricPlayersJoined = expvar.NewInt("lobby_players_joined_total")
	metricReconnects    = expvar.NewInt("lobby_reconnects_total")
	metricActionsTotal  = expvar.NewInt("lobby_actions_total")
	metricActionErrors  = expvar.NewInt("lobby_action_errors_total")
)
