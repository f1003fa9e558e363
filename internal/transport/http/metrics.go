package httptransport

import "expvar"

var (
	metricGamesListTotal   = expvar.NewInt("http_games_list_total")
	metricGameStateTotal   = expvar.NewInt("http_game_state_total")
	metricGameStateErrors  = expvar.NewInt("http_game_state_errors_total")
	metricWSUpgradeRequest = expvar.NewInt("http_ws_upgrade_requests_total")
)
