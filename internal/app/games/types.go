package games

import "time"

type GameItem struct {
	GameID    string    `json:"game_id"`
	Host      string    `json:"host"`
	Members   int       `json:"members"`
	Connected int       `json:"connected"`
	Started   bool      `json:"started"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type GamesResponse struct {
	Mode  string     `json:"mode"`
	Items []GameItem `json:"items"`
}

type HealthResponse struct {
	OK    bool   `json:"ok"`
	Mode  string `json:"mode"`
	Games int    `json:"games"`
}
