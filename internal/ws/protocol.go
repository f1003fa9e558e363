package ws

import "encoding/json"

const (
	MsgCreateGame   = "create_game"
	MsgJoinGame     = "join_game"
	MsgPlayerAction = "player_action"
	MsgHostUpdate   = "host_update"
	MsgClientAction = "client_action"
	MsgError        = "error"
)

const (
	ReasonInvalidJSON        = "invalid_json"
	ReasonUnknownMessageType = "unknown_message_type"
	ReasonNotInGame          = "not_in_game"
	ReasonUnknownGame        = "unknown_game"
	ReasonNotHost            = "not_host"
	ReasonNotClient          = "not_client"
	ReasonInternal           = "internal_error"
)

type CreateGameMessage struct {
	Type        string `json:"type"`
	PlayerName  string `json:"playerName,omitempty"`
	PlayerColor string `json:"playerColor,omitempty"`
	GameID      string `json:"gameId,omitempty"`
	ClientID    string `json:"clientId,omitempty"`
}

type JoinGameMessage struct {
	Type        string `json:"type"`
	PlayerName  string `json:"playerName,omitempty"`
	PlayerColor string `json:"playerColor,omitempty"`
	GameID      string `json:"gameId"`
	ClientID    string `json:"clientId,omitempty"`
}

type PlayerActionMessage struct {
	Type   string          `json:"type"`
	Action json.RawMessage `json:"action"`
}

// PayloadMessage carries an opaque relay payload.
type PayloadMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ErrorMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
