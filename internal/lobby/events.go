package lobby

const (
	EventGameCreated        = "game_created"
	EventJoinedGame         = "joined_game"
	EventRejoinedGame       = "rejoined_game"
	EventStateUpdate        = "state_update"
	EventGameStarted        = "game_started"
	EventPlayerJoined       = "player_joined"
	EventPlayerDisconnected = "player_disconnected"
	EventPlayerReconnected  = "player_reconnected"
)

// Event is an outbound lobby notification. It doubles as the wire frame.
type Event struct {
	Type       string     `json:"type"`
	GameID     string     `json:"gameId"`
	PlayerName string     `json:"playerName,omitempty"`
	State      *StateView `json:"state,omitempty"`
}

// Publisher delivers events to connections. Publish is called with the
// session lock held and must not block.
type Publisher interface {
	Publish(ev Event, connIDs []string)
}

type PublisherFunc func(ev Event, connIDs []string)

func (f PublisherFunc) Publish(ev Event, connIDs []string) { f(ev, connIDs) }

type nopPublisher struct{}

func (nopPublisher) Publish(Event, []string) {}
