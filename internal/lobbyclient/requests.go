package lobbyclient

import (
	"context"
	"encoding/json"
	"time"

	"axis-lobby/internal/lobby"
)

type CreateRequest struct {
	PlayerName  string
	PlayerColor string
	GameID      string
}

type JoinRequest struct {
	PlayerName  string
	PlayerColor string
	GameID      string
}

// Entry is the reply to a create or join request.
type Entry struct {
	Type       string          `json:"type"`
	GameID     string          `json:"gameId"`
	PlayerName string          `json:"playerName"`
	State      lobby.StateView `json:"state"`
}

func (e Entry) Rejoined() bool { return e.Type == lobby.EventRejoinedGame }

// CreateGame asks the server for a new game hosted by this connection.
func (c *Client) CreateGame(ctx context.Context, req CreateRequest) (Entry, error) {
	msg := map[string]any{"type": "create_game", "playerName": req.PlayerName}
	if req.PlayerColor != "" {
		msg["playerColor"] = req.PlayerColor
	}
	if req.GameID != "" {
		msg["gameId"] = req.GameID
	}
	return c.request(ctx, msg, lobby.EventGameCreated)
}

// JoinGame joins, or rejoins, an existing game.
func (c *Client) JoinGame(ctx context.Context, req JoinRequest) (Entry, error) {
	msg := map[string]any{"type": "join_game", "playerName": req.PlayerName, "gameId": req.GameID}
	if req.PlayerColor != "" {
		msg["playerColor"] = req.PlayerColor
	}
	return c.request(ctx, msg, lobby.EventJoinedGame, lobby.EventRejoinedGame)
}

// entryReasons are the error reasons the server answers create_game and
// join_game with. Other error frames seen while waiting belong to actions
// sent before the request.
var entryReasons = map[string]bool{
	"invalid_json":         true,
	"invalid_action":       true,
	"player_name_required": true,
	"game_exists":          true,
	"game_not_found":       true,
	"name_taken":           true,
	"internal_error":       true,
}

// request sends msg and waits for one of the reply types or an error frame.
// Requests on one client run one at a time. A request that times out closes
// the connection.
func (c *Client) request(ctx context.Context, msg map[string]any, replies ...string) (Entry, error) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	type result struct {
		entry Entry
		err   error
	}
	ch := make(chan result, 1)
	deliver := func(r result) {
		select {
		case ch <- r:
		default:
		}
	}

	var unsubs []func()
	for _, typ := range replies {
		unsubs = append(unsubs, c.On(typ, func(raw []byte) {
			var e Entry
			if err := json.Unmarshal(raw, &e); err != nil {
				deliver(result{err: err})
				return
			}
			deliver(result{entry: e})
		}))
	}
	unsubs = append(unsubs, c.On("error", func(raw []byte) {
		var e struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(raw, &e)
		if !entryReasons[e.Reason] {
			return
		}
		deliver(result{err: &ServerError{Reason: e.Reason}})
	}))
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	if err := c.Send(msg); err != nil {
		return Entry{}, err
	}

	timer := time.NewTimer(c.timeout())
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.entry, r.err
	case <-c.done:
		return Entry{}, ErrClosed
	case <-ctx.Done():
		c.shutdown(ctx.Err())
		return Entry{}, ctx.Err()
	case <-timer.C:
		c.shutdown(ErrTimeout)
		return Entry{}, ErrTimeout
	}
}

// Act sends one player action. The outcome arrives as a state_update,
// game_started or error frame. Act fails with ErrRequestPending instead of
// sending while CreateGame or JoinGame waits for its reply.
func (c *Client) Act(a lobby.Action) error {
	if !c.reqMu.TryLock() {
		return ErrRequestPending
	}
	defer c.reqMu.Unlock()
	body := map[string]any{"type": a.Type}
	switch a.Type {
	case lobby.ActionJoinTeam:
		if a.Team == lobby.TeamNone {
			body["team"] = nil
		} else {
			body["team"] = string(a.Team)
		}
	case lobby.ActionAssignCountry, lobby.ActionUnassignCountry:
		body["countryId"] = a.CountryID
	case lobby.ActionSetReady:
		body["ready"] = a.Ready
	case lobby.ActionSetColor:
		body["color"] = a.Color
	}
	return c.Send(map[string]any{"type": "player_action", "action": body})
}

func (c *Client) JoinTeam(team lobby.Team) error {
	return c.Act(lobby.Action{Type: lobby.ActionJoinTeam, Team: team})
}

func (c *Client) AssignCountry(id string) error {
	return c.Act(lobby.Action{Type: lobby.ActionAssignCountry, CountryID: id})
}

func (c *Client) UnassignCountry(id string) error {
	return c.Act(lobby.Action{Type: lobby.ActionUnassignCountry, CountryID: id})
}

func (c *Client) StartGame() error {
	return c.Act(lobby.Action{Type: lobby.ActionStartGame})
}

func (c *Client) SetReady(ready bool) error {
	return c.Act(lobby.Action{Type: lobby.ActionSetReady, Ready: ready})
}

func (c *Client) SetColor(color string) error {
	return c.Act(lobby.Action{Type: lobby.ActionSetColor, Color: color})
}
