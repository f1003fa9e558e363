package games

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrGameNotFound     = errors.New("game_not_found")
	ErrStateUnavailable = errors.New("state_unavailable")
)
