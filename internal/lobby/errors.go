package lobby

import "errors"

var (
	ErrGameExists         = errors.New("game_exists")
	ErrGameNotFound       = errors.New("game_not_found")
	ErrNameTaken          = errors.New("name_taken")
	ErrPlayerNameRequired = errors.New("player_name_required")
	ErrPlayerNotFound     = errors.New("player_not_found")
	ErrInvalidAction      = errors.New("invalid_action")
	ErrUnknownAction      = errors.New("unknown_action")
	ErrInvalidTeam        = errors.New("invalid_team")
	ErrWrongTeam          = errors.New("wrong_team")
	ErrCountryNotFound    = errors.New("country_not_found")
	ErrNotYourCountry     = errors.New("not_your_country")
	ErrNotHost            = errors.New("not_host")

	errCodeSpaceExhausted = errors.New("code_space_exhausted")
)

// Reason maps an error returned by the store to its wire reason.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrGameExists):
		return "game_exists"
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, ErrNameTaken):
		return "name_taken"
	case errors.Is(err, ErrPlayerNameRequired):
		return "player_name_required"
	case errors.Is(err, ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, ErrInvalidTeam):
		return "invalid_team"
	case errors.Is(err, ErrWrongTeam):
		return "wrong_team"
	case errors.Is(err, ErrCountryNotFound):
		return "country_not_found"
	case errors.Is(err, ErrNotYourCountry):
		return "not_your_country"
	case errors.Is(err, ErrNotHost):
		return "not_host"
	default:
		return "internal_error"
	}
}
