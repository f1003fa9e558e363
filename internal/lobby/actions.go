package lobby

import (
	"bytes"
	"encoding/json"
	"slices"
)

const (
	ActionJoinTeam        = "join_team"
	ActionAssignCountry   = "assign_country"
	ActionUnassignCountry = "unassign_country"
	ActionStartGame       = "start_game"
	ActionSetReady        = "set_ready"
	ActionSetColor        = "set_color"
)

// Action is a decoded player action. Team is empty for "no team".
type Action struct {
	Type      string
	Team      Team
	CountryID string
	Ready     bool
	Color     string
}

// ParseAction decodes the action object carried by a player_action frame.
func ParseAction(raw json.RawMessage) (Action, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Action{}, ErrInvalidAction
	}
	var probe struct {
		Type      string          `json:"type"`
		Team      json.RawMessage `json:"team"`
		CountryID string          `json:"countryId"`
		Ready     *bool           `json:"ready"`
		Color     string          `json:"color"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Action{}, ErrInvalidAction
	}
	if probe.Type == "" {
		return Action{}, ErrInvalidAction
	}
	a := Action{Type: probe.Type, CountryID: probe.CountryID, Color: probe.Color}
	switch probe.Type {
	case ActionJoinTeam:
		team := bytes.TrimSpace(probe.Team)
		if len(team) > 0 && !bytes.Equal(team, []byte("null")) {
			var s string
			if err := json.Unmarshal(team, &s); err != nil {
				return Action{}, ErrInvalidTeam
			}
			a.Team = Team(s)
		}
	case ActionSetReady:
		if probe.Ready == nil {
			return Action{}, ErrInvalidAction
		}
		a.Ready = *probe.Ready
	}
	return a, nil
}

// apply mutates the session for one action by m. It reports whether any
// state changed. The caller holds the session lock.
func (s *Session) apply(m *Member, a Action) (bool, error) {
	switch a.Type {
	case "":
		return false, ErrInvalidAction
	case ActionJoinTeam:
		return s.joinTeam(m, a.Team)
	case ActionAssignCountry:
		return s.assignCountry(m, a.CountryID)
	case ActionUnassignCountry:
		return s.unassignCountry(m, a.CountryID)
	case ActionStartGame:
		if !m.Host {
			return false, ErrNotHost
		}
		changed := !s.started
		s.started = true
		return changed, nil
	case ActionSetReady:
		changed := m.Ready != a.Ready
		m.Ready = a.Ready
		return changed, nil
	case ActionSetColor:
		if a.Color == "" {
			return false, ErrInvalidAction
		}
		changed := m.Color != a.Color
		m.Color = a.Color
		return changed, nil
	default:
		return false, ErrUnknownAction
	}
}

func (s *Session) joinTeam(m *Member, team Team) (bool, error) {
	if !team.Valid() {
		return false, ErrInvalidTeam
	}
	if m.Team == team {
		return false, nil
	}
	if m.Team != TeamNone {
		s.releaseAll(m)
	}
	m.Team = team
	return true, nil
}

func (s *Session) assignCountry(m *Member, id string) (bool, error) {
	c, ok := s.countries[id]
	if !ok {
		return false, ErrCountryNotFound
	}
	if c.Side != m.Team {
		return false, ErrWrongTeam
	}
	if c.AssignedTo == m.Name {
		return false, nil
	}
	if c.AssignedTo != "" {
		if prev := s.member(c.AssignedTo); prev != nil {
			prev.Countries = removeID(prev.Countries, id)
		}
	}
	c.AssignedTo = m.Name
	m.Countries = append(m.Countries, id)
	return true, nil
}

func (s *Session) unassignCountry(m *Member, id string) (bool, error) {
	c, ok := s.countries[id]
	if !ok {
		return false, ErrCountryNotFound
	}
	if c.AssignedTo != m.Name {
		return false, ErrNotYourCountry
	}
	c.AssignedTo = ""
	m.Countries = removeID(m.Countries, id)
	return true, nil
}

func (s *Session) releaseAll(m *Member) {
	for _, id := range m.Countries {
		if c, ok := s.countries[id]; ok && c.AssignedTo == m.Name {
			c.AssignedTo = ""
		}
	}
	m.Countries = nil
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
