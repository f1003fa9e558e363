package lobby

const (
	CountryAvailable = "available"
	CountryAssigned  = "assigned"
)

// StateView is the serializable lobby state sent to every member.
type StateView struct {
	GameID          string        `json:"gameId"`
	Version         int64         `json:"version"`
	Players         []PlayerView  `json:"players"`
	AxisCountries   []CountryView `json:"axisCountries"`
	AlliedCountries []CountryView `json:"alliedCountries"`
	Started         bool          `json:"started"`
}

type PlayerView struct {
	Name              string   `json:"name"`
	Color             string   `json:"color"`
	Team              *Team    `json:"team"`
	AssignedCountries []string `json:"assignedCountries"`
	IsHost            bool     `json:"isHost"`
	Connected         bool     `json:"connected"`
	Ready             bool     `json:"ready"`
}

type CountryView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	FlagImage        string `json:"flagImage"`
	Status           string `json:"status"`
	AssignedToPlayer string `json:"assignedToPlayer,omitempty"`
}

// Snapshot flattens a session into its wire view. The caller must hold the
// session lock.
func Snapshot(s *Session) StateView {
	view := StateView{
		GameID:          s.code,
		Version:         s.version,
		Players:         make([]PlayerView, 0, len(s.members)),
		AxisCountries:   countryViews(s.axis),
		AlliedCountries: countryViews(s.allied),
		Started:         s.started,
	}
	for _, m := range s.members {
		p := PlayerView{
			Name:              m.Name,
			Color:             m.Color,
			AssignedCountries: append([]string{}, m.Countries...),
			IsHost:            m.Host,
			Connected:         m.Connected(),
			Ready:             m.Ready,
		}
		if m.Team != TeamNone {
			team := m.Team
			p.Team = &team
		}
		view.Players = append(view.Players, p)
	}
	return view
}

func countryViews(list []*Country) []CountryView {
	out := make([]CountryView, 0, len(list))
	for _, c := range list {
		v := CountryView{ID: c.ID, Name: c.Name, FlagImage: c.FlagImage, Status: CountryAvailable}
		if c.AssignedTo != "" {
			v.Status = CountryAssigned
			v.AssignedToPlayer = c.AssignedTo
		}
		out = append(out, v)
	}
	return out
}

// Player returns the view of the named player, if present.
func (v StateView) Player(name string) (PlayerView, bool) {
	for _, p := range v.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerView{}, false
}

// Country returns the view of a country from either group.
func (v StateView) Country(id string) (CountryView, bool) {
	for _, c := range v.AxisCountries {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range v.AlliedCountries {
		if c.ID == id {
			return c, true
		}
	}
	return CountryView{}, false
}
