// Package lobby owns the authoritative lobby state: sessions, their members
// and the country assignments shared between them.
package lobby

import (
	"sync"
	"time"
)

type Team string

const (
	TeamNone   Team = ""
	TeamAxis   Team = "axis"
	TeamAllies Team = "allies"
)

func (t Team) Valid() bool {
	return t == TeamNone || t == TeamAxis || t == TeamAllies
}

// Country is one assignable entity. AssignedTo is the holder's name, or
// empty when available.
type Country struct {
	ID         string
	Name       string
	FlagImage  string
	Side       Team
	AssignedTo string
}

// Member is a participant's persistent identity within a session. ConnID is
// empty while the member is disconnected.
type Member struct {
	Name      string
	Color     string
	Team      Team
	Countries []string
	Host      bool
	Ready     bool
	ConnID    string
	JoinedAt  time.Time
}

func (m *Member) Connected() bool { return m.ConnID != "" }

// Session is one lobby. All fields are guarded by mu.
type Session struct {
	mu sync.Mutex

	code      string
	members   []*Member
	byName    map[string]*Member
	axis      []*Country
	allied    []*Country
	countries map[string]*Country
	started   bool
	createdAt time.Time
	version   int64
	removed   bool
}

func newSession(code string, createdAt time.Time) *Session {
	s := &Session{
		code:      code,
		byName:    map[string]*Member{},
		countries: map[string]*Country{},
		createdAt: createdAt,
	}
	for _, def := range axisCatalog {
		c := def.country(TeamAxis)
		s.axis = append(s.axis, c)
		s.countries[c.ID] = c
	}
	for _, def := range alliedCatalog {
		c := def.country(TeamAllies)
		s.allied = append(s.allied, c)
		s.countries[c.ID] = c
	}
	return s
}

func (s *Session) Code() string { return s.code }

func (s *Session) member(name string) *Member {
	return s.byName[name]
}

func (s *Session) addMember(m *Member) {
	s.members = append(s.members, m)
	s.byName[m.Name] = m
}

func (s *Session) anyConnected() bool {
	for _, m := range s.members {
		if m.Connected() {
			return true
		}
	}
	return false
}

// recipients returns the connection ids of every connected member except
// the one bound to skip.
func (s *Session) recipients(skip string) []string {
	out := make([]string, 0, len(s.members))
	for _, m := range s.members {
		if m.ConnID == "" || m.ConnID == skip {
			continue
		}
		out = append(out, m.ConnID)
	}
	return out
}

type CreateParams struct {
	Code       string
	PlayerName string
	Color      string
	ConnID     string
}

type JoinParams struct {
	Code       string
	PlayerName string
	Color      string
	ConnID     string
}

type JoinResult struct {
	State    StateView
	Rejoined bool
}

// Summary is the listing view of a session.
type Summary struct {
	GameID    string    `json:"gameId"`
	Players   int       `json:"players"`
	Connected int       `json:"connected"`
	Host      string    `json:"host"`
	Started   bool      `json:"started"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}
