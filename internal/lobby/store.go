package lobby

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Store maps session codes to sessions. The map is guarded by mu; each
// session's contents by its own lock. Sweep and List take mu before a
// session lock. Create locks its new session before inserting it, which is
// safe because nobody else can reach that session yet.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	pub      Publisher

	now     func() time.Time
	newCode func() (string, error)
}

func NewStore(pub Publisher) *Store {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &Store{
		sessions: map[string]*Session{},
		pub:      pub,
		now:      time.Now,
		newCode:  NewCode,
	}
}

func (st *Store) lookup(code string) (*Session, error) {
	code = NormalizeCode(code)
	st.mu.RLock()
	sess, ok := st.sessions[code]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// Create opens a new session hosted by p.PlayerName. A supplied code must be
// six hex digits; one already in use fails with ErrGameExists.
func (st *Store) Create(p CreateParams) (StateView, error) {
	name := strings.TrimSpace(p.PlayerName)
	if name == "" {
		return StateView{}, ErrPlayerNameRequired
	}
	code := NormalizeCode(p.Code)
	if err := checkCode(code); err != nil {
		return StateView{}, err
	}
	now := st.now()
	sess := newSession("", now)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := st.insert(sess, code); err != nil {
		return StateView{}, err
	}
	sess.addMember(&Member{
		Name:     name,
		Color:    pickColor(p.Color),
		Host:     true,
		ConnID:   p.ConnID,
		JoinedAt: now,
	})
	sess.version++
	view := Snapshot(sess)

	metricGamesCreated.Add(1)
	metricGamesActive.Add(1)
	log.Info().Str("game_id", sess.code).Str("player", name).Str("conn_id", p.ConnID).Msg("game_created")
	st.publish(Event{Type: EventGameCreated, GameID: sess.code, PlayerName: name, State: &view}, p.ConnID)
	return view, nil
}

// insert registers sess under code, or under a fresh random code when code
// is empty. Uniqueness is always re-checked under the store lock.
func (st *Store) insert(sess *Session, code string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if code != "" {
		if _, taken := st.sessions[code]; taken {
			return ErrGameExists
		}
		sess.code = code
		st.sessions[code] = sess
		return nil
	}
	for i := 0; i < maxCodeAttempts; i++ {
		candidate, err := st.newCode()
		if err != nil {
			return err
		}
		if _, taken := st.sessions[candidate]; taken {
			continue
		}
		sess.code = candidate
		st.sessions[candidate] = sess
		return nil
	}
	return errCodeSpaceExhausted
}

// Join adds a member to a session, or reattaches a disconnected member with
// the same name.
func (st *Store) Join(p JoinParams) (JoinResult, error) {
	name := strings.TrimSpace(p.PlayerName)
	if name == "" {
		return JoinResult{}, ErrPlayerNameRequired
	}
	sess, err := st.lookup(p.Code)
	if err != nil {
		return JoinResult{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.removed {
		return JoinResult{}, ErrGameNotFound
	}

	if m := sess.member(name); m != nil {
		if m.Connected() {
			return JoinResult{}, ErrNameTaken
		}
		m.ConnID = p.ConnID
		sess.version++
		view := Snapshot(sess)
		metricReconnects.Add(1)
		log.Info().Str("game_id", sess.code).Str("player", name).Str("conn_id", p.ConnID).Msg("player_reconnected")
		st.publish(Event{Type: EventRejoinedGame, GameID: sess.code, PlayerName: name, State: &view}, p.ConnID)
		others := sess.recipients(p.ConnID)
		st.publish(Event{Type: EventPlayerReconnected, GameID: sess.code, PlayerName: name}, others...)
		st.publish(Event{Type: EventStateUpdate, GameID: sess.code, State: &view}, others...)
		return JoinResult{State: view, Rejoined: true}, nil
	}

	sess.addMember(&Member{
		Name:     name,
		Color:    pickColor(p.Color),
		ConnID:   p.ConnID,
		JoinedAt: st.now(),
	})
	sess.version++
	view := Snapshot(sess)
	metricPlayersJoined.Add(1)
	log.Info().Str("game_id", sess.code).Str("player", name).Str("conn_id", p.ConnID).Msg("player_joined")
	st.publish(Event{Type: EventJoinedGame, GameID: sess.code, PlayerName: name, State: &view}, p.ConnID)
	others := sess.recipients(p.ConnID)
	st.publish(Event{Type: EventPlayerJoined, GameID: sess.code, PlayerName: name}, others...)
	st.publish(Event{Type: EventStateUpdate, GameID: sess.code, State: &view}, others...)
	return JoinResult{State: view}, nil
}

// Apply runs one player action. On success every connected member receives
// the new state; on failure nothing changes.
func (st *Store) Apply(code, name string, a Action) (StateView, error) {
	sess, err := st.lookup(code)
	if err != nil {
		return StateView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.removed {
		return StateView{}, ErrGameNotFound
	}
	m := sess.member(name)
	if m == nil {
		return StateView{}, ErrPlayerNotFound
	}

	metricActionsTotal.Add(1)
	changed, err := sess.apply(m, a)
	if err != nil {
		metricActionErrors.Add(1)
		log.Debug().Str("game_id", sess.code).Str("player", name).Str("action", a.Type).Str("reason", Reason(err)).Msg("action_rejected")
		return StateView{}, err
	}
	if changed {
		sess.version++
	}
	view := Snapshot(sess)
	evType := EventStateUpdate
	if a.Type == ActionStartGame {
		evType = EventGameStarted
		log.Info().Str("game_id", sess.code).Str("player", name).Msg("game_started")
	}
	st.publish(Event{Type: evType, GameID: sess.code, State: &view}, sess.recipients("")...)
	return view, nil
}

// MarkDisconnected flips the member to disconnected, but only while connID is
// still the connection recorded for it. Assignments are kept.
func (st *Store) MarkDisconnected(code, name, connID string) bool {
	sess, err := st.lookup(code)
	if err != nil {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.removed {
		return false
	}
	m := sess.member(name)
	if m == nil || m.ConnID == "" || m.ConnID != connID {
		return false
	}
	m.ConnID = ""
	sess.version++
	view := Snapshot(sess)
	log.Info().Str("game_id", sess.code).Str("player", name).Str("conn_id", connID).Msg("player_disconnected")
	others := sess.recipients("")
	st.publish(Event{Type: EventPlayerDisconnected, GameID: sess.code, PlayerName: name}, others...)
	st.publish(Event{Type: EventStateUpdate, GameID: sess.code, State: &view}, others...)
	return true
}

// Sweep removes sessions whose members are all disconnected and which are
// older than maxAge. It returns the removed codes in order.
func (st *Store) Sweep(now time.Time, maxAge time.Duration) []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := []string{}
	for code, sess := range st.sessions {
		sess.mu.Lock()
		if !sess.anyConnected() && now.Sub(sess.createdAt) > maxAge {
			sess.removed = true
			delete(st.sessions, code)
			removed = append(removed, code)
		}
		sess.mu.Unlock()
	}
	sort.Strings(removed)
	if n := int64(len(removed)); n > 0 {
		metricGamesReaped.Add(n)
		metricGamesActive.Add(-n)
	}
	return removed
}

// Snapshot returns the current view of one session.
func (st *Store) Snapshot(code string) (StateView, error) {
	sess, err := st.lookup(code)
	if err != nil {
		return StateView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.removed {
		return StateView{}, ErrGameNotFound
	}
	return Snapshot(sess), nil
}

func (st *Store) List() []Summary {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Summary, 0, len(st.sessions))
	for _, sess := range st.sessions {
		sess.mu.Lock()
		sum := Summary{
			GameID:    sess.code,
			Players:   len(sess.members),
			Started:   sess.started,
			Version:   sess.version,
			CreatedAt: sess.createdAt,
		}
		for _, m := range sess.members {
			if m.Connected() {
				sum.Connected++
			}
			if m.Host {
				sum.Host = m.Name
			}
		}
		sess.mu.Unlock()
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].GameID < out[j].GameID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) publish(ev Event, connIDs ...string) {
	if len(connIDs) == 0 {
		return
	}
	st.pub.Publish(ev, connIDs)
}

func pickColor(requested string) string {
	if c := strings.TrimSpace(requested); c != "" {
		return c
	}
	return Palette[rand.Intn(len(Palette))]
}
