package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the aggregate game state. It is not safe for concurrent use;
// callers serialise commands (see internal/table).
type Session struct {
	rules Rules
	rng   *rand.Rand
	now   func() time.Time
	newID func() string

	players  []*Player
	current  int
	deck     *Deck
	started  bool
	pending  *PendingAction
	exchange []Role
	loser    string
	winner   string
	events   []Event
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the shuffling source
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock sets the time source used for deadlines and the event log
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator sets how player IDs are generated
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// NewSession creates an empty table in the lobby
func NewSession(rules Rules, opts ...Option) *Session {
	s := &Session{
		rules: rules,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.deck = NewDeck(nil, s.rng)
	return s
}

// AddPlayer seats a new player before the game starts
func (s *Session) AddPlayer(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if s.started {
		return Player{}, ErrGameAlreadyStarted
	}
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if len(s.players) >= s.rules.MaxPlayers {
		return Player{}, ErrRoomFull
	}
	for _, p := range s.players {
		if strings.EqualFold(p.Name, name) {
			return Player{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}

	p := NewPlayer(s.newID(), name, s.rules.StartingCoins)
	p.JoinedAt = s.now()
	s.players = append(s.players, p)
	s.record(Event{Type: EventPlayerJoined, PlayerID: p.ID, Details: name + " joined"})
	return p.clone(), nil
}

// StartGame builds the deck for the seated players and deals two cards each
func (s *Session) StartGame() error {
	if s.started {
		return ErrGameAlreadyStarted
	}
	if len(s.players) < s.rules.MinPlayers {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPlayers, s.rules.MinPlayers, len(s.players))
	}

	s.deck = NewDeck(buildDeck(s.rules.CopiesPerRole(len(s.players))), s.rng)
	for _, p := range s.players {
		p.Coins = s.rules.StartingCoins
		p.Influences = []Card{{Role: s.draw()}, {Role: s.draw()}}
	}
	s.started = true
	s.current = 0
	s.record(Event{
		Type:     EventGameStarted,
		PlayerID: s.players[0].ID,
		Details:  fmt.Sprintf("%d players, %d cards in the court deck", len(s.players), s.deck.Len()),
	})
	return nil
}

// Reset returns the table to an empty lobby
func (s *Session) Reset() {
	s.players = nil
	s.current = 0
	s.deck = NewDeck(nil, s.rng)
	s.started = false
	s.pending = nil
	s.exchange = nil
	s.loser = ""
	s.winner = ""
	s.events = nil
}

// draw takes a card from the deck. Running out of cards breaks the supply invariant.
func (s *Session) draw() Role {
	r, err := s.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return r
}

func (s *Session) findPlayer(id string) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// actor resolves a player that is about to act and must still be in the game
func (s *Session) actor(id string) (*Player, error) {
	p := s.findPlayer(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	if !p.IsActive() {
		return nil, ErrPlayerEliminated
	}
	return p, nil
}

func (s *Session) activePlayers() []*Player {
	var out []*Player
	for _, p := range s.players {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) checkPlaying() error {
	if !s.started {
		return ErrNotStarted
	}
	if s.winner != "" {
		return ErrGameOver
	}
	return nil
}

// Rules returns the rules the session was created with
func (s *Session) Rules() Rules { return s.rules }

// Started reports whether cards have been dealt
func (s *Session) Started() bool { return s.started }

// Players returns copies of every seated player in turn order, eliminated ones included
func (s *Session) Players() []Player {
	out := make([]Player, len(s.players))
	for i, p := range s.players {
		out[i] = p.clone()
	}
	return out
}

// Player returns a copy of one player
func (s *Session) Player(id string) (Player, bool) {
	p := s.findPlayer(id)
	if p == nil {
		return Player{}, false
	}
	return p.clone(), true
}

// CurrentPlayer returns the player whose turn it is
func (s *Session) CurrentPlayer() (Player, bool) {
	if !s.started || len(s.players) == 0 {
		return Player{}, false
	}
	return s.players[s.current].clone(), true
}

// CurrentIndex returns the seat index of the player whose turn it is
func (s *Session) CurrentIndex() int { return s.current }

// Pending returns a copy of the action being resolved
func (s *Session) Pending() (PendingAction, bool) {
	if s.pending == nil {
		return PendingAction{}, false
	}
	return *s.pending, true
}

// Deadline returns when the open response window closes
func (s *Session) Deadline() (time.Time, bool) {
	if s.pending == nil || !s.pending.State.IsWindow() {
		return time.Time{}, false
	}
	return s.pending.Deadline, true
}

// PlayerToLoseInfluence returns the ID of the player who owes an influence, if any
func (s *Session) PlayerToLoseInfluence() string { return s.loser }

// Winner returns the winning player's ID once the game is over
func (s *Session) Winner() string { return s.winner }

// DeckSize returns the number of cards left in the court deck
func (s *Session) DeckSize() int { return s.deck.Len() }

// DiscardPile returns the revealed and returned roles
func (s *Session) DiscardPile() []Role { return s.deck.DiscardPile() }

// ExchangeOptions returns the pool an exchanging player picks from:
// their unrevealed roles in hand order followed by the drawn cards.
func (s *Session) ExchangeOptions() []Role {
	if s.pending == nil || s.pending.State != StateSelectingInfluenceToExchange {
		return nil
	}
	src := s.findPlayer(s.pending.SourcePlayerID)
	var pool []Role
	for _, i := range src.hidden() {
		pool = append(pool, src.Influences[i].Role)
	}
	return append(pool, s.exchange...)
}

// MustCoup reports whether the player has reached the coin count at which
// the only legal action is a coup. The engine does not enforce this; the
// caller decides whether to restrict its action menu.
func (s *Session) MustCoup(playerID string) bool {
	p := s.findPlayer(playerID)
	return p != nil && s.rules.MustCoupAt > 0 && p.Coins >= s.rules.MustCoupAt
}
