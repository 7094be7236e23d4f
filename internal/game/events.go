package game

import "time"

// EventType identifies entries in the game log
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventGameStarted  EventType = "game_started"
	EventAction       EventType = "action"
	EventTarget       EventType = "target"
	EventBlock        EventType = "block"
	EventChallenge    EventType = "challenge"
	EventCardReplaced EventType = "card_replaced"
	EventReveal       EventType = "reveal"
	EventEliminated   EventType = "eliminated"
	EventExchange     EventType = "exchange"
	EventEffect       EventType = "effect"
	EventCancelled    EventType = "cancelled"
	EventTurn         EventType = "turn"
	EventWinner       EventType = "winner"
)

// Event is one append-only log entry
type Event struct {
	Seq      int       `json:"seq"`
	Type     EventType `json:"type"`
	PlayerID string    `json:"playerId,omitempty"`
	TargetID string    `json:"targetId,omitempty"`
	Action   Action    `json:"action,omitempty"`
	Role     Role      `json:"role,omitempty"`
	Details  string    `json:"details,omitempty"`
	At       time.Time `json:"at"`
}

func (s *Session) record(e Event) {
	e.Seq = len(s.events)
	e.At = s.now()
	s.events = append(s.events, e)
}

// Events returns log entries with Seq >= since
func (s *Session) Events(since int) []Event {
	if since < 0 {
		since = 0
	}
	if since >= len(s.events) {
		return nil
	}
	out := make([]Event, len(s.events)-since)
	copy(out, s.events[since:])
	return out
}
