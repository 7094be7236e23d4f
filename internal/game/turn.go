package game

// advanceTurn passes the turn to the next seat that still has influence.
// It stops if it wraps back to the current seat.
func (s *Session) advanceTurn() {
	n := len(s.players)
	if n == 0 {
		return
	}
	next := (s.current + 1) % n
	for next != s.current && !s.players[next].IsActive() {
		next = (next + 1) % n
	}
	s.current = next

	p := s.players[next]
	s.record(Event{Type: EventTurn, PlayerID: p.ID, Details: p.Name + "'s turn"})
}
