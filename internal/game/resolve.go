package game

import (
	"fmt"
	"slices"
	"time"
)

// InitiateAction starts an action for the current player.
// claim is the role asserted for role-granted actions and empty otherwise.
func (s *Session) InitiateAction(action Action, claim Role) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	info, ok := Lookup(action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if s.pending != nil {
		return ErrActionPending
	}
	if s.loser != "" {
		return ErrInfluenceLossPending
	}

	src := s.players[s.current]
	if !src.IsActive() {
		return ErrPlayerEliminated
	}
	switch {
	case info.Role != "" && claim == "":
		return fmt.Errorf("%w: %s", ErrClaimRequired, action)
	case claim != info.Role:
		return fmt.Errorf("%w: %s cannot be used for %s", ErrClaimMismatch, claim, action)
	}
	if src.Coins < info.Cost {
		return fmt.Errorf("%w: %s costs %d, %s has %d", ErrNotEnoughCoins, action, info.Cost, src.Name, src.Coins)
	}

	s.pending = &PendingAction{
		Type:            action,
		SourcePlayerID:  src.ID,
		ClaimedRole:     claim,
		BlockWindow:     s.rules.BlockWindow,
		ChallengeWindow: s.rules.ChallengeWindow,
	}
	details := fmt.Sprintf("%s declared %s", src.Name, action)
	if claim != "" {
		details += " as " + string(claim)
	}
	s.record(Event{Type: EventAction, PlayerID: src.ID, Action: action, Role: claim, Details: details})

	switch action {
	case ActionIncome:
		s.applyEffect()
	case ActionCoup, ActionSteal, ActionAssassinate:
		s.enter(StateSelectingTarget)
	case ActionTax:
		s.enter(StateWaitingForChallenges)
	case ActionForeignAid:
		s.enter(StateWaitingForBlocks)
	case ActionExchange:
		if s.rules.ExchangeChallengeWindow {
			s.enter(StateWaitingForChallenges)
		} else {
			s.beginExchange()
		}
	default:
		panic(fmt.Sprintf("game: unhandled action %q", action))
	}
	return nil
}

// SelectTarget names the target of a steal, assassination or coup
func (s *Session) SelectTarget(targetID string) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	p := s.pending
	if p == nil || p.State != StateSelectingTarget {
		return ErrWrongState
	}
	target := s.findPlayer(targetID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, targetID)
	}
	if target.ID == p.SourcePlayerID || !target.IsActive() {
		return ErrInvalidTarget
	}

	p.TargetPlayerID = target.ID
	s.record(Event{
		Type:     EventTarget,
		PlayerID: p.SourcePlayerID,
		TargetID: target.ID,
		Action:   p.Type,
		Details:  fmt.Sprintf("%s targeted %s", s.findPlayer(p.SourcePlayerID).Name, target.Name),
	})

	if p.Type == ActionCoup {
		s.applyEffect()
		return nil
	}
	s.enter(StateWaitingForBlocks)
	return nil
}

// BlockAction declares a block. The block itself becomes challengeable.
func (s *Session) BlockAction(playerID string, role Role) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	p := s.pending
	if p == nil || p.State != StateWaitingForBlocks || p.Blocked() {
		return ErrWrongState
	}
	blocker, err := s.actor(playerID)
	if err != nil {
		return err
	}
	if !s.mayBlock(p, blocker.ID) {
		return ErrNotAllowedToBlock
	}
	info, _ := Lookup(p.Type)
	if !info.CanBeBlockedBy(role) {
		return fmt.Errorf("%w: %s cannot block %s", ErrInvalidBlockRole, role, p.Type)
	}

	p.BlockingPlayerID = blocker.ID
	p.BlockingRole = role
	s.record(Event{
		Type:     EventBlock,
		PlayerID: blocker.ID,
		TargetID: p.SourcePlayerID,
		Action:   p.Type,
		Role:     role,
		Details:  fmt.Sprintf("%s blocked %s as %s", blocker.Name, p.Type, role),
	})
	s.enter(StateWaitingForChallenges)
	return nil
}

func (s *Session) mayBlock(p *PendingAction, playerID string) bool {
	switch p.Type {
	case ActionForeignAid:
		return playerID != p.SourcePlayerID
	case ActionSteal, ActionAssassinate:
		return playerID == p.TargetPlayerID
	case ActionIncome, ActionCoup, ActionTax, ActionExchange:
		return false
	}
	return false
}

// ChallengeAction disputes the open claim: the block if one was declared,
// otherwise the action's own claim. For steal and assassinate the claim may
// also be challenged during the block window, before any block.
func (s *Session) ChallengeAction(challengerID string) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	p := s.pending
	if p == nil || p.Challenged() {
		return ErrWrongState
	}
	switch p.State {
	case StateWaitingForChallenges:
	case StateWaitingForBlocks:
		if p.ClaimedRole == "" {
			return ErrWrongState
		}
	default:
		return ErrWrongState
	}

	challengedID, claimed := p.SourcePlayerID, p.ClaimedRole
	if p.Blocked() {
		challengedID, claimed = p.BlockingPlayerID, p.BlockingRole
	}
	if claimed == "" {
		return ErrWrongState
	}
	challenger, err := s.actor(challengerID)
	if err != nil {
		return err
	}
	if !s.mayChallenge(p, challenger.ID, challengedID) {
		return ErrNotAllowedToChallenge
	}
	challenged := s.findPlayer(challengedID)

	p.ChallengingPlayerID = challenger.ID
	if idx := challenged.Holds(claimed); idx >= 0 {
		p.ChallengeSucceeded = false
		s.loser = challenger.ID
		s.record(Event{
			Type:     EventChallenge,
			PlayerID: challenger.ID,
			TargetID: challenged.ID,
			Role:     claimed,
			Details:  fmt.Sprintf("%s challenged %s's %s and was wrong", challenger.Name, challenged.Name, claimed),
		})
		// The proven card goes to the discard pile and is replaced straight away.
		challenged.Influences[idx].Role = s.draw()
		s.deck.Discard(claimed)
		s.record(Event{
			Type:     EventCardReplaced,
			PlayerID: challenged.ID,
			Role:     claimed,
			Details:  fmt.Sprintf("%s shuffled %s back and drew a new card", challenged.Name, claimed),
		})
	} else {
		p.ChallengeSucceeded = true
		s.loser = challenged.ID
		s.record(Event{
			Type:     EventChallenge,
			PlayerID: challenger.ID,
			TargetID: challenged.ID,
			Role:     claimed,
			Details:  fmt.Sprintf("%s challenged %s's %s and was right", challenger.Name, challenged.Name, claimed),
		})
	}
	s.enter(StateResolvingChallenge)
	return nil
}

func (s *Session) mayChallenge(p *PendingAction, challengerID, challengedID string) bool {
	if challengerID == challengedID {
		return false
	}
	if s.rules.ChallengePolicy == ChallengeTargetOnly && p.TargetPlayerID != "" {
		if p.Blocked() {
			return challengerID == p.SourcePlayerID
		}
		return challengerID == p.TargetPlayerID
	}
	return true
}

// LoseInfluence reveals one of the owing player's cards and resumes resolution
func (s *Session) LoseInfluence(playerID string, cardIndex int) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	if s.loser == "" {
		return ErrWrongState
	}
	if s.loser != playerID {
		return ErrNotYourInfluence
	}
	pl := s.findPlayer(playerID)
	if cardIndex < 0 || cardIndex >= len(pl.Influences) || pl.Influences[cardIndex].Revealed {
		return fmt.Errorf("%w: %d", ErrInvalidCardIndex, cardIndex)
	}

	role := pl.Influences[cardIndex].Role
	pl.Influences[cardIndex].Revealed = true
	s.deck.Discard(role)
	s.loser = ""
	s.record(Event{Type: EventReveal, PlayerID: pl.ID, Role: role, Details: fmt.Sprintf("%s revealed %s", pl.Name, role)})

	if !pl.IsActive() {
		s.record(Event{Type: EventEliminated, PlayerID: pl.ID, Details: pl.Name + " is out of influence"})
		if s.checkWinner() {
			return nil
		}
	}
	s.resume()
	return nil
}

// resume continues the pending action after an influence loss
func (s *Session) resume() {
	p := s.pending
	if p == nil {
		s.advanceTurn()
		return
	}
	if p.State != StateResolvingChallenge {
		s.finish()
		return
	}
	switch {
	case p.Blocked() && !p.ChallengeSucceeded:
		s.cancel("the block stands")
	case p.Blocked():
		s.applyEffect()
	case !p.ChallengeSucceeded:
		s.applyEffect()
	default:
		s.cancel("the claim was false")
	}
}

func (s *Session) checkWinner() bool {
	active := s.activePlayers()
	if len(active) != 1 {
		return false
	}
	s.winner = active[0].ID
	s.pending = nil
	s.exchange = nil
	s.record(Event{Type: EventWinner, PlayerID: s.winner, Details: active[0].Name + " wins"})
	return true
}

// CompleteExchange keeps the chosen cards from the exchange pool.
// indices refer to ExchangeOptions and must name exactly as many cards as
// the player has unrevealed influence.
func (s *Session) CompleteExchange(indices []int) error {
	if err := s.checkPlaying(); err != nil {
		return err
	}
	p := s.pending
	if p == nil || p.State != StateSelectingInfluenceToExchange {
		return ErrWrongState
	}
	src := s.findPlayer(p.SourcePlayerID)
	hidden := src.hidden()
	pool := s.ExchangeOptions()

	if len(indices) != len(hidden) {
		return fmt.Errorf("%w: keep %d cards, got %d", ErrInvalidSelection, len(hidden), len(indices))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(pool) {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidSelection, idx)
		}
		if slices.Contains(indices[:i], idx) {
			return fmt.Errorf("%w: index %d selected twice", ErrInvalidSelection, idx)
		}
	}

	var returned []Role
	for i, r := range pool {
		if !slices.Contains(indices, i) {
			returned = append(returned, r)
		}
	}
	for j, idx := range indices {
		src.Influences[hidden[j]].Role = pool[idx]
	}
	s.deck.Return(returned...)
	s.exchange = nil
	s.record(Event{
		Type:     EventExchange,
		PlayerID: src.ID,
		Details:  fmt.Sprintf("%s exchanged %d cards", src.Name, len(returned)),
	})
	s.finish()
	return nil
}

// CompleteAction closes an open block or challenge window. It is safe to
// call at any time: outside a window it does nothing and returns false.
func (s *Session) CompleteAction() bool {
	if s.checkPlaying() != nil || s.pending == nil {
		return false
	}
	p := s.pending
	switch p.State {
	case StateWaitingForBlocks:
		s.applyEffect()
	case StateWaitingForChallenges:
		if p.Blocked() {
			s.cancel("the block was not challenged")
		} else {
			s.applyEffect()
		}
	default:
		return false
	}
	return true
}

// applyEffect performs the action once it can no longer be stopped
func (s *Session) applyEffect() {
	p := s.pending
	src := s.findPlayer(p.SourcePlayerID)
	target := s.findPlayer(p.TargetPlayerID)

	var details string
	switch p.Type {
	case ActionIncome:
		src.Coins++
		details = fmt.Sprintf("%s took 1 coin", src.Name)
	case ActionForeignAid:
		src.Coins += 2
		details = fmt.Sprintf("%s took 2 coins", src.Name)
	case ActionTax:
		src.Coins += 3
		details = fmt.Sprintf("%s took 3 coins", src.Name)
	case ActionSteal:
		n := min(2, target.Coins)
		src.Coins += n
		target.Coins -= n
		details = fmt.Sprintf("%s stole %d coins from %s", src.Name, n, target.Name)
	case ActionAssassinate:
		src.Coins = max(0, src.Coins-3)
		details = fmt.Sprintf("%s assassinated %s", src.Name, target.Name)
		if target.IsActive() {
			s.loser = target.ID
		}
	case ActionCoup:
		src.Coins = max(0, src.Coins-7)
		details = fmt.Sprintf("%s launched a coup against %s", src.Name, target.Name)
		s.loser = target.ID
	case ActionExchange:
		s.beginExchange()
		return
	default:
		panic(fmt.Sprintf("game: unhandled action %q", p.Type))
	}

	ev := Event{Type: EventEffect, PlayerID: src.ID, Action: p.Type, Details: details}
	if target != nil {
		ev.TargetID = target.ID
	}
	s.record(ev)

	if s.loser != "" {
		s.enter(StateSelectingInfluenceToLose)
		return
	}
	s.finish()
}

func (s *Session) beginExchange() {
	s.exchange = []Role{s.draw(), s.draw()}
	s.enter(StateSelectingInfluenceToExchange)
}

func (s *Session) cancel(reason string) {
	p := s.pending
	s.record(Event{
		Type:     EventCancelled,
		PlayerID: p.SourcePlayerID,
		Action:   p.Type,
		Details:  fmt.Sprintf("%s cancelled: %s", p.Type, reason),
	})
	s.finish()
}

// finish clears the resolved action and passes the turn
func (s *Session) finish() {
	s.pending.State = StateComplete
	s.pending = nil
	s.advanceTurn()
}

// enter moves the pending action to st and opens a deadline for response windows
func (s *Session) enter(st ActionState) {
	p := s.pending
	p.State = st
	switch st {
	case StateWaitingForBlocks:
		p.Deadline = s.now().Add(p.BlockWindow)
	case StateWaitingForChallenges:
		p.Deadline = s.now().Add(p.ChallengeWindow)
	default:
		p.Deadline = time.Time{}
	}
}
