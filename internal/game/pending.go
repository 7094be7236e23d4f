package game

import "time"

// ActionState is the resolution phase of a pending action
type ActionState string

const (
	StateSelectingTarget              ActionState = "selecting_target"
	StateWaitingForBlocks             ActionState = "waiting_for_blocks"
	StateWaitingForChallenges         ActionState = "waiting_for_challenges"
	StateResolvingChallenge           ActionState = "resolving_challenge"
	StateSelectingInfluenceToLose     ActionState = "selecting_influence_to_lose"
	StateSelectingInfluenceToExchange ActionState = "selecting_influence_to_exchange"
	StateComplete                     ActionState = "complete"
)

// IsWindow reports whether the state is closed by a timeout
func (s ActionState) IsWindow() bool {
	return s == StateWaitingForBlocks || s == StateWaitingForChallenges
}

// PendingAction is the action currently being resolved
type PendingAction struct {
	Type                Action
	SourcePlayerID      string
	TargetPlayerID      string
	ClaimedRole         Role
	BlockingPlayerID    string
	BlockingRole        Role
	ChallengingPlayerID string
	// ChallengeSucceeded is meaningful once ChallengingPlayerID is set.
	ChallengeSucceeded bool
	State              ActionState
	BlockWindow        time.Duration
	ChallengeWindow    time.Duration
	// Deadline is when the current response window closes; zero outside windows.
	Deadline time.Time
}

// Blocked reports whether a block has been declared
func (p *PendingAction) Blocked() bool {
	return p.BlockingPlayerID != ""
}

// Challenged reports whether a challenge has been declared
func (p *PendingAction) Challenged() bool {
	return p.ChallengingPlayerID != ""
}
