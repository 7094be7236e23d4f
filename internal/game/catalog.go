package game

import (
	"fmt"
	"slices"
	"strings"
)

// Action identifies a turn action
type Action string

const (
	ActionIncome      Action = "income"
	ActionForeignAid  Action = "foreign_aid"
	ActionCoup        Action = "coup"
	ActionTax         Action = "tax"
	ActionAssassinate Action = "assassinate"
	ActionSteal       Action = "steal"
	ActionExchange    Action = "exchange"
)

// ActionInfo is the static rules entry for one action
type ActionInfo struct {
	Action      Action `json:"action"`
	Role        Role   `json:"role,omitempty"` // role that must be claimed, empty for free actions
	BlockableBy []Role `json:"blockableBy,omitempty"`
	Targeted    bool   `json:"targeted"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

var actionOrder = []Action{
	ActionIncome,
	ActionForeignAid,
	ActionCoup,
	ActionTax,
	ActionAssassinate,
	ActionSteal,
	ActionExchange,
}

var catalog = map[Action]ActionInfo{
	ActionIncome: {
		Action:      ActionIncome,
		Description: "Take 1 coin from the treasury",
	},
	ActionForeignAid: {
		Action:      ActionForeignAid,
		BlockableBy: []Role{RoleDuke},
		Description: "Take 2 coins from the treasury",
	},
	ActionCoup: {
		Action:      ActionCoup,
		Targeted:    true,
		Cost:        7,
		Description: "Pay 7 coins to force another player to lose an influence",
	},
	ActionTax: {
		Action:      ActionTax,
		Role:        RoleDuke,
		Description: "Take 3 coins from the treasury",
	},
	ActionAssassinate: {
		Action:      ActionAssassinate,
		Role:        RoleAssassin,
		BlockableBy: []Role{RoleContessa},
		Targeted:    true,
		Cost:        3,
		Description: "Pay 3 coins to assassinate another player",
	},
	ActionSteal: {
		Action:      ActionSteal,
		Role:        RoleCaptain,
		BlockableBy: []Role{RoleCaptain, RoleAmbassador},
		Targeted:    true,
		Description: "Steal 2 coins from another player",
	},
	ActionExchange: {
		Action:      ActionExchange,
		Role:        RoleAmbassador,
		Description: "Exchange cards with the court deck",
	},
}

// Lookup returns the catalog entry for an action
func Lookup(a Action) (ActionInfo, bool) {
	info, ok := catalog[a]
	return info, ok
}

// Catalog returns every action in display order
func Catalog() []ActionInfo {
	out := make([]ActionInfo, 0, len(actionOrder))
	for _, a := range actionOrder {
		out = append(out, catalog[a])
	}
	return out
}

// ActionForRole returns the action a role grants
func ActionForRole(r Role) (Action, bool) {
	for _, a := range actionOrder {
		if catalog[a].Role == r && r != "" {
			return a, true
		}
	}
	return "", false
}

// ParseAction matches an action name case-insensitively
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalog[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Blockable reports whether any role can block the action
func (i ActionInfo) Blockable() bool {
	return len(i.BlockableBy) > 0
}

// Challengeable reports whether the action itself rests on a role claim
func (i ActionInfo) Challengeable() bool {
	return i.Role != ""
}

// CanBeBlockedBy reports whether r is a legal blocking claim
func (i ActionInfo) CanBeBlockedBy(r Role) bool {
	return slices.Contains(i.BlockableBy, r)
}
