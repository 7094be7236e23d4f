package game

import (
	"fmt"
	"strings"
)

// Role is one of the five influence characters
type Role string

const (
	RoleDuke       Role = "Duke"
	RoleAssassin   Role = "Assassin"
	RoleContessa   Role = "Contessa"
	RoleCaptain    Role = "Captain"
	RoleAmbassador Role = "Ambassador"
)

// AllRoles lists the base roles in deck-building order
var AllRoles = []Role{RoleDuke, RoleAssassin, RoleContessa, RoleCaptain, RoleAmbassador}

// Valid reports whether r is one of the base roles
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole matches a role name case-insensitively
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range AllRoles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// buildDeck returns copies of every role, unshuffled
func buildDeck(copies int) []Role {
	roles := make([]Role, 0, copies*len(AllRoles))
	for _, r := range AllRoles {
		for i := 0; i < copies; i++ {
			roles = append(roles, r)
		}
	}
	return roles
}
