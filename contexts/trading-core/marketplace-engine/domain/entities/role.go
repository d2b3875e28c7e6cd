package entities

import "strings"

// Role is the capability category of a registered user.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleBoth   Role = "both"
)

func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleBuyer):
		return RoleBuyer, true
	case string(RoleSeller):
		return RoleSeller, true
	case string(RoleBoth):
		return RoleBoth, true
	default:
		return "", false
	}
}

func IsValidRole(role Role) bool {
	switch role {
	case RoleBuyer, RoleSeller, RoleBoth:
		return true
	default:
		return false
	}
}

// Satisfies reports whether the role grants the required capability.
// RoleBoth subsumes both single roles; RoleBuyer and RoleSeller never
// satisfy each other.
func (r Role) Satisfies(required Role) bool {
	if r == RoleBoth {
		return true
	}
	return r == required
}

func (r Role) CanBuy() bool {
	return r == RoleBuyer || r == RoleBoth
}

func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleBoth
}
