package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of platform roles. Role strings arriving from any
// boundary (JWT claims, registration payloads) must pass ParseRole before
// being attached to an Actor.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
	RoleUser   Role = "USER"
)

// ParseRole validates a raw role string against the closed enumeration
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Actor is the authenticated identity and role attached to an incoming
// operation. A nil *Actor means the operation is unauthenticated.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
