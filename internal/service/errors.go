package service

import (
	"errors"
	"fmt"

	"vendormart/internal/domain"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrInvalidInput    = errors.New("invalid input")
)

// ConflictError reports a write rejected because another record already
// claims one of the entity's unique fields. Entity and Field are the
// user-facing names, not table or column names.
type ConflictError struct {
	Entity string
	Field  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("A %s with the same %s already exist", e.Entity, e.Field)
}

// requireRole checks that the actor is authenticated and holds the required
// role. Authentication is always checked before authorization so callers get
// the right error.
func requireRole(actor *domain.Actor, role domain.Role) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.Role != role {
		return ErrUnauthorized
	}
	return nil
}
