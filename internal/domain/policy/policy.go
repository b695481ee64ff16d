// Package policy holds the single authorization rule of the system.
// Every resource mutation funnels through it; handlers and repositories
// never make their own access decisions.
package policy

import (
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
)

// Action describes what the requester wants to do with a resource.
// The current rule is uniform across actions, but call sites state their
// intent so the rule can diverge later without touching them.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
	ActionDelete
)

// Owner describes who a resource belongs to. For shops this is the owner
// field, for products the owning shop's owner, for users the account itself.
type Owner struct {
	Email string
}

// Allows reports whether the requester may perform the action on a resource
// with the given owner. Pure function: admins may do anything, everyone else
// only what they own.
func Allows(requester *entity.User, owner Owner, _ Action) bool {
	if requester == nil {
		return false
	}

	return requester.Admin || requester.Email == owner.Email
}

// Authorize is the error-returning form of Allows for use inside usecases.
// Denials state that access was refused, never why.
func Authorize(requester *entity.User, owner Owner, action Action) error {
	if !Allows(requester, owner, action) {
		return domainerrors.ErrForbidden
	}

	return nil
}
