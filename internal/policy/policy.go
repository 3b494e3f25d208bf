// Package policy decides whether an acting identity may perform an operation.
package policy

import (
	"curiouslife/internal/models"
)

// Identity is the user attached to a request after session validation.
// The zero value (UserID == 0) means no identity is present.
type Identity struct {
	UserID  uint
	Role    models.Role
	CanPost bool
}

// Anonymous is the absent identity.
var Anonymous = Identity{}

// Present reports whether an identity is attached.
func (id Identity) Present() bool {
	return id.UserID != 0
}

// IsAdmin reports whether the identity holds the administrator role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdministrator
}

// FromUser builds an Identity from a credential-store row.
func FromUser(u *models.User) Identity {
	if u == nil {
		return Anonymous
	}
	return Identity{UserID: u.ID, Role: u.Role, CanPost: u.CanPost}
}

// CanWriteContent gates creation of blogs, comments and likes. Administrators
// may always write; regular users need the posting permission.
func CanWriteContent(id Identity) error {
	if !id.Present() {
		return models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	if id.IsAdmin() {
		return nil
	}
	if !id.CanPost {
		return models.NewForbiddenError("You are not allowed to post, comment or like")
	}
	return nil
}

// CanMutateOwned gates updates and deletes of an existing row owned by
// ownerID. Administrators may mutate any row; regular users only their own,
// and only while they hold the posting permission.
func CanMutateOwned(id Identity, ownerID uint) error {
	if !id.Present() {
		return models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	if id.IsAdmin() {
		return nil
	}
	if !id.CanPost {
		return models.NewForbiddenError("You are not allowed to post, comment or like")
	}
	if id.UserID != ownerID {
		return models.NewForbiddenError("You can only modify your own content")
	}
	return nil
}

// CanModerate gates admin-panel operations. Only administrators pass,
// regardless of their posting permission.
func CanModerate(id Identity) error {
	if !id.Present() {
		return models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}
	if !id.IsAdmin() {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}
