// Package authz implements resource ownership authorization. A mutable forum
// resource records its author at creation time; only that author may update
// or delete it. The check here is separate from authentication: an
// authenticated principal that is not the owner is denied, not treated as
// unauthenticated.
package authz

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotOwner indicates that the principal is not the author of the
// resource it is trying to mutate. The error deliberately carries no
// information about who the actual owner is.
var ErrNotOwner = errors.New("not authorized: resource not owned by principal")

// AuthorizeOwner decides whether the principal may mutate a resource whose
// recorded author is ownerID. Identity is compared by stable identifier, not
// by object reference, so principals reloaded from storage on each request
// compare correctly.
func AuthorizeOwner(principalID, ownerID uuid.UUID) error {
	if principalID == uuid.Nil || principalID != ownerID {
		return ErrNotOwner
	}
	return nil
}
