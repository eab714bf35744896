package user

import (
	"condo-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAnonymousActor = errs.NewIn(errs.ErrValidation, "actor id is required")

// Actor is the authenticated caller as asserted by the identity provider.
// Users themselves are managed outside this service.
type Actor struct {
	id   uuid.UUID
	role Role
}

func NewActor(id uuid.UUID, role Role) (Actor, error) {
	if id == uuid.Nil {
		return Actor{}, ErrAnonymousActor
	}
	if !role.IsValid() {
		return Actor{}, ErrInvalidRole
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() uuid.UUID { return a.id }
func (a Actor) Role() Role    { return a.role }

func (a Actor) IsAdministrator() bool {
	return a.role == RoleAdministrator
}

// CanActOnBehalfOf reports whether the actor may manage something owned by ownerID.
func (a Actor) CanActOnBehalfOf(ownerID uuid.UUID) bool {
	return a.IsAdministrator() || a.id == ownerID
}
