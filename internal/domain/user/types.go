package user

import "condo-reservations/internal/pkg/errs"

var ErrInvalidRole = errs.NewIn(errs.ErrValidation, "invalid role")

type Role string

const (
	RoleResident      Role = "resident"
	RoleAdministrator Role = "administrator"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleResident, RoleAdministrator:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
