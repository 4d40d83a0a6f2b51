package kernel

import (
	"errors"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// Role is the access role carried by an authenticated principal.
type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// ErrActorIsNotConstructed is returned when a zero Actor is used.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor or NewDriverActor")

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleDriver, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor identifies who triggers an operation. Drivers also carry the id of their driver record.
type Actor struct {
	userID   UUID
	role     Role
	driverID int64
	guard    guard.ConstructorGuard
}

// NewActor builds a client or admin actor. Drivers must use NewDriverActor.
func NewActor(userID UUID, role Role) (Actor, error) {
	if role == RoleDriver {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("role", errors.New("driver actors need a driver id"))
	}

	a := Actor{guard: guard.NewConstructorGuard()}
	if err := errors.Join(a.setUserID(userID), a.setRole(role)); err != nil {
		return Actor{}, err
	}
	return a, nil
}

func NewDriverActor(userID UUID, driverID int64) (Actor, error) {
	a := Actor{guard: guard.NewConstructorGuard(), role: RoleDriver}

	var driverErr error
	if driverID <= 0 {
		driverErr = errs.NewValueIsInvalidError("driverID")
	}
	if err := errors.Join(a.setUserID(userID), driverErr); err != nil {
		return Actor{}, err
	}

	a.driverID = driverID
	return a, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) UserID() UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

// DriverID is non-zero only for driver actors.
func (a Actor) DriverID() int64 {
	return a.driverID
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

func (a *Actor) setUserID(id UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	a.userID = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	a.role = role
	return nil
}
