package booking

import (
	"fmt"

	"github.com/bookline-app/bookline-backend/internal/user"
)

// Status is the booking lifecycle state. Transitions are validated through
// the single transition table below; there is no ad hoc status checking
// anywhere else.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the full state machine. Absent entries (including
// self-transitions and anything out of a terminal state) are rejected.
var transitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to Status) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// RoleMayTransition reports whether the actor's role permits the given
// transition. It assumes CanTransition(from, to) already holds.
//
//   - business: may confirm or cancel a pending booking, and complete or
//     cancel a confirmed one (every table-allowed transition).
//   - customer: may only cancel.
//   - admin: may perform any table-allowed transition.
//
// Ownership (the actor actually being the booking's customer or the owner
// of its business) is checked separately by the service.
func RoleMayTransition(role user.Role, from, to Status) bool {
	switch role {
	case user.RoleAdmin:
		return true
	case user.RoleBusiness:
		return true
	case user.RoleCustomer:
		return to == StatusCancelled
	default:
		return false
	}
}
