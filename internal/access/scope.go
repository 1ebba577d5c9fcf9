// Package access is the tenant and role scoping policy. Every list, read,
// update and delete in the API filters rows through Scope; nothing builds
// its own gym or trainer predicate.
package access

import (
	"kinetica/internal/apperr"
	"kinetica/internal/auth"
)

type Kind int

const (
	// Members are read through alias m.
	Members Kind = iota
	// Sessions are read through alias s joined to members m.
	Sessions
	// MemberPackages are read through alias mp joined to members m.
	MemberPackages
)

// Predicate is a SQL fragment with ? placeholders. Callers rebind it for
// their driver.
type Predicate struct {
	Clause string
	Args   []interface{}
}

// Scope returns the row filter for kind as seen by id. Owners see the whole
// gym. Trainers see rows assigned to them: members by members.trainer_id,
// sessions by sessions.trainer_id, member packages through their member.
func Scope(kind Kind, id auth.Identity) Predicate {
	p := Predicate{Clause: "m.gym_id = ?", Args: []interface{}{id.GymID}}
	if id.IsOwner() {
		return p
	}

	switch kind {
	case Sessions:
		p.Clause += " AND s.trainer_id = ?"
	default:
		p.Clause += " AND m.trainer_id = ?"
	}
	p.Args = append(p.Args, id.UserID)
	return p
}

// And appends p to an existing WHERE body.
func (p Predicate) And(clause string, args ...interface{}) Predicate {
	return Predicate{
		Clause: clause + " AND " + p.Clause,
		Args:   append(append([]interface{}{}, args...), p.Args...),
	}
}

var (
	ErrSessionForbidden = apperr.Forbidden("You can only modify your own sessions")
	ErrMemberForbidden  = apperr.Forbidden("Member is not assigned to you")
	ErrSessionHidden    = apperr.Forbidden("Session is not assigned to you")
)

// CanMutateSession allows owners and the session's own trainer.
func CanMutateSession(id auth.Identity, trainerID int) error {
	if id.IsOwner() || trainerID == id.UserID {
		return nil
	}
	return ErrSessionForbidden
}

// CanViewSession allows owners and the session's own trainer.
func CanViewSession(id auth.Identity, trainerID int) error {
	if id.IsOwner() || trainerID == id.UserID {
		return nil
	}
	return ErrSessionHidden
}

// CanAccessMember allows owners and the member's assigned trainer.
func CanAccessMember(id auth.Identity, trainerID *int) error {
	if id.IsOwner() {
		return nil
	}
	if trainerID != nil && *trainerID == id.UserID {
		return nil
	}
	return ErrMemberForbidden
}
