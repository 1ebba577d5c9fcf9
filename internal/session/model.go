package session

import (
	"time"

	"kinetica/internal/datetime"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

const DefaultDurationMinutes = 60

// LedgerDelta is the change to the linked member package when a session
// moves from prev to next. Only crossing into or out of completed counts.
func LedgerDelta(prev, next Status) int {
	switch {
	case prev == next:
		return 0
	case next == StatusCompleted:
		return -1
	case prev == StatusCompleted:
		return 1
	}
	return 0
}

// DeleteDelta is the change to the linked member package when a session in
// status s is removed.
func DeleteDelta(s Status) int {
	if s == StatusCompleted {
		return 1
	}
	return 0
}

type Session struct {
	ID              int                `db:"id" json:"id"`
	MemberID        int                `db:"member_id" json:"member_id"`
	TrainerID       int                `db:"trainer_id" json:"trainer_id"`
	MemberPackageID *int               `db:"member_package_id" json:"member_package_id"`
	ScheduledAt     datetime.LocalTime `db:"scheduled_at" json:"scheduled_at" swaggertype:"string" example:"2024-01-15T10:00:00"`
	DurationMinutes int                `db:"duration_minutes" json:"duration_minutes"`
	Status          Status             `db:"status" json:"status"`
	Notes           *string            `db:"notes" json:"notes"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
}

type SessionWithDetails struct {
	Session
	MemberName  string `db:"member_name" json:"member_name"`
	TrainerName string `db:"trainer_name" json:"trainer_name"`
}

// CreateSessionRequest takes scheduled_at as wall-clock time. A zone offset
// in the input is dropped, not converted.
type CreateSessionRequest struct {
	MemberID        int                 `json:"member_id" binding:"required,min=1"`
	TrainerID       int                 `json:"trainer_id" binding:"required,min=1"`
	MemberPackageID *int                `json:"member_package_id" binding:"omitempty,min=1"`
	ScheduledAt     *datetime.LocalTime `json:"scheduled_at" binding:"required" swaggertype:"string" example:"2024-01-15T10:00:00"`
	DurationMinutes int                 `json:"duration_minutes" binding:"omitempty,gt=0"`
	Notes           *string             `json:"notes"`
}

// UpdateSessionRequest never touches member_package_id.
type UpdateSessionRequest struct {
	Status          *Status             `json:"status" binding:"omitempty,oneof=scheduled completed no_show cancelled" swaggertype:"string" enums:"scheduled,completed,no_show,cancelled"`
	ScheduledAt     *datetime.LocalTime `json:"scheduled_at" swaggertype:"string"`
	DurationMinutes *int                `json:"duration_minutes" binding:"omitempty,gt=0"`
	Notes           *string             `json:"notes"`
}

func (r UpdateSessionRequest) apply(s *Session) {
	if r.Status != nil {
		s.Status = *r.Status
	}
	if r.ScheduledAt != nil {
		s.ScheduledAt = *r.ScheduledAt
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.Notes != nil {
		s.Notes = r.Notes
	}
}
