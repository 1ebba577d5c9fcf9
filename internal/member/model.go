package member

import (
	"time"

	"kinetica/internal/datetime"

	"github.com/lib/pq"
)

type Member struct {
	ID        int            `db:"id" json:"id"`
	GymID     int            `db:"gym_id" json:"gym_id"`
	TrainerID *int           `db:"trainer_id" json:"trainer_id"`
	Name      string         `db:"name" json:"name"`
	Email     *string        `db:"email" json:"email"`
	Phone     *string        `db:"phone" json:"phone"`
	BirthDate *datetime.Date `db:"birth_date" json:"birth_date" swaggertype:"string" example:"1990-04-12"`
	Notes     *string        `db:"notes" json:"notes"`
	Goals     pq.StringArray `db:"goals" json:"goals" swaggertype:"array,string"`
	IsActive  bool           `db:"is_active" json:"is_active"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// MemberWithDetails is a member row joined with its trainer's name.
type MemberWithDetails struct {
	Member
	TrainerName *string `db:"trainer_name" json:"trainer_name"`
}

// PackageSummary is the short form of a purchased package shown on a member.
type PackageSummary struct {
	ID                int           `db:"id" json:"id"`
	MemberID          int           `db:"member_id" json:"-"`
	PackageID         int           `db:"package_id" json:"package_id"`
	SessionsTotal     int           `db:"sessions_total" json:"sessions_total"`
	SessionsRemaining int           `db:"sessions_remaining" json:"sessions_remaining"`
	PricePaid         int64         `db:"price_paid" json:"price_paid"`
	PaymentStatus     string        `db:"payment_status" json:"payment_status"`
	StartDate         datetime.Date `db:"start_date" json:"start_date" swaggertype:"string" example:"2024-01-01"`
	ExpiryDate        datetime.Date `db:"expiry_date" json:"expiry_date" swaggertype:"string" example:"2024-03-31"`
}

type MemberResponse struct {
	MemberWithDetails
	MemberPackages []PackageSummary `json:"member_packages"`
}

type CreateMemberRequest struct {
	Name      string         `json:"name" binding:"required,min=1,max=100"`
	Email     *string        `json:"email" binding:"omitempty,email,max=254"`
	Phone     *string        `json:"phone" binding:"omitempty,max=50"`
	BirthDate *datetime.Date `json:"birth_date" swaggertype:"string"`
	Notes     *string        `json:"notes"`
	TrainerID *int           `json:"trainer_id" binding:"omitempty,min=1"`
	Goals     []string       `json:"goals" binding:"omitempty,dive,max=200"`
}

type UpdateMemberRequest struct {
	Name      *string        `json:"name" binding:"omitempty,min=1,max=100"`
	Email     *string        `json:"email" binding:"omitempty,email,max=254"`
	Phone     *string        `json:"phone" binding:"omitempty,max=50"`
	BirthDate *datetime.Date `json:"birth_date" swaggertype:"string"`
	Notes     *string        `json:"notes"`
	TrainerID *int           `json:"trainer_id" binding:"omitempty,min=1"`
	IsActive  *bool          `json:"is_active"`
	Goals     *[]string      `json:"goals" binding:"omitempty,dive,max=200"`
}
