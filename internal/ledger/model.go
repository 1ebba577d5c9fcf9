package ledger

import (
	"time"

	"kinetica/internal/datetime"
)

const (
	MethodCash       = "cash"
	MethodCard       = "card"
	MethodTransfer   = "transfer"
	MethodOnlineMock = "online_mock"

	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
)

// MemberPackage is one purchase of a package by a member. SessionsTotal and
// PricePaid are copied from the package at purchase time; SessionsRemaining
// is moved by the session state machine and by the manual override only.
type MemberPackage struct {
	ID                int           `db:"id" json:"id"`
	MemberID          int           `db:"member_id" json:"member_id"`
	PackageID         int           `db:"package_id" json:"package_id"`
	SessionsTotal     int           `db:"sessions_total" json:"sessions_total"`
	SessionsRemaining int           `db:"sessions_remaining" json:"sessions_remaining"`
	PricePaid         int64         `db:"price_paid" json:"price_paid"`
	PaymentMethod     string        `db:"payment_method" json:"payment_method"`
	PaymentStatus     string        `db:"payment_status" json:"payment_status"`
	StartDate         datetime.Date `db:"start_date" json:"start_date" swaggertype:"string" example:"2024-01-01"`
	ExpiryDate        datetime.Date `db:"expiry_date" json:"expiry_date" swaggertype:"string" example:"2024-01-31"`
	Notes             *string       `db:"notes" json:"notes"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
}

type MemberPackageWithDetails struct {
	MemberPackage
	MemberName      string `db:"member_name" json:"member_name"`
	PackageName     string `db:"package_name" json:"package_name"`
	MemberTrainerID *int   `db:"member_trainer_id" json:"-"`
}

type PurchaseRequest struct {
	MemberID      int            `json:"member_id" binding:"required,min=1"`
	PackageID     int            `json:"package_id" binding:"required,min=1"`
	PricePaid     *int64         `json:"price_paid" binding:"required,min=0"`
	PaymentMethod string         `json:"payment_method" binding:"omitempty,oneof=cash card transfer online_mock"`
	PaymentStatus string         `json:"payment_status" binding:"omitempty,oneof=paid pending overdue"`
	StartDate     *datetime.Date `json:"start_date" binding:"required" swaggertype:"string" example:"2024-01-01"`
	Notes         *string        `json:"notes"`
}

// UpdatePaymentRequest edits payment labels. Nil fields are left as stored.
// SessionsRemaining, when set, goes through the manual override rather than
// as a plain field.
type UpdatePaymentRequest struct {
	PaymentMethod     *string `json:"payment_method" binding:"omitempty,oneof=cash card transfer online_mock"`
	PaymentStatus     *string `json:"payment_status" binding:"omitempty,oneof=paid pending overdue"`
	Notes             *string `json:"notes"`
	SessionsRemaining *int    `json:"sessions_remaining" binding:"omitempty,min=0"`
}

func (r UpdatePaymentRequest) hasPaymentFields() bool {
	return r.PaymentMethod != nil || r.PaymentStatus != nil || r.Notes != nil
}

type OverrideRequest struct {
	SessionsRemaining *int `json:"sessions_remaining" binding:"required,min=0"`
}

// Adjustment is the counter before and after one state-machine step.
type Adjustment struct {
	MemberPackageID int `db:"id"`
	Before          int `db:"prev_remaining"`
	After           int `db:"sessions_remaining"`
}

// Clamped reports whether the store bounded the counter instead of applying
// delta in full. Debits stop at 0 and credits stop at sessions_total, so a
// clamp can happen in either direction.
func (a Adjustment) Clamped(delta int) bool {
	return a.After != a.Before+delta
}
