package catalog

import "time"

const DefaultValidityDays = 90

// Package is a sellable bundle of sessions. Purchases snapshot its totals and
// price, so later edits never reach existing member packages.
type Package struct {
	ID            int       `db:"id" json:"id"`
	GymID         int       `db:"gym_id" json:"gym_id"`
	Name          string    `db:"name" json:"name"`
	Description   *string   `db:"description" json:"description"`
	TotalSessions int       `db:"total_sessions" json:"total_sessions"`
	Price         int64     `db:"price" json:"price"`
	ValidityDays  int       `db:"validity_days" json:"validity_days"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreatePackageRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	Description   *string `json:"description"`
	TotalSessions int     `json:"total_sessions" binding:"required,gt=0"`
	Price         *int64  `json:"price" binding:"required,min=0"`
	ValidityDays  int     `json:"validity_days" binding:"omitempty,gt=0"`
}

type UpdatePackageRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string `json:"description"`
	TotalSessions *int    `json:"total_sessions" binding:"omitempty,gt=0"`
	Price         *int64  `json:"price" binding:"omitempty,min=0"`
	ValidityDays  *int    `json:"validity_days" binding:"omitempty,gt=0"`
	IsActive      *bool   `json:"is_active"`
}
