package dashboard

import "kinetica/internal/datetime"

// ExpiringWindowDays is how far ahead a package counts as expiring.
const ExpiringWindowDays = 7

type Stats struct {
	TodaySessions            int `json:"today_sessions"`
	ExpiringPackagesThisWeek int `json:"expiring_packages_this_week"`
	UnpaidMembers            int `json:"unpaid_members"`
	ActiveMembers            int `json:"active_members"`
}

type TodaySession struct {
	ID              int                `db:"id" json:"id"`
	ScheduledAt     datetime.LocalTime `db:"scheduled_at" json:"scheduled_at" swaggertype:"string" example:"2024-01-15T10:00:00"`
	DurationMinutes int                `db:"duration_minutes" json:"duration_minutes"`
	Status          string             `db:"status" json:"status"`
	MemberName      string             `db:"member_name" json:"member_name"`
	TrainerName     string             `db:"trainer_name" json:"trainer_name"`
}

type ExpiringPackage struct {
	ID                int           `db:"id" json:"id"`
	MemberName        string        `db:"member_name" json:"member_name"`
	PackageName       string        `db:"package_name" json:"package_name"`
	SessionsRemaining int           `db:"sessions_remaining" json:"sessions_remaining"`
	ExpiryDate        datetime.Date `db:"expiry_date" json:"expiry_date" swaggertype:"string" example:"2024-01-20"`
}
