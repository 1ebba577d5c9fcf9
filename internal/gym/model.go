package gym

import "time"

const (
	TypeGym            = "gym"
	TypePersonalStudio = "personal_studio"
)

type Gym struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Address   *string   `db:"address" json:"address"`
	Phone     *string   `db:"phone" json:"phone"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateGymRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Type    *string `json:"type" binding:"omitempty,oneof=gym personal_studio"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}
