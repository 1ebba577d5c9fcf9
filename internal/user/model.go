package user

import (
	"time"

	"kinetica/internal/auth"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	GymID        int       `db:"gym_id" json:"gym_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         auth.Role `db:"role" json:"role" swaggertype:"string"`
	Phone        *string   `db:"phone" json:"phone"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (u *User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, GymID: u.GymID, Role: u.Role}
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email,max=254"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	GymName  string  `json:"gym_name" binding:"required,min=1,max=200"`
	GymType  string  `json:"gym_type" binding:"omitempty,oneof=gym personal_studio"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"bearer"`
	User         User   `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type CreateTrainerRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Password string  `json:"password" binding:"required,min=6"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
}

type UpdateTrainerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}
