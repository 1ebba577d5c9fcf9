package user

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, q sqlx.ExtContext, u *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	FindInGym(ctx context.Context, gymID, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListTrainers(ctx context.Context, gymID int) ([]User, error)
	// Update writes only the fields set on req.
	Update(ctx context.Context, gymID, id int, req UpdateTrainerRequest) (*User, error)
}
