package gym

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, q sqlx.ExtContext, name, gymType string) (*Gym, error)
	GetByID(ctx context.Context, id int) (*Gym, error)
	// Update writes only the fields set on req.
	Update(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error)
}
