package session

import (
	"context"

	"kinetica/internal/auth"
	"kinetica/internal/datetime"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, s *Session) (*Session, error)
	GetByID(ctx context.Context, gymID, id int) (*SessionWithDetails, error)
	// List returns sessions in id's scope by scheduled_at. A non-nil day
	// keeps only that calendar day.
	List(ctx context.Context, id auth.Identity, day *datetime.Date) ([]SessionWithDetails, error)
	ListByMember(ctx context.Context, memberID int) ([]SessionWithDetails, error)

	// GetForUpdate locks the session row until the transaction ends.
	GetForUpdate(ctx context.Context, q sqlx.ExtContext, gymID, id int) (*Session, error)
	Update(ctx context.Context, q sqlx.ExtContext, s *Session) error
	Delete(ctx context.Context, q sqlx.ExtContext, id int) error
}
