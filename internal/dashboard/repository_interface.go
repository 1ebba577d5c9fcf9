package dashboard

import (
	"context"

	"kinetica/internal/auth"
	"kinetica/internal/datetime"
)

// Repository reads aggregates in the caller's scope. Nothing here is cached.
type Repository interface {
	CountSessionsOn(ctx context.Context, id auth.Identity, day datetime.Date) (int, error)
	CountExpiring(ctx context.Context, id auth.Identity, from, to datetime.Date) (int, error)
	CountUnpaidMembers(ctx context.Context, id auth.Identity) (int, error)
	CountActiveMembers(ctx context.Context, id auth.Identity) (int, error)

	SessionsOn(ctx context.Context, id auth.Identity, day datetime.Date) ([]TodaySession, error)
	Expiring(ctx context.Context, id auth.Identity, from, to datetime.Date) ([]ExpiringPackage, error)
}
