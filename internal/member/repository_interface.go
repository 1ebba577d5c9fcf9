package member

import (
	"context"

	"kinetica/internal/auth"
)

type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByID(ctx context.Context, gymID, id int) (*MemberWithDetails, error)
	List(ctx context.Context, id auth.Identity) ([]MemberWithDetails, error)
	// Update writes only the fields set on req.
	Update(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error)
	Deactivate(ctx context.Context, gymID, id int) error
	PackageSummaries(ctx context.Context, memberIDs []int) ([]PackageSummary, error)
}
