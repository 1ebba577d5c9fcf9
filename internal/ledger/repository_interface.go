package ledger

import (
	"context"

	"kinetica/internal/auth"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, mp *MemberPackage) (*MemberPackage, error)
	GetByID(ctx context.Context, gymID, id int) (*MemberPackageWithDetails, error)
	List(ctx context.Context, id auth.Identity) ([]MemberPackageWithDetails, error)
	ListByMember(ctx context.Context, memberID int) ([]MemberPackageWithDetails, error)
	BelongsTo(ctx context.Context, id, memberID int) (bool, error)

	// UpdatePayment writes only the labels set on req.
	UpdatePayment(ctx context.Context, q sqlx.ExtContext, id int, req UpdatePaymentRequest) error
	SetRemaining(ctx context.Context, q sqlx.ExtContext, id, remaining int) error
	// AdjustRemaining moves the counter by delta, bounded to
	// [0, sessions_total], in a single statement.
	AdjustRemaining(ctx context.Context, q sqlx.ExtContext, id, delta int) (Adjustment, error)
}
