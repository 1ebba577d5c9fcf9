package ledger

import (
	"context"
	"errors"
	"fmt"

	"kinetica/internal/access"
	"kinetica/internal/apperr"
	"kinetica/internal/auth"
	"kinetica/internal/catalog"
	"kinetica/internal/db"
	"kinetica/internal/logger"
	"kinetica/internal/member"
	"kinetica/internal/metrics"

	"github.com/jmoiron/sqlx"
)

var errNotFound = apperr.NotFound("Payment record not found")

// MemberDirectory is the part of the member directory purchases need.
type MemberDirectory interface {
	Accessible(ctx context.Context, id auth.Identity, memberID int) (*member.Member, error)
	Active(ctx context.Context, id auth.Identity, memberID int) (*member.Member, error)
}

// PackageCatalog resolves packages that can still be sold.
type PackageCatalog interface {
	Active(ctx context.Context, id auth.Identity, packageID int) (*catalog.Package, error)
}

type Service interface {
	List(ctx context.Context, id auth.Identity) ([]MemberPackageWithDetails, error)
	ListByMember(ctx context.Context, id auth.Identity, memberID int) ([]MemberPackageWithDetails, error)
	Get(ctx context.Context, id auth.Identity, mpID int) (*MemberPackageWithDetails, error)
	Purchase(ctx context.Context, id auth.Identity, req PurchaseRequest) (*MemberPackageWithDetails, error)
	UpdatePayment(ctx context.Context, id auth.Identity, mpID int, req UpdatePaymentRequest) (*MemberPackageWithDetails, error)
	// OverrideRemaining sets the counter directly. It is a manual
	// correction outside the session state machine.
	OverrideRemaining(ctx context.Context, id auth.Identity, mpID, remaining int) (*MemberPackageWithDetails, error)

	// BelongsTo reports whether the member package was bought by memberID.
	BelongsTo(ctx context.Context, mpID, memberID int) (bool, error)
	// AdjustRemaining applies one state-machine step inside the caller's
	// transaction.
	AdjustRemaining(ctx context.Context, q sqlx.ExtContext, mpID, delta int) (Adjustment, error)
}

type service struct {
	repo     Repository
	members  MemberDirectory
	packages PackageCatalog
	tx       db.Transactor
}

func NewService(repo Repository, members MemberDirectory, packages PackageCatalog, tx db.Transactor) Service {
	return &service{
		repo:     repo,
		members:  members,
		packages: packages,
		tx:       tx,
	}
}

func (s *service) List(ctx context.Context, id auth.Identity) ([]MemberPackageWithDetails, error) {
	return s.repo.List(ctx, id)
}

func (s *service) ListByMember(ctx context.Context, id auth.Identity, memberID int) ([]MemberPackageWithDetails, error) {
	if _, err := s.members.Accessible(ctx, id, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) Get(ctx context.Context, id auth.Identity, mpID int) (*MemberPackageWithDetails, error) {
	mp, err := s.load(ctx, id, mpID)
	if err != nil {
		return nil, err
	}

	if err := access.CanAccessMember(id, mp.MemberTrainerID); err != nil {
		return nil, err
	}

	return mp, nil
}

// Purchase snapshots the package onto a new member package. The expiry date
// is fixed here and never recomputed.
func (s *service) Purchase(ctx context.Context, id auth.Identity, req PurchaseRequest) (*MemberPackageWithDetails, error) {
	m, err := s.members.Active(ctx, id, req.MemberID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packages.Active(ctx, id, req.PackageID)
	if err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = MethodCard
	}
	status := req.PaymentStatus
	if status == "" {
		status = StatusPaid
	}

	created, err := s.repo.Create(ctx, &MemberPackage{
		MemberID:          m.ID,
		PackageID:         pkg.ID,
		SessionsTotal:     pkg.TotalSessions,
		SessionsRemaining: pkg.TotalSessions,
		PricePaid:         *req.PricePaid,
		PaymentMethod:     method,
		PaymentStatus:     status,
		StartDate:         *req.StartDate,
		ExpiryDate:        req.StartDate.AddDays(pkg.ValidityDays),
		Notes:             req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create member package: %w", err)
	}

	metrics.RecordPurchase(method, status)
	logger.Info("package purchased",
		"member_package_id", created.ID,
		"member_id", m.ID,
		"package_id", pkg.ID,
		"gym_id", id.GymID,
	)

	return s.load(ctx, id, created.ID)
}

func (s *service) UpdatePayment(ctx context.Context, id auth.Identity, mpID int, req UpdatePaymentRequest) (*MemberPackageWithDetails, error) {
	mp, err := s.Get(ctx, id, mpID)
	if err != nil {
		return nil, err
	}

	if req.SessionsRemaining != nil {
		if err := checkOverride(mp.SessionsTotal, *req.SessionsRemaining); err != nil {
			return nil, err
		}
	}

	err = s.tx.WithTx(ctx, func(tx sqlx.ExtContext) error {
		if req.hasPaymentFields() {
			if err := s.repo.UpdatePayment(ctx, tx, mpID, req); err != nil {
				return err
			}
		}
		if req.SessionsRemaining != nil {
			return s.repo.SetRemaining(ctx, tx, mpID, *req.SessionsRemaining)
		}
		return nil
	})
	if errors.Is(err, ErrMemberPackageNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.SessionsRemaining != nil {
		s.recordOverride(id, mp, *req.SessionsRemaining)
	}

	return s.load(ctx, id, mpID)
}

func (s *service) OverrideRemaining(ctx context.Context, id auth.Identity, mpID, remaining int) (*MemberPackageWithDetails, error) {
	mp, err := s.Get(ctx, id, mpID)
	if err != nil {
		return nil, err
	}

	if err := checkOverride(mp.SessionsTotal, remaining); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx sqlx.ExtContext) error {
		return s.repo.SetRemaining(ctx, tx, mpID, remaining)
	})
	if errors.Is(err, ErrMemberPackageNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	s.recordOverride(id, mp, remaining)

	return s.load(ctx, id, mpID)
}

func (s *service) BelongsTo(ctx context.Context, mpID, memberID int) (bool, error) {
	return s.repo.BelongsTo(ctx, mpID, memberID)
}

func (s *service) AdjustRemaining(ctx context.Context, q sqlx.ExtContext, mpID, delta int) (Adjustment, error) {
	adj, err := s.repo.AdjustRemaining(ctx, q, mpID, delta)
	if err != nil {
		return Adjustment{}, fmt.Errorf("adjust member package %d: %w", mpID, err)
	}

	direction := "credit"
	if delta < 0 {
		direction = "debit"
	}
	clamped := adj.Clamped(delta)
	metrics.RecordLedgerAdjustment(direction, clamped)

	if clamped {
		logger.Warn("sessions_remaining clamped",
			"member_package_id", mpID,
			"delta", delta,
			"before", adj.Before,
			"after", adj.After,
		)
	}

	return adj, nil
}

func (s *service) load(ctx context.Context, id auth.Identity, mpID int) (*MemberPackageWithDetails, error) {
	mp, err := s.repo.GetByID(ctx, id.GymID, mpID)
	if errors.Is(err, ErrMemberPackageNotFound) {
		return nil, errNotFound
	}
	return mp, err
}

func (s *service) recordOverride(id auth.Identity, mp *MemberPackageWithDetails, remaining int) {
	metrics.RecordLedgerOverride()
	logger.Info("sessions_remaining overridden",
		"member_package_id", mp.ID,
		"user_id", id.UserID,
		"before", mp.SessionsRemaining,
		"after", remaining,
	)
}

// checkOverride bounds a manual counter value. sessions_total never changes
// after purchase, so the bound holds for a row read outside the transaction.
func checkOverride(total, remaining int) error {
	if remaining < 0 || remaining > total {
		return apperr.BadRequest(fmt.Sprintf("sessions_remaining must be between 0 and %d", total))
	}
	return nil
}
