package ledger

import (
	"context"
	"database/sql"
	"errors"

	"kinetica/internal/access"
	"kinetica/internal/auth"
	"kinetica/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrMemberPackageNotFound = errors.New("member package not found")

const memberPackageColumns = `id, member_id, package_id, sessions_total, sessions_remaining, price_paid, payment_method, payment_status, start_date, expiry_date, notes, created_at`

const detailsSelect = `
		SELECT mp.id, mp.member_id, mp.package_id, mp.sessions_total, mp.sessions_remaining, mp.price_paid,
			mp.payment_method, mp.payment_status, mp.start_date, mp.expiry_date, mp.notes, mp.created_at,
			m.name AS member_name, p.name AS package_name, m.trainer_id AS member_trainer_id
		FROM member_packages mp
		JOIN members m ON m.id = mp.member_id
		JOIN packages p ON p.id = mp.package_id
	`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, mp *MemberPackage) (*MemberPackage, error) {
	query := `
		INSERT INTO member_packages (member_id, package_id, sessions_total, sessions_remaining, price_paid,
			payment_method, payment_status, start_date, expiry_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + memberPackageColumns

	var created MemberPackage
	err := r.db.GetContext(ctx, &created, query,
		mp.MemberID, mp.PackageID, mp.SessionsTotal, mp.SessionsRemaining, mp.PricePaid,
		mp.PaymentMethod, mp.PaymentStatus, mp.StartDate, mp.ExpiryDate, mp.Notes)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*MemberPackageWithDetails, error) {
	query := detailsSelect + `WHERE mp.id = $1 AND m.gym_id = $2`

	var mp MemberPackageWithDetails
	err := r.db.GetContext(ctx, &mp, query, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberPackageNotFound
	}
	if err != nil {
		return nil, err
	}

	return &mp, nil
}

func (r *repository) List(ctx context.Context, id auth.Identity) ([]MemberPackageWithDetails, error) {
	p := access.Scope(access.MemberPackages, id)
	query := db.Rebind(detailsSelect + `WHERE ` + p.Clause + ` ORDER BY mp.created_at DESC, mp.id DESC`)

	packages := []MemberPackageWithDetails{}
	if err := r.db.SelectContext(ctx, &packages, query, p.Args...); err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]MemberPackageWithDetails, error) {
	query := detailsSelect + `WHERE mp.member_id = $1 ORDER BY mp.created_at DESC, mp.id DESC`

	packages := []MemberPackageWithDetails{}
	if err := r.db.SelectContext(ctx, &packages, query, memberID); err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *repository) BelongsTo(ctx context.Context, id, memberID int) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM member_packages WHERE id = $1 AND member_id = $2)`, id, memberID)
}

func (r *repository) UpdatePayment(ctx context.Context, q sqlx.ExtContext, id int, req UpdatePaymentRequest) error {
	query := `
		UPDATE member_packages
		SET payment_method = COALESCE($1, payment_method),
			payment_status = COALESCE($2, payment_status),
			notes = COALESCE($3, notes)
		WHERE id = $4
	`

	result, err := q.ExecContext(ctx, query, req.PaymentMethod, req.PaymentStatus, req.Notes, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) SetRemaining(ctx context.Context, q sqlx.ExtContext, id, remaining int) error {
	result, err := q.ExecContext(ctx, `UPDATE member_packages SET sessions_remaining = $1 WHERE id = $2`, remaining, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) AdjustRemaining(ctx context.Context, q sqlx.ExtContext, id, delta int) (Adjustment, error) {
	query := `
		UPDATE member_packages mp
		SET sessions_remaining = LEAST(GREATEST(prev.sessions_remaining + $1, 0), mp.sessions_total)
		FROM (SELECT id, sessions_remaining FROM member_packages WHERE id = $2 FOR UPDATE) prev
		WHERE mp.id = prev.id
		RETURNING mp.id, prev.sessions_remaining AS prev_remaining, mp.sessions_remaining
	`

	var adj Adjustment
	err := sqlx.GetContext(ctx, q, &adj, query, delta, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Adjustment{}, ErrMemberPackageNotFound
	}
	return adj, err
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberPackageNotFound
	}
	return nil
}
