package member

import (
	"context"
	"database/sql"
	"errors"

	"kinetica/internal/access"
	"kinetica/internal/auth"
	"kinetica/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrMemberNotFound = errors.New("member not found")

const (
	memberColumns = `id, gym_id, trainer_id, name, email, phone, birth_date, notes, goals, is_active, created_at`

	memberDetailsSelect = `
		SELECT m.id, m.gym_id, m.trainer_id, m.name, m.email, m.phone, m.birth_date,
			m.notes, m.goals, m.is_active, m.created_at, u.name AS trainer_name
		FROM members m
		LEFT JOIN users u ON u.id = m.trainer_id
	`
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO members (gym_id, trainer_id, name, email, phone, birth_date, notes, goals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + memberColumns

	var created Member
	err := r.db.GetContext(ctx, &created, query,
		m.GymID, m.TrainerID, m.Name, m.Email, m.Phone, m.BirthDate, m.Notes, m.Goals)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// GetByID looks a member up within a gym, active or not. Trainer assignment
// is checked by the caller so that it can answer 403 rather than 404.
func (r *repository) GetByID(ctx context.Context, gymID, id int) (*MemberWithDetails, error) {
	query := memberDetailsSelect + `WHERE m.id = $1 AND m.gym_id = $2`

	var m MemberWithDetails
	err := r.db.GetContext(ctx, &m, query, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context, id auth.Identity) ([]MemberWithDetails, error) {
	p := access.Scope(access.Members, id).And("m.is_active = TRUE")
	query := db.Rebind(memberDetailsSelect + `WHERE ` + p.Clause + ` ORDER BY m.name`)

	members := []MemberWithDetails{}
	if err := r.db.SelectContext(ctx, &members, query, p.Args...); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) Update(ctx context.Context, gymID, id int, req UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE members
		SET trainer_id = COALESCE($1, trainer_id),
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			birth_date = COALESCE($5, birth_date),
			notes = COALESCE($6, notes),
			goals = COALESCE($7, goals),
			is_active = COALESCE($8, is_active)
		WHERE id = $9 AND gym_id = $10
		RETURNING ` + memberColumns

	var goals pq.StringArray
	if req.Goals != nil {
		goals = pq.StringArray(*req.Goals)
		if goals == nil {
			goals = pq.StringArray{}
		}
	}

	var updated Member
	err := r.db.GetContext(ctx, &updated, query,
		req.TrainerID, req.Name, req.Email, req.Phone, req.BirthDate, req.Notes, goals, req.IsActive, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Deactivate(ctx context.Context, gymID, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE members SET is_active = FALSE WHERE id = $1 AND gym_id = $2`, id, gymID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *repository) PackageSummaries(ctx context.Context, memberIDs []int) ([]PackageSummary, error) {
	summaries := []PackageSummary{}
	if len(memberIDs) == 0 {
		return summaries, nil
	}

	query := `
		SELECT id, member_id, package_id, sessions_total, sessions_remaining, price_paid,
			payment_status, start_date, expiry_date
		FROM member_packages
		WHERE member_id = ANY($1)
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &summaries, query, pq.Array(memberIDs)); err != nil {
		return nil, err
	}

	return summaries, nil
}
