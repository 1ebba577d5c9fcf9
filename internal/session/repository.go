package session

import (
	"context"
	"database/sql"
	"errors"

	"kinetica/internal/access"
	"kinetica/internal/auth"
	"kinetica/internal/datetime"
	"kinetica/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionColumns = `id, member_id, trainer_id, member_package_id, scheduled_at, duration_minutes, status, notes, created_at`

const detailsSelect = `
		SELECT s.id, s.member_id, s.trainer_id, s.member_package_id, s.scheduled_at, s.duration_minutes,
			s.status, s.notes, s.created_at, m.name AS member_name, u.name AS trainer_name
		FROM sessions s
		JOIN members m ON m.id = s.member_id
		JOIN users u ON u.id = s.trainer_id
	`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Session) (*Session, error) {
	query := `
		INSERT INTO sessions (member_id, trainer_id, member_package_id, scheduled_at, duration_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sessionColumns

	var created Session
	err := r.db.GetContext(ctx, &created, query,
		s.MemberID, s.TrainerID, s.MemberPackageID, s.ScheduledAt, s.DurationMinutes, s.Status, s.Notes)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int) (*SessionWithDetails, error) {
	query := detailsSelect + `WHERE s.id = $1 AND m.gym_id = $2`

	var s SessionWithDetails
	err := r.db.GetContext(ctx, &s, query, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, id auth.Identity, day *datetime.Date) ([]SessionWithDetails, error) {
	p := access.Scope(access.Sessions, id)
	if day != nil {
		p = p.And("s.scheduled_at BETWEEN ? AND ?", datetime.StartOfDay(*day), datetime.EndOfDay(*day))
	}
	query := db.Rebind(detailsSelect + `WHERE ` + p.Clause + ` ORDER BY s.scheduled_at, s.id`)

	sessions := []SessionWithDetails{}
	if err := r.db.SelectContext(ctx, &sessions, query, p.Args...); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]SessionWithDetails, error) {
	query := detailsSelect + `WHERE s.member_id = $1 ORDER BY s.scheduled_at DESC, s.id DESC`

	sessions := []SessionWithDetails{}
	if err := r.db.SelectContext(ctx, &sessions, query, memberID); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) GetForUpdate(ctx context.Context, q sqlx.ExtContext, gymID, id int) (*Session, error) {
	query := `
		SELECT s.id, s.member_id, s.trainer_id, s.member_package_id, s.scheduled_at, s.duration_minutes,
			s.status, s.notes, s.created_at
		FROM sessions s
		JOIN members m ON m.id = s.member_id
		WHERE s.id = $1 AND m.gym_id = $2
		FOR UPDATE OF s
	`

	var s Session
	err := sqlx.GetContext(ctx, q, &s, query, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, q sqlx.ExtContext, s *Session) error {
	query := `
		UPDATE sessions
		SET scheduled_at = $1, duration_minutes = $2, status = $3, notes = $4
		WHERE id = $5
	`

	result, err := q.ExecContext(ctx, query, s.ScheduledAt, s.DurationMinutes, s.Status, s.Notes, s.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) Delete(ctx context.Context, q sqlx.ExtContext, id int) error {
	result, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
