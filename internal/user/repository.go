package user

import (
	"context"
	"database/sql"
	"errors"

	"kinetica/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const userColumns = `id, gym_id, email, password_hash, name, role, phone, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts u through q, or through the pool when q is nil.
func (r *repository) Create(ctx context.Context, q sqlx.ExtContext, u *User) (*User, error) {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO users (gym_id, email, password_hash, name, role, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	var created User
	err := sqlx.GetContext(ctx, q, &created, query, u.GymID, u.Email, u.PasswordHash, u.Name, u.Role, u.Phone)
	if isUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	return r.get(ctx, query, email)
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	return r.get(ctx, query, id)
}

func (r *repository) FindInGym(ctx context.Context, gymID, id int) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND gym_id = $2
	`

	return r.get(ctx, query, id, gymID)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) ListTrainers(ctx context.Context, gymID int) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE gym_id = $1 AND role = 'trainer' AND is_active = TRUE
		ORDER BY name
	`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, gymID); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repository) Update(ctx context.Context, gymID, id int, req UpdateTrainerRequest) (*User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			is_active = COALESCE($3, is_active)
		WHERE id = $4 AND gym_id = $5
		RETURNING ` + userColumns

	var updated User
	err := r.db.GetContext(ctx, &updated, query, req.Name, req.Phone, req.IsActive, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) get(ctx context.Context, query string, args ...interface{}) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
