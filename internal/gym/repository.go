package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGymNotFound = errors.New("gym not found")

const gymColumns = `id, name, type, address, phone, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, q sqlx.ExtContext, name, gymType string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, type)
		VALUES ($1, $2)
		RETURNING ` + gymColumns

	var gym Gym
	if err := sqlx.GetContext(ctx, q, &gym, query, name, gymType); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT ` + gymColumns + `
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = COALESCE($1, name),
			type = COALESCE($2, type),
			address = COALESCE($3, address),
			phone = COALESCE($4, phone)
		WHERE id = $5
		RETURNING ` + gymColumns

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, req.Name, req.Type, req.Address, req.Phone, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}

	return &gym, nil
}
